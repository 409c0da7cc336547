package booking

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsBlocking reports whether a booking in this status occupies its slot for
// conflict purposes.
func (s Status) IsBlocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Event string

const (
	EventCreate   Event = "create"
	EventConfirm  Event = "confirm"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
	EventModify   Event = "modify"
)

func (e Event) IsValid() bool {
	switch e {
	case EventCreate, EventConfirm, EventCancel, EventComplete, EventModify:
		return true
	default:
		return false
	}
}

var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventConfirm: StatusConfirmed,
		EventCancel:  StatusCancelled,
		EventModify:  StatusPending,
	},
	StatusConfirmed: {
		EventCancel:   StatusCancelled,
		EventComplete: StatusCompleted,
		EventModify:   StatusConfirmed,
	},
}

// NextStatus resolves the transition table. Terminal states have no edges.
func NextStatus(from Status, event Event) (Status, error) {
	if edges, ok := transitions[from]; ok {
		if to, ok := edges[event]; ok {
			return to, nil
		}
	}
	return "", &InvalidTransitionError{From: from, Event: event}
}

// InvalidTransitionError names the attempted edge and the current state so
// callers get an actionable message instead of a bare rejection.
type InvalidTransitionError struct {
	From  Status
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking with status %q", e.Event, e.From)
}
