package actor

import "github.com/google/uuid"

// Role names come from the identity provider token. The scheduler never
// branches on roles directly; it consumes the capability set derived here.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	default:
		return false
	}
}

type Capabilities struct {
	CanManageField  bool // confirm/complete/cancel any booking on the field
	CanCancelOwn    bool
	CanBookOnBehalf bool // create bookings for another requester
}

func CapabilitiesForRole(r Role) Capabilities {
	switch r {
	case RoleAdmin:
		return Capabilities{CanManageField: true, CanCancelOwn: true, CanBookOnBehalf: true}
	case RoleManager:
		return Capabilities{CanManageField: true, CanCancelOwn: true, CanBookOnBehalf: true}
	default:
		return Capabilities{CanCancelOwn: true}
	}
}

// Actor is the authenticated principal attached to each call.
type Actor struct {
	ID   uuid.UUID
	Role Role
	Caps Capabilities
}

func New(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role, Caps: CapabilitiesForRole(role)}
}

func (a Actor) CanManageField() bool {
	return a.Caps.CanManageField
}

// CanCancel reports whether the actor may cancel a booking requested by
// requesterID.
func (a Actor) CanCancel(requesterID uuid.UUID) bool {
	if a.Caps.CanManageField {
		return true
	}
	return a.Caps.CanCancelOwn && a.ID == requesterID
}
