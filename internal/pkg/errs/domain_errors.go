package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Field errors
	ErrFieldNotFound = errors.New("field not found")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingConflict    = errors.New("booking conflict")
	ErrInvalidInterval    = errors.New("invalid interval")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrLockTimeout        = errors.New("field lock timeout")
	ErrScheduleCorruption = errors.New("overlapping active bookings detected")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
