package service

import "errors"

// Failure classes. Handlers map these to HTTP statuses; everything else is an
// internal error (500) whose cause gets logged.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrGateway    = errors.New("payment gateway failure")
)

var (
	// ErrAvailabilityConflict is returned when a reservation would overlap an
	// existing BOOKED slot for the same provider.
	ErrAvailabilityConflict = errors.New("provider not available for the requested time range")
	// ErrAlreadyAssigned is the race-losing path of the acceptance protocol.
	ErrAlreadyAssigned = errors.New("engagement already assigned")
	// ErrBadSignature rejects a settlement callback whose HMAC does not match.
	ErrBadSignature = errors.New("invalid payment signature")
	// ErrNoActiveLeave is returned when cancelling leave on an engagement that
	// has none.
	ErrNoActiveLeave = errors.New("no active leave on engagement")
)
