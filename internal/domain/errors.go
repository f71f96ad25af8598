package domain

import "errors"

// Sentinel errors shared by repositories, services and the HTTP layer.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned when a catalog record collides with a unique key (college code, student email, ...).
	ErrConflict = errors.New("already exists")

	ErrDuplicateRegistration = errors.New("student already registered for this event")
	ErrCapacityExceeded      = errors.New("event is at full capacity")
	ErrNotRegistered         = errors.New("student not registered for this event")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrDuplicateFeedback     = errors.New("feedback already submitted by this student")
)
