package contact

import "errors"

var (
	ErrMissingName    = errors.New("name is required")
	ErrMissingEmail   = errors.New("email is required")
	ErrMissingSubject = errors.New("subject is required")
	ErrMissingMessage = errors.New("message is required")

	// ErrNotFound is returned when a submission does not exist.
	ErrNotFound = errors.New("submission not found")
)
