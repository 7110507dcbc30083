package session

import "errors"

var (
	// ErrUnknownField is returned when an edit names a field the form does
	// not declare.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrSubmitted is returned when editing or submitting a session that has
	// already been submitted.
	ErrSubmitted = errors.New("session: already submitted")
	// ErrDuplicateField is returned when a form declares the same field twice.
	ErrDuplicateField = errors.New("session: duplicate field")
)
