package store

import "errors"

var (
	// ErrNotFound means the record (or its user) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor lacks the role or ownership required.
	ErrForbidden = errors.New("forbidden")
	// ErrNotMutable means a content edit was attempted on a list whose
	// status no longer allows it.
	ErrNotMutable = errors.New("list not editable in current status")
	// ErrValidation means malformed input (empty required field, bad
	// time string, oversized upload).
	ErrValidation = errors.New("invalid input")
)
