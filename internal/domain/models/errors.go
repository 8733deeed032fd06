package models

import "errors"

var (
	// ErrNegativeCount reports an appliance vector with a count below zero.
	ErrNegativeCount = errors.New("appliance counts must be non-negative")

	// ErrInvalidWindow reports a negative day window on a range query.
	ErrInvalidWindow = errors.New("window days must be non-negative")

	// ErrCorruptRecord reports a stored document missing required fields.
	ErrCorruptRecord = errors.New("corrupt consumption record")

	// ErrNotFound reports a lookup that matched no document.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken reports a registration with an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials reports a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
