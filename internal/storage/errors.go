package storage

import "errors"

var (
	// ErrDuplicate is returned when a unique constraint (username or email)
	// is violated on registration.
	ErrDuplicate = errors.New("username or email already exists")

	// ErrInvalidCredentials is the uniform authentication failure. It does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned where an operation must report that a record is
	// missing or owned by another user. Complete/delete operations do NOT
	// return it; they are silent no-ops to avoid leaking record existence.
	ErrNotFound = errors.New("record not found")

	// ErrNoData is returned by aggregate queries over an empty history.
	ErrNoData = errors.New("no data recorded")
)
