package repository

import "errors"

// Store errors. Callers match them with errors.Is; returned errors wrap
// these with the kind and offending id or name.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("name already exists")

	// ErrStorageUnavailable rejects a write when the stored data could not
	// be read and no earlier snapshot exists
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrSeedAccount        = errors.New("built-in accounts cannot reset their password")
)
