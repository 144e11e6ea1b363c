package store

import "errors"

// Caller-facing error conditions. All are expected and recoverable; the
// transport layer maps each to an HTTP status.
var (
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrMissingFields      = errors.New("missing fields")
)
