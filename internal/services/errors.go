package services

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses; anything not in this list is treated as internal.
var (
	ErrNotFound       = errors.New("not found")
	ErrEmailTaken     = errors.New("email is already taken")
	ErrSlugTaken      = errors.New("slug is already taken")
	ErrBadCredentials = errors.New("email and password do not match")
	ErrTokenInvalid   = errors.New("expired or invalid token")
	ErrTokenStale     = errors.New("invalid or stale token")
	ErrWeakPassword   = errors.New("password must be at least 6 characters long")
)
