package auth

import "errors"

// Sentinel errors for authentication.
var (
	// ErrInvalidAPIKey means the presented API key matches no admin.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrSessionExpired means the session token is unknown or past its TTL.
	ErrSessionExpired = errors.New("session expired")
)
