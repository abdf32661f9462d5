package policy

import "errors"

// Sentinel errors for authorization failures.
var (
	// ErrUnauthorized means there is no authenticated actor, or the actor has
	// no visibility into the requested entity kind at all.
	ErrUnauthorized = errors.New("not authorized")

	// ErrForbidden means the actor is authenticated but the specific row or
	// mutation is outside their scope. Used where existence is already
	// revealed; scoped point lookups return a not-found instead.
	ErrForbidden = errors.New("forbidden")
)
