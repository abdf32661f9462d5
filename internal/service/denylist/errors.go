package denylist

import "errors"

// Sentinel errors for the deny-list service layer.
var (
	ErrNotFound = errors.New("deny-list entry not found")
)
