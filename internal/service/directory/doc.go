// Package directory implements the scoped app, team, and admin queries plus
// the guarded app-settings mutation.
//
// Listings come back pre-sorted alphabetically by name; the teams listing is
// site-admin only and fails with policy.ErrUnauthorized for anyone else.
// The app update is the one mutation in this service: a permission failure
// is policy.ErrForbidden (the caller already knows the app exists), and bad
// input is a *ValidationError.
package directory
