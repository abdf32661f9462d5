// Package denylist implements the deny-list decision engine.
//
// It answers two questions under the same scoping rules as every other
// query: is this address blocked (point lookup, app-scoped or global), and
// what is blocked (paginated listing, newest first). Suppression is binary
// at this layer; entry creation and expiry belong to the bounce-processing
// subsystem, which this service never writes to.
//
// A lookup with no app id searches the global list only and returns at most
// one entry, newest first. Callers depend on the single-entry shape, so the
// contract stays even though an address can also sit on several app lists.
package denylist
