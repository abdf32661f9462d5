// Package delivery implements the scoped delivery query service.
//
// Every operation takes the authenticated actor, narrows the dataset through
// the policy scope engine, applies the compiled filter predicate, and windows
// the result. Out-of-scope rows and truly absent rows are indistinguishable
// to callers: both surface as ErrNotFound on point lookups.
//
// The service layer contains pure read logic and depends on the Repository
// interface defined in repository.go. It never imports net/http or
// database/sql directly.
package delivery
