// Package policy implements the authorization scope engine.
//
// For an (actor, entity kind) pair it produces a Scope: a pure, request-time
// description of which rows of that kind the actor may read. Scopes carry no
// SQL and perform no I/O; the postgres repositories render them into WHERE
// fragments. Every entity kind has its own Scoper implementation, selected
// by a closed switch in Engine.Scope, so the full rule set is auditable in
// one file.
//
// Authentication is mandatory: a nil actor yields ErrUnauthorized for every
// kind.
package policy
