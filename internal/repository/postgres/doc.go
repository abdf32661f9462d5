// Package postgres implements the service repository interfaces against
// PostgreSQL via database/sql and lib/pq.
//
// Scopes and compiled filters arrive as declarative predicates using "?"
// placeholders; each repository renders them into positional $n arguments
// alongside its own. App-id scoping uses pq.Array with = ANY so the argument
// count stays fixed regardless of how many apps the actor can see.
package postgres
