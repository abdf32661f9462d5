package denylist

import (
	"context"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// Repository defines the data access contract for deny-list entries.
type Repository interface {
	// Lookup returns the newest entry for the address. With appID it
	// searches only that app's list; without it, only the global list.
	// Returns ErrNotFound when no visible entry matches.
	Lookup(ctx context.Context, scope policy.Scope, addressID int64, appID *int64) (*domain.DenyListEntry, error)

	// List returns visible app-scoped entries newest first, optionally
	// narrowed to one app, plus the pre-window total.
	List(ctx context.Context, scope policy.Scope, appID *int64, page query.Page) ([]domain.DenyListEntry, int, error)
}
