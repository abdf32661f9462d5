package delivery

import (
	"context"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// Repository defines the data access contract for deliveries. The scope and
// compiled filter arrive as declarative predicates; the implementation
// renders them into its own query language.
type Repository interface {
	// List returns the window of deliveries matching scope and filter,
	// ordered per the compiled ordering, plus the pre-window total.
	List(ctx context.Context, scope policy.Scope, c query.CompiledDelivery, page query.Page) ([]domain.Delivery, int, error)

	// Get returns one delivery visible under the scope, or ErrNotFound.
	// Scoping-induced invisibility and true absence are the same error.
	Get(ctx context.Context, scope policy.Scope, id int64) (*domain.Delivery, error)

	// LogLines returns all postfix log lines for a delivery, oldest first.
	LogLines(ctx context.Context, deliveryID int64) ([]domain.PostfixLogLine, error)
}
