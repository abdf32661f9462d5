package postgres

import (
	"github.com/lib/pq"

	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// scopePredicate renders an app-id scope against the given column. An
// unrestricted scope matches everything; an empty membership list matches
// nothing rather than erroring, so an actor with no apps gets empty results.
func scopePredicate(scope policy.Scope, col string) query.Predicate {
	if scope.All {
		return query.Always()
	}
	if len(scope.AppIDs) == 0 {
		return query.Never()
	}
	return query.Predicate{
		Expr: col + " = ANY(?)",
		Args: []any{pq.Array(scope.AppIDs)},
	}
}
