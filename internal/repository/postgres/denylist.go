package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
)

// DenyListRepo implements denylist.Repository against PostgreSQL. App-scoped
// entries live in app_deny_lists; global entries live in deny_lists, which
// has no app column at all.
type DenyListRepo struct{ db *sql.DB }

// NewDenyListRepo creates a Postgres-backed deny-list repository.
func NewDenyListRepo(db *sql.DB) *DenyListRepo { return &DenyListRepo{db: db} }

func (r *DenyListRepo) Lookup(ctx context.Context, scope policy.Scope, addressID int64, appID *int64) (*domain.DenyListEntry, error) {
	if appID == nil {
		return r.lookupGlobal(ctx, scope, addressID)
	}

	whereSQL, scopeArgs := scopePredicate(scope, "app_deny_lists.app_id").Render(3)
	lookupSQL := fmt.Sprintf(`
		SELECT app_deny_lists.id, app_deny_lists.app_id, app_deny_lists.address_id,
			addresses.text, app_deny_lists.bounce_count, app_deny_lists.window_start,
			app_deny_lists.created_at
		FROM app_deny_lists
		JOIN addresses ON addresses.id = app_deny_lists.address_id
		WHERE app_deny_lists.address_id = $1 AND app_deny_lists.app_id = $2 AND (%s)
		ORDER BY app_deny_lists.created_at DESC, app_deny_lists.id DESC
		LIMIT 1
	`, whereSQL)
	args := append([]any{addressID, *appID}, scopeArgs...)

	var e domain.DenyListEntry
	err := r.db.QueryRowContext(ctx, lookupSQL, args...).Scan(
		&e.ID, &e.AppID, &e.AddressID, &e.Address, &e.BounceCount, &e.WindowStart, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, denylist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup deny list entry: %w", err)
	}
	return &e, nil
}

func (r *DenyListRepo) lookupGlobal(ctx context.Context, scope policy.Scope, addressID int64) (*domain.DenyListEntry, error) {
	if !scope.All && !scope.IncludeGlobal {
		return nil, denylist.ErrNotFound
	}

	var e domain.DenyListEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT deny_lists.id, deny_lists.address_id, addresses.text,
			deny_lists.bounce_count, deny_lists.window_start, deny_lists.created_at
		FROM deny_lists
		JOIN addresses ON addresses.id = deny_lists.address_id
		WHERE deny_lists.address_id = $1
		ORDER BY deny_lists.created_at DESC, deny_lists.id DESC
		LIMIT 1
	`, addressID).Scan(&e.ID, &e.AddressID, &e.Address, &e.BounceCount, &e.WindowStart, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, denylist.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup global deny list entry: %w", err)
	}
	return &e, nil
}

func (r *DenyListRepo) List(ctx context.Context, scope policy.Scope, appID *int64, page query.Page) ([]domain.DenyListEntry, int, error) {
	preds := []query.Predicate{scopePredicate(scope, "app_deny_lists.app_id")}
	if appID != nil {
		preds = append(preds, query.Predicate{
			Expr: "app_deny_lists.app_id = ?",
			Args: []any{*appID},
		})
	}
	whereSQL, args := query.Conjoin(preds...).Render(1)

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM app_deny_lists WHERE %s`, whereSQL)
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deny list entries: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT app_deny_lists.id, app_deny_lists.app_id, app_deny_lists.address_id,
			addresses.text, app_deny_lists.bounce_count, app_deny_lists.window_start,
			app_deny_lists.created_at
		FROM app_deny_lists
		JOIN addresses ON addresses.id = app_deny_lists.address_id
		WHERE %s
		ORDER BY app_deny_lists.created_at DESC, app_deny_lists.id DESC
		LIMIT $%d OFFSET $%d
	`, whereSQL, len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deny list entries: %w", err)
	}
	defer rows.Close()

	var out []domain.DenyListEntry
	for rows.Next() {
		var e domain.DenyListEntry
		if err := rows.Scan(&e.ID, &e.AppID, &e.AddressID, &e.Address,
			&e.BounceCount, &e.WindowStart, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan deny list entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list deny list entries: %w", err)
	}
	return out, total, nil
}
