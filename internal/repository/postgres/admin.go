package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/domain"
)

// AdminRepo loads admins for authentication. App memberships are resolved at
// load time from both direct grants and team ownership, so the rest of the
// request never touches the membership tables.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo creates a Postgres-backed admin repository.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ByAPIKey(ctx context.Context, key string) (*domain.Admin, error) {
	a, err := r.scanAdmin(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, site_admin, COALESCE(team_id, 0), created_at
		FROM admins
		WHERE api_key = $1
	`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrInvalidAPIKey
	}
	if err != nil {
		return nil, fmt.Errorf("admin by api key: %w", err)
	}
	return r.withMemberships(ctx, a)
}

func (r *AdminRepo) ByID(ctx context.Context, id int64) (*domain.Admin, error) {
	a, err := r.scanAdmin(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, site_admin, COALESCE(team_id, 0), created_at
		FROM admins
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("admin by id: %w", err)
	}
	return r.withMemberships(ctx, a)
}

func (r *AdminRepo) scanAdmin(row *sql.Row) (*domain.Admin, error) {
	var a domain.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.SiteAdmin, &a.TeamID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// withMemberships fills AppIDs with the union of direct membership grants and
// the apps owned by the admin's team.
func (r *AdminRepo) withMemberships(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT app_id FROM app_memberships WHERE admin_id = $1
		UNION
		SELECT id FROM apps WHERE team_id = $2
		ORDER BY 1
	`, a.ID, a.TeamID)
	if err != nil {
		return nil, fmt.Errorf("admin memberships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var appID int64
		if err := rows.Scan(&appID); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		a.AppIDs = append(a.AppIDs, appID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin memberships: %w", err)
	}
	return a, nil
}
