package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/service/directory"
)

// DirectoryRepo implements directory.Repository against PostgreSQL.
type DirectoryRepo struct{ db *sql.DB }

// NewDirectoryRepo creates a Postgres-backed directory repository.
func NewDirectoryRepo(db *sql.DB) *DirectoryRepo { return &DirectoryRepo{db: db} }

const appColumns = `id, team_id, name, system, open_tracking_enabled,
		click_tracking_enabled, custom_tracking_domain, from_domain,
		created_at, updated_at`

func scanApp(row interface{ Scan(...any) error }) (*domain.App, error) {
	var a domain.App
	err := row.Scan(&a.ID, &a.TeamID, &a.Name, &a.System, &a.OpenTrackingEnabled,
		&a.ClickTrackingEnabled, &a.CustomTrackingDomain, &a.FromDomain,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *DirectoryRepo) Apps(ctx context.Context, scope policy.Scope) ([]domain.App, error) {
	whereSQL, args := scopePredicate(scope, "id").Render(1)
	listSQL := fmt.Sprintf(
		"SELECT %s\n\tFROM apps\n\tWHERE %s\n\tORDER BY name ASC",
		appColumns, whereSQL,
	)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	var out []domain.App
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) GetApp(ctx context.Context, scope policy.Scope, id int64) (*domain.App, error) {
	whereSQL, scopeArgs := scopePredicate(scope, "id").Render(2)
	getSQL := fmt.Sprintf(
		"SELECT %s\n\tFROM apps\n\tWHERE id = $1 AND (%s)",
		appColumns, whereSQL,
	)
	args := append([]any{id}, scopeArgs...)

	a, err := scanApp(r.db.QueryRowContext(ctx, getSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get app: %w", err)
	}
	return a, nil
}

func (r *DirectoryRepo) SystemApp(ctx context.Context) (*domain.App, error) {
	getSQL := fmt.Sprintf(
		"SELECT %s\n\tFROM apps\n\tWHERE system = true\n\tLIMIT 1",
		appColumns,
	)
	a, err := scanApp(r.db.QueryRowContext(ctx, getSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, directory.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get system app: %w", err)
	}
	return a, nil
}

func (r *DirectoryRepo) Teams(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM teams ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var out []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) Admins(ctx context.Context, scope policy.Scope) ([]domain.Admin, error) {
	listSQL := `
		SELECT id, name, email, site_admin, COALESCE(team_id, 0), created_at
		FROM admins
		ORDER BY name ASC
	`
	var args []any
	if !scope.All {
		listSQL = `
			SELECT id, name, email, site_admin, COALESCE(team_id, 0), created_at
			FROM admins
			WHERE id = $1
		`
		args = append(args, scope.AdminID)
	}

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.SiteAdmin, &a.TeamID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *DirectoryRepo) UpdateApp(ctx context.Context, id int64, u directory.AppUpdate) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Name != nil {
		add("name", strings.TrimSpace(*u.Name))
	}
	if u.OpenTrackingEnabled != nil {
		add("open_tracking_enabled", *u.OpenTrackingEnabled)
	}
	if u.ClickTrackingEnabled != nil {
		add("click_tracking_enabled", *u.ClickTrackingEnabled)
	}
	if u.CustomTrackingDomain != nil {
		add("custom_tracking_domain", *u.CustomTrackingDomain)
	}
	if u.FromDomain != nil {
		add("from_domain", *u.FromDomain)
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE apps SET %s WHERE id = $1`, strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		return fmt.Errorf("update app: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return directory.ErrNotFound
	}
	return nil
}
