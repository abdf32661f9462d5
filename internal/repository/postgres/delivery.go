package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
	"github.com/ignite/delivery-monitor/internal/service/delivery"
)

// DeliveryRepo implements delivery.Repository against PostgreSQL.
type DeliveryRepo struct{ db *sql.DB }

// NewDeliveryRepo creates a Postgres-backed delivery repository.
func NewDeliveryRepo(db *sql.DB) *DeliveryRepo { return &DeliveryRepo{db: db} }

// Every delivery row is read together with its email, recipient address, and
// sender address. Compiled filter joins that duplicate these are skipped.
var deliveryBaseJoins = []string{
	query.JoinEmails,
	query.JoinAddresses,
	"JOIN addresses from_addresses ON from_addresses.id = emails.from_address_id",
}

const deliveryColumns = `deliveries.id, deliveries.email_id, deliveries.app_id,
		deliveries.address_id, deliveries.status, from_addresses.text,
		addresses.text, emails.subject, deliveries.created_at`

func deliveryJoinClause(extra []string) string {
	joins := append([]string(nil), deliveryBaseJoins...)
	for _, j := range extra {
		dup := false
		for _, base := range joins {
			if base == j {
				dup = true
				break
			}
		}
		if !dup {
			joins = append(joins, j)
		}
	}
	return strings.Join(joins, "\n\t\t")
}

func scanDelivery(row interface{ Scan(...any) error }) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(&d.ID, &d.EmailID, &d.AppID, &d.AddressID, &d.Status,
		&d.From, &d.To, &d.Subject, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryRepo) List(ctx context.Context, scope policy.Scope, c query.CompiledDelivery, page query.Page) ([]domain.Delivery, int, error) {
	where := query.Conjoin(scopePredicate(scope, "deliveries.app_id"), c.Predicate())
	whereSQL, args := where.Render(1)
	joins := deliveryJoinClause(c.Joins)

	// The meta join can fan one delivery out into several rows; counting and
	// selecting distinct delivery ids keeps the total and the page aligned.
	var total int
	countSQL := fmt.Sprintf(
		"SELECT COUNT(DISTINCT deliveries.id)\n\tFROM deliveries\n\t\t%s\n\tWHERE %s",
		joins, whereSQL,
	)
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}

	orderBy := c.OrderBy
	if orderBy == "" {
		orderBy = query.OrderNewestFirst
	}
	listSQL := fmt.Sprintf(
		"SELECT DISTINCT %s\n\tFROM deliveries\n\t\t%s\n\tWHERE %s\n\tORDER BY %s\n\tLIMIT $%d OFFSET $%d",
		deliveryColumns, joins, whereSQL, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list deliveries: %w", err)
	}
	return out, total, nil
}

func (r *DeliveryRepo) Get(ctx context.Context, scope policy.Scope, id int64) (*domain.Delivery, error) {
	whereSQL, scopeArgs := scopePredicate(scope, "deliveries.app_id").Render(2)
	getSQL := fmt.Sprintf(
		"SELECT %s\n\tFROM deliveries\n\t\t%s\n\tWHERE deliveries.id = $1 AND (%s)",
		deliveryColumns, deliveryJoinClause(nil), whereSQL,
	)
	args := append([]any{id}, scopeArgs...)

	d, err := scanDelivery(r.db.QueryRowContext(ctx, getSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, delivery.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

func (r *DeliveryRepo) LogLines(ctx context.Context, deliveryID int64) ([]domain.PostfixLogLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, delivery_id, time, relay, dsn, extended_status
		FROM postfix_log_lines
		WHERE delivery_id = $1
		ORDER BY time ASC, id ASC
	`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("delivery log lines: %w", err)
	}
	defer rows.Close()

	var out []domain.PostfixLogLine
	for rows.Next() {
		var l domain.PostfixLogLine
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.Time, &l.Relay, &l.DSN, &l.ExtendedStatus); err != nil {
			return nil, fmt.Errorf("scan log line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
