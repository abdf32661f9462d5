package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AddressRepo resolves address text to address rows. It satisfies
// query.AddressResolver and is lookup-only: a miss is (0, false, nil), never
// an insert.
type AddressRepo struct{ db *sql.DB }

// NewAddressRepo creates a Postgres-backed address resolver.
func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) LookupAddress(ctx context.Context, text string) (int64, bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM addresses WHERE text = $1`,
		text,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup address: %w", err)
	}
	return id, true, nil
}
