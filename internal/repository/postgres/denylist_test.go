package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
)

var denyListCols = []string{
	"id", "app_id", "address_id", "address", "bounce_count", "window_start", "created_at",
}

func TestDenyListRepo_Lookup_AppScoped(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	now := time.Now()
	appID := int64(5)
	mock.ExpectQuery(`FROM app_deny_lists`).
		WithArgs(int64(9), appID, pq.Array([]int64{5})).
		WillReturnRows(sqlmock.NewRows(denyListCols).
			AddRow(int64(3), appID, int64(9), "bouncer@example.test", 2, now.Add(-time.Hour), now))

	entry, err := repo.Lookup(context.Background(),
		policy.Scope{AppIDs: []int64{5}, IncludeGlobal: true}, 9, &appID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry.AppID == nil || *entry.AppID != 5 {
		t.Errorf("expected app-scoped entry, got %+v", entry)
	}
	if entry.Address != "bouncer@example.test" || entry.BounceCount != 2 {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestDenyListRepo_Lookup_Global(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	now := time.Now()
	mock.ExpectQuery(`FROM deny_lists`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "address_id", "address", "bounce_count", "window_start", "created_at",
		}).AddRow(int64(11), int64(9), "bouncer@example.test", 4, now.Add(-time.Hour), now))

	entry, err := repo.Lookup(context.Background(),
		policy.Scope{IncludeGlobal: true}, 9, nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry.AppID != nil {
		t.Errorf("global entry must have nil AppID, got %+v", entry)
	}
	if !entry.Global() {
		t.Error("expected Global() to report true")
	}
}

func TestDenyListRepo_Lookup_GlobalDeniedWithoutGlobalScope(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	// No query expected: the scope check short-circuits.
	_, err := repo.Lookup(context.Background(), policy.Scope{AppIDs: []int64{1}}, 9, nil)
	if !errors.Is(err, denylist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDenyListRepo_Lookup_MissIsNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	appID := int64(5)
	mock.ExpectQuery(`FROM app_deny_lists`).
		WillReturnRows(sqlmock.NewRows(denyListCols))

	_, err := repo.Lookup(context.Background(),
		policy.Scope{All: true}, 9, &appID)
	if !errors.Is(err, denylist.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDenyListRepo_List(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	now := time.Now()
	scope := policy.Scope{AppIDs: []int64{5, 6}, IncludeGlobal: true}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM app_deny_lists`).
		WithArgs(pq.Array(scope.AppIDs)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`ORDER BY app_deny_lists.created_at DESC`).
		WithArgs(pq.Array(scope.AppIDs), 10, 0).
		WillReturnRows(sqlmock.NewRows(denyListCols).
			AddRow(int64(2), int64(6), int64(8), "b@example.test", 1, now, now).
			AddRow(int64(1), int64(5), int64(9), "a@example.test", 3, now.Add(-time.Hour), now.Add(-time.Minute)))

	entries, total, err := repo.List(context.Background(), scope, nil, query.NewPage(10, 0))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 || len(entries) != 2 {
		t.Fatalf("expected 2 rows / total 12, got %d / %d", len(entries), total)
	}
	if entries[0].ID != 2 {
		t.Errorf("expected newest first, got %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDenyListRepo_List_AppFilterBindsAfterScope(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewDenyListRepo(db)

	scope := policy.Scope{AppIDs: []int64{5, 6}, IncludeGlobal: true}
	appID := int64(6)

	mock.ExpectQuery(`app_deny_lists.app_id = \$2`).
		WithArgs(pq.Array(scope.AppIDs), appID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`LIMIT \$3 OFFSET \$4`).
		WithArgs(pq.Array(scope.AppIDs), appID, 10, 0).
		WillReturnRows(sqlmock.NewRows(denyListCols))

	_, total, err := repo.List(context.Background(), scope, &appID, query.NewPage(10, 0))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
