package denylist

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// mockRepo is an in-memory repository for testing. Entries with a nil AppID
// live on the global list; everything else is app-scoped.
type mockRepo struct {
	entries []domain.DenyListEntry
}

func (m *mockRepo) visible(scope policy.Scope, e domain.DenyListEntry) bool {
	if scope.All {
		return true
	}
	if e.AppID == nil {
		return scope.IncludeGlobal
	}
	for _, id := range scope.AppIDs {
		if id == *e.AppID {
			return true
		}
	}
	return false
}

func newestFirst(entries []domain.DenyListEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
}

func (m *mockRepo) Lookup(_ context.Context, scope policy.Scope, addressID int64, appID *int64) (*domain.DenyListEntry, error) {
	var matches []domain.DenyListEntry
	for _, e := range m.entries {
		if e.AddressID != addressID || !m.visible(scope, e) {
			continue
		}
		if appID != nil {
			if e.AppID == nil || *e.AppID != *appID {
				continue
			}
		} else if e.AppID != nil {
			continue
		}
		matches = append(matches, e)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	newestFirst(matches)
	return &matches[0], nil
}

func (m *mockRepo) List(_ context.Context, scope policy.Scope, appID *int64, page query.Page) ([]domain.DenyListEntry, int, error) {
	var out []domain.DenyListEntry
	for _, e := range m.entries {
		if e.AppID == nil || !m.visible(scope, e) {
			continue
		}
		if appID != nil && *e.AppID != *appID {
			continue
		}
		out = append(out, e)
	}
	newestFirst(out)
	total := len(out)
	return query.Window(out, page), total, nil
}

// addressBook resolves the fixture addresses.
type addressBook map[string]int64

func (a addressBook) LookupAddress(_ context.Context, text string) (int64, bool, error) {
	id, ok := a[text]
	return id, ok, nil
}

func intPtr(i int64) *int64 { return &i }

func at(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

var testAddresses = addressBook{
	"a@b.test": 1,
	"c@d.test": 2,
}

func testService(entries ...domain.DenyListEntry) *Service {
	return NewService(policy.NewEngine(99), &mockRepo{entries: entries}, testAddresses)
}

func TestLookup_AppScopedMissDespiteGlobalHit(t *testing.T) {
	svc := testService(
		domain.DenyListEntry{ID: 1, AddressID: 1, AppID: nil, CreatedAt: at(1)},
	)
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	entry, err := svc.Lookup(context.Background(), actor, "a@b.test", intPtr(3))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry != nil {
		t.Errorf("expected absent for (a@b.test, app 3), got entry %d", entry.ID)
	}
}

func TestLookup_GlobalReturnsNewest(t *testing.T) {
	svc := testService(
		domain.DenyListEntry{ID: 1, AddressID: 1, CreatedAt: at(1)},
		domain.DenyListEntry{ID: 2, AddressID: 1, CreatedAt: at(5)},
		domain.DenyListEntry{ID: 3, AddressID: 1, AppID: intPtr(3), CreatedAt: at(9)},
	)
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	entry, err := svc.Lookup(context.Background(), actor, "a@b.test", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry == nil || entry.ID != 2 {
		t.Errorf("expected newest global entry (id 2), got %+v", entry)
	}
}

func TestLookup_UnknownAddress_AbsentNotError(t *testing.T) {
	svc := testService()
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	entry, err := svc.Lookup(context.Background(), actor, "ghost@nowhere.test", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry != nil {
		t.Errorf("expected absent, got %+v", entry)
	}
}

func TestLookup_NormalizesAddressText(t *testing.T) {
	svc := testService(
		domain.DenyListEntry{ID: 1, AddressID: 1, CreatedAt: at(1)},
	)
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	entry, err := svc.Lookup(context.Background(), actor, "  A@B.TEST ", nil)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry == nil {
		t.Error("expected entry after normalization, got absent")
	}
}

func TestLookup_NilActor_Unauthorized(t *testing.T) {
	svc := testService()
	_, err := svc.Lookup(context.Background(), nil, "a@b.test", nil)
	if err != policy.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestList_ScopedToMembershipApps(t *testing.T) {
	svc := testService(
		domain.DenyListEntry{ID: 1, AddressID: 1, AppID: intPtr(1), CreatedAt: at(1)},
		domain.DenyListEntry{ID: 2, AddressID: 2, AppID: intPtr(2), CreatedAt: at(2)},
		domain.DenyListEntry{ID: 3, AddressID: 1, AppID: intPtr(1), CreatedAt: at(3)},
	)
	actor := &domain.Admin{ID: 7, AppIDs: []int64{1}}

	entries, total, err := svc.List(context.Background(), actor, nil, query.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total=2, got %d", total)
	}
	if entries[0].ID != 3 || entries[1].ID != 1 {
		t.Errorf("expected newest-first [3 1], got [%d %d]", entries[0].ID, entries[1].ID)
	}
}

func TestList_AppFilterAndWindow(t *testing.T) {
	var entries []domain.DenyListEntry
	for i := 1; i <= 25; i++ {
		entries = append(entries, domain.DenyListEntry{
			ID: int64(i), AddressID: 1, AppID: intPtr(1), CreatedAt: at(1).Add(time.Duration(i) * time.Hour),
		})
	}
	svc := testService(entries...)
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	page, total, err := svc.List(context.Background(), actor, intPtr(1), query.NewPage(10, 20))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 25 {
		t.Errorf("expected total=25, got %d", total)
	}
	if len(page) != 5 {
		t.Errorf("expected 5 windowed entries, got %d", len(page))
	}
}
