package delivery

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// mockRepo is an in-memory repository for testing. It honors scopes,
// ordering, and windowing; of the compiled filter it only interprets the
// always-false fragment, which is all the service-level tests need (full
// predicate rendering is covered by the repository tests).
type mockRepo struct {
	deliveries []domain.Delivery
	logLines   map[int64][]domain.PostfixLogLine
}

func (m *mockRepo) visible(scope policy.Scope, d domain.Delivery) bool {
	if scope.All {
		return true
	}
	for _, id := range scope.AppIDs {
		if id == d.AppID {
			return true
		}
	}
	return false
}

func (m *mockRepo) List(_ context.Context, scope policy.Scope, c query.CompiledDelivery, page query.Page) ([]domain.Delivery, int, error) {
	for _, p := range c.Where {
		if p.Expr == "FALSE" {
			return nil, 0, nil
		}
	}
	var out []domain.Delivery
	for _, d := range m.deliveries {
		if m.visible(scope, d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	total := len(out)
	return query.Window(out, page), total, nil
}

func (m *mockRepo) Get(_ context.Context, scope policy.Scope, id int64) (*domain.Delivery, error) {
	for _, d := range m.deliveries {
		if d.ID == id && m.visible(scope, d) {
			found := d
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) LogLines(_ context.Context, deliveryID int64) ([]domain.PostfixLogLine, error) {
	return m.logLines[deliveryID], nil
}

type noAddresses struct{}

func (noAddresses) LookupAddress(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}

func at(day int) time.Time {
	return time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC)
}

func testRepo() *mockRepo {
	return &mockRepo{
		deliveries: []domain.Delivery{
			{ID: 1, AppID: 1, Status: domain.StatusSent, CreatedAt: at(1)},
			{ID: 2, AppID: 2, Status: domain.StatusBounced, CreatedAt: at(2)},
			{ID: 3, AppID: 1, Status: domain.StatusBounced, CreatedAt: at(3)},
			{ID: 4, AppID: 1, Status: domain.StatusHeld, CreatedAt: at(3)},
		},
		logLines: map[int64][]domain.PostfixLogLine{
			3: {{ID: 10, DeliveryID: 3, DSN: "5.1.1"}},
		},
	}
}

func newTestService(repo *mockRepo) *Service {
	return NewService(policy.NewEngine(99), repo, noAddresses{})
}

func TestList_AppAdminSeesOnlyTheirApps_NewestFirst(t *testing.T) {
	svc := newTestService(testRepo())
	actor := &domain.Admin{ID: 5, AppIDs: []int64{1}}

	got, total, err := svc.List(context.Background(), actor, query.DeliveryFilter{}, query.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total=3, got %d", total)
	}
	wantOrder := []int64{4, 3, 1}
	for i, d := range got {
		if d.AppID != 1 {
			t.Errorf("leaked delivery %d from app %d", d.ID, d.AppID)
		}
		if d.ID != wantOrder[i] {
			t.Errorf("position %d: expected id %d, got %d", i, wantOrder[i], d.ID)
		}
	}
}

func TestList_SiteAdminSeesEverything(t *testing.T) {
	svc := newTestService(testRepo())
	actor := &domain.Admin{ID: 1, SiteAdmin: true}

	_, total, err := svc.List(context.Background(), actor, query.DeliveryFilter{}, query.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 {
		t.Errorf("expected total=4, got %d", total)
	}
}

func TestList_NilActor_Unauthorized(t *testing.T) {
	svc := newTestService(testRepo())

	_, _, err := svc.List(context.Background(), nil, query.DeliveryFilter{}, query.Page{})
	if err != policy.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestList_UnknownFromAddress_EmptyNotError(t *testing.T) {
	svc := newTestService(testRepo())
	actor := &domain.Admin{ID: 1, SiteAdmin: true}
	from := "nobody@nowhere.test"

	got, total, err := svc.List(context.Background(), actor, query.DeliveryFilter{From: &from}, query.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(got) != 0 {
		t.Errorf("expected empty result, got %d items (total %d)", len(got), total)
	}
}

func TestGet_AttachesLogLines(t *testing.T) {
	svc := newTestService(testRepo())
	actor := &domain.Admin{ID: 5, AppIDs: []int64{1}}

	d, err := svc.Get(context.Background(), actor, 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(d.LogLines) != 1 || d.LogLines[0].DSN != "5.1.1" {
		t.Errorf("expected one log line with DSN 5.1.1, got %+v", d.LogLines)
	}
}

func TestGet_OutOfScopeIndistinguishableFromAbsent(t *testing.T) {
	svc := newTestService(testRepo())
	actor := &domain.Admin{ID: 5, AppIDs: []int64{1}}

	// Delivery 2 exists but belongs to app 2.
	if _, err := svc.Get(context.Background(), actor, 2); err != ErrNotFound {
		t.Errorf("out-of-scope: expected ErrNotFound, got %v", err)
	}
	// Delivery 999 does not exist at all.
	if _, err := svc.Get(context.Background(), actor, 999); err != ErrNotFound {
		t.Errorf("absent: expected ErrNotFound, got %v", err)
	}
}
