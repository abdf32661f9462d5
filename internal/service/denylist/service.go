package denylist

import (
	"context"
	"errors"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// Service answers deny-list lookups and listings under actor scoping. It is
// stateless and safe for concurrent use.
type Service struct {
	engine *policy.Engine
	repo   Repository
	addrs  query.AddressResolver
}

// NewService creates a deny-list query service.
func NewService(engine *policy.Engine, repo Repository, addrs query.AddressResolver) *Service {
	return &Service{engine: engine, repo: repo, addrs: addrs}
}

// Lookup reports whether the address is blocked within the given scope.
// A nil entry with a nil error means "not blocked": absence here is data,
// not an authorization failure, and an address with no row at all degrades
// the same way.
func (s *Service) Lookup(ctx context.Context, actor *domain.Admin, address string, appID *int64) (*domain.DenyListEntry, error) {
	scope, err := s.engine.Scope(actor, policy.KindDenyList)
	if err != nil {
		return nil, err
	}

	addressID, ok, err := s.addrs.LookupAddress(ctx, query.NormalizeAddress(address))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	entry, err := s.repo.Lookup(ctx, scope, addressID, appID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the actor-visible app-scoped entries, newest first.
func (s *Service) List(ctx context.Context, actor *domain.Admin, appID *int64, page query.Page) ([]domain.DenyListEntry, int, error) {
	scope, err := s.engine.Scope(actor, policy.KindDenyList)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, appID, query.NewPage(page.Limit, page.Offset))
}
