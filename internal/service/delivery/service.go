package delivery

import (
	"context"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
)

// Service composes scope, filter, and window for delivery queries. It is
// stateless and safe for concurrent use.
type Service struct {
	engine *policy.Engine
	repo   Repository
	addrs  query.AddressResolver
}

// NewService creates a delivery query service.
func NewService(engine *policy.Engine, repo Repository, addrs query.AddressResolver) *Service {
	return &Service{engine: engine, repo: repo, addrs: addrs}
}

// List returns the actor-visible deliveries matching the filter, newest
// first, plus the total count before windowing.
func (s *Service) List(ctx context.Context, actor *domain.Admin, f query.DeliveryFilter, page query.Page) ([]domain.Delivery, int, error) {
	scope, err := s.engine.Scope(actor, policy.KindDelivery)
	if err != nil {
		return nil, 0, err
	}
	compiled, err := query.CompileDelivery(ctx, f, s.addrs)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, compiled, query.NewPage(page.Limit, page.Offset))
}

// Get returns one delivery by id with its log lines attached, or ErrNotFound
// when the row is absent or outside the actor's scope.
func (s *Service) Get(ctx context.Context, actor *domain.Admin, id int64) (*domain.Delivery, error) {
	scope, err := s.engine.Scope(actor, policy.KindDelivery)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.LogLines(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.LogLines = lines
	return d, nil
}
