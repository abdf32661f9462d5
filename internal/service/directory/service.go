package directory

import (
	"context"
	"strings"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
)

// Service exposes the scoped directory queries and the app update mutation.
// It is stateless and safe for concurrent use.
type Service struct {
	engine *policy.Engine
	repo   Repository
}

// NewService creates a directory service.
func NewService(engine *policy.Engine, repo Repository) *Service {
	return &Service{engine: engine, repo: repo}
}

// Apps returns the actor-visible apps sorted by name.
func (s *Service) Apps(ctx context.Context, actor *domain.Admin) ([]domain.App, error) {
	scope, err := s.engine.Scope(actor, policy.KindApp)
	if err != nil {
		return nil, err
	}
	return s.repo.Apps(ctx, scope)
}

// GetApp returns one app by id, or ErrNotFound when absent or out of scope.
func (s *Service) GetApp(ctx context.Context, actor *domain.Admin, id int64) (*domain.App, error) {
	scope, err := s.engine.Scope(actor, policy.KindApp)
	if err != nil {
		return nil, err
	}
	return s.repo.GetApp(ctx, scope, id)
}

// SystemApp returns the app the platform sends its own email with. Visible
// to every authenticated actor.
func (s *Service) SystemApp(ctx context.Context, actor *domain.Admin) (*domain.App, error) {
	if actor == nil {
		return nil, policy.ErrUnauthorized
	}
	return s.repo.SystemApp(ctx)
}

// Teams returns all teams. Site admins only.
func (s *Service) Teams(ctx context.Context, actor *domain.Admin) ([]domain.Team, error) {
	if _, err := s.engine.Scope(actor, policy.KindTeam); err != nil {
		return nil, err
	}
	return s.repo.Teams(ctx)
}

// Admins returns the actor-visible admins sorted by name. A non-site-admin
// sees exactly one row: themself.
func (s *Service) Admins(ctx context.Context, actor *domain.Admin) ([]domain.Admin, error) {
	scope, err := s.engine.Scope(actor, policy.KindAdmin)
	if err != nil {
		return nil, err
	}
	return s.repo.Admins(ctx, scope)
}

// Viewer returns the authenticated actor itself.
func (s *Service) Viewer(actor *domain.Admin) (*domain.Admin, error) {
	if actor == nil {
		return nil, policy.ErrUnauthorized
	}
	return actor, nil
}

// UpdateApp applies editable app settings. Site admins may update any app;
// otherwise the actor's team must own it. The permission check runs against
// an unscoped fetch on purpose: an update against someone else's app is a
// Forbidden, and an update against a missing app is a NotFound.
func (s *Service) UpdateApp(ctx context.Context, actor *domain.Admin, id int64, u AppUpdate) (*domain.App, error) {
	if actor == nil {
		return nil, policy.ErrUnauthorized
	}

	app, err := s.repo.GetApp(ctx, policy.Scope{All: true}, id)
	if err != nil {
		return nil, err
	}
	if !actor.SiteAdmin && (actor.TeamID == 0 || actor.TeamID != app.TeamID) {
		return nil, policy.ErrForbidden
	}
	if err := validateAppUpdate(u); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateApp(ctx, id, u); err != nil {
		return nil, err
	}
	return s.repo.GetApp(ctx, policy.Scope{All: true}, id)
}

func validateAppUpdate(u AppUpdate) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return &ValidationError{Field: "name", Reason: "must not be blank"}
		}
		if len(name) > 255 {
			return &ValidationError{Field: "name", Reason: "must be at most 255 characters"}
		}
	}
	if u.CustomTrackingDomain != nil && *u.CustomTrackingDomain != "" {
		d := *u.CustomTrackingDomain
		if strings.ContainsAny(d, " /:@") || !strings.Contains(d, ".") {
			return &ValidationError{Field: "custom_tracking_domain", Reason: "must be a bare hostname"}
		}
	}
	if u.FromDomain != nil && *u.FromDomain != "" {
		d := *u.FromDomain
		if strings.ContainsAny(d, " /:@") || !strings.Contains(d, ".") {
			return &ValidationError{Field: "from_domain", Reason: "must be a bare hostname"}
		}
	}
	return nil
}
