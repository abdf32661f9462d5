package directory

import (
	"context"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/policy"
)

// AppUpdate carries the editable app settings. Nil fields are left as-is.
type AppUpdate struct {
	Name                 *string `json:"name"`
	OpenTrackingEnabled  *bool   `json:"open_tracking_enabled"`
	ClickTrackingEnabled *bool   `json:"click_tracking_enabled"`
	CustomTrackingDomain *string `json:"custom_tracking_domain"`
	FromDomain           *string `json:"from_domain"`
}

// Repository defines the data access contract for apps, teams, and admins.
type Repository interface {
	// Apps returns visible apps sorted alphabetically by name.
	Apps(ctx context.Context, scope policy.Scope) ([]domain.App, error)

	// GetApp returns one visible app or ErrNotFound.
	GetApp(ctx context.Context, scope policy.Scope, id int64) (*domain.App, error)

	// SystemApp returns the app the platform sends its own email with.
	SystemApp(ctx context.Context) (*domain.App, error)

	// Teams returns all teams sorted by name. Scoping happens in the
	// service: only site admins reach this call.
	Teams(ctx context.Context) ([]domain.Team, error)

	// Admins returns visible admins sorted alphabetically by name.
	Admins(ctx context.Context, scope policy.Scope) ([]domain.Admin, error)

	// UpdateApp applies non-nil fields. Returns ErrNotFound if the app
	// disappeared between the permission check and the write.
	UpdateApp(ctx context.Context, id int64, u AppUpdate) error
}
