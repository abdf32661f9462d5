package policy

import (
	"fmt"

	"github.com/ignite/delivery-monitor/internal/domain"
)

// Scope restricts a collection query to rows the actor may read. The zero
// value is the empty scope (nothing visible).
type Scope struct {
	// All grants unrestricted visibility (site admins).
	All bool

	// AppIDs lists the visible app ids for app-scoped kinds. Ignored when
	// All is set.
	AppIDs []int64

	// AdminID restricts KindAdmin to the actor's own row (self-visibility).
	AdminID int64

	// IncludeGlobal extends KindDenyList scopes to entries with no app
	// binding (the global deny list).
	IncludeGlobal bool
}

// Empty reports whether the scope admits no rows.
func (s Scope) Empty() bool {
	return !s.All && len(s.AppIDs) == 0 && s.AdminID == 0 && !s.IncludeGlobal
}

// Scoper computes the scope of one entity kind for an actor. Implementations
// are pure: same actor, same scope, no side effects.
type Scoper interface {
	Scope(actor *domain.Admin) (Scope, error)
}

// Engine selects the Scoper for an entity kind. The system app id is the
// one app every authenticated actor may see regardless of membership.
type Engine struct {
	systemAppID int64
}

// NewEngine creates a scope engine. systemAppID is the id of the app the
// platform uses to send its own email.
func NewEngine(systemAppID int64) *Engine {
	return &Engine{systemAppID: systemAppID}
}

// Scope resolves the actor's scope over the given entity kind.
func (e *Engine) Scope(actor *domain.Admin, kind EntityKind) (Scope, error) {
	if actor == nil {
		return Scope{}, ErrUnauthorized
	}
	if actor.SiteAdmin {
		return Scope{All: true}, nil
	}

	switch kind {
	case KindApp:
		return appScoper{systemAppID: e.systemAppID}.Scope(actor)
	case KindDelivery:
		return deliveryScoper{}.Scope(actor)
	case KindDenyList:
		return denyListScoper{}.Scope(actor)
	case KindAdmin:
		return adminScoper{}.Scope(actor)
	case KindTeam:
		return teamScoper{}.Scope(actor)
	}
	return Scope{}, fmt.Errorf("unknown entity kind %d", kind)
}

// appScoper: membership apps plus the system app.
type appScoper struct {
	systemAppID int64
}

func (s appScoper) Scope(actor *domain.Admin) (Scope, error) {
	ids := make([]int64, 0, len(actor.AppIDs)+1)
	ids = append(ids, actor.AppIDs...)
	if s.systemAppID != 0 && !actor.MemberOf(s.systemAppID) {
		ids = append(ids, s.systemAppID)
	}
	return Scope{AppIDs: ids}, nil
}

// deliveryScoper: membership apps only. The system app row itself is visible
// to everyone, but its delivery traffic is not.
type deliveryScoper struct{}

func (deliveryScoper) Scope(actor *domain.Admin) (Scope, error) {
	return Scope{AppIDs: append([]int64(nil), actor.AppIDs...)}, nil
}

// denyListScoper: app-scoped entries follow app membership; global entries
// are visible to every authenticated actor so that suppression status can be
// checked before sending.
type denyListScoper struct{}

func (denyListScoper) Scope(actor *domain.Admin) (Scope, error) {
	return Scope{
		AppIDs:        append([]int64(nil), actor.AppIDs...),
		IncludeGlobal: true,
	}, nil
}

// adminScoper: non-site-admins see only themselves.
type adminScoper struct{}

func (adminScoper) Scope(actor *domain.Admin) (Scope, error) {
	return Scope{AdminID: actor.ID}, nil
}

// teamScoper: teams are visible to site admins only.
type teamScoper struct{}

func (teamScoper) Scope(actor *domain.Admin) (Scope, error) {
	return Scope{}, ErrUnauthorized
}
