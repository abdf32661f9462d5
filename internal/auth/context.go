package auth

import (
	"context"

	"github.com/ignite/delivery-monitor/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor stores the authenticated admin in the context.
func WithActor(ctx context.Context, actor *domain.Admin) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the authenticated admin, or nil when the request carried
// no valid credential.
func ActorFrom(ctx context.Context) *domain.Admin {
	actor, _ := ctx.Value(actorKey).(*domain.Admin)
	return actor
}
