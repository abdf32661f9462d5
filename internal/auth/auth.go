package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/pkg/logger"
)

// AdminStore loads admins for authentication.
type AdminStore interface {
	// ByAPIKey returns the admin owning the key, or ErrInvalidAPIKey.
	ByAPIKey(ctx context.Context, key string) (*domain.Admin, error)

	// ByID reloads an admin for an existing session, or ErrSessionExpired
	// if the admin no longer exists.
	ByID(ctx context.Context, id int64) (*domain.Admin, error)
}

// Session is one issued bearer token. Only the admin id is pinned; the admin
// row and its memberships are reloaded on every request so revoked access
// takes effect immediately.
type Session struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticator exchanges API keys for session tokens and resolves bearer
// tokens back into admins. Sessions live in memory.
type Authenticator struct {
	store    AdminStore
	ttl      time.Duration
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewAuthenticator creates an authenticator issuing sessions with the given
// TTL.
func NewAuthenticator(store AdminStore, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{
		store:    store,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Login validates the API key and issues a session token.
func (a *Authenticator) Login(ctx context.Context, apiKey string) (*Session, *domain.Admin, error) {
	admin, err := a.store.ByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	session := &Session{
		Token:     uuid.New().String(),
		AdminID:   admin.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}

	a.mu.Lock()
	a.sessions[session.Token] = session
	a.mu.Unlock()

	logger.Info("admin logged in", "admin_id", admin.ID, "email", admin.Email)
	return session, admin, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (a *Authenticator) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// Resolve maps a bearer token to its admin, reloading the admin row and its
// memberships from the store.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*domain.Admin, error) {
	a.mu.RLock()
	session, ok := a.sessions[token]
	a.mu.RUnlock()
	if !ok {
		return nil, ErrSessionExpired
	}

	if time.Now().After(session.ExpiresAt) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return a.store.ByID(ctx, session.AdminID)
}

// RequireActor authenticates the request and stores the admin in the request
// context. Requests may present either a session token or an API key
// directly; unauthenticated requests pass through with no actor, and the
// policy layer rejects them with its own Unauthorized.
func (a *Authenticator) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, err := a.Resolve(r.Context(), token)
		if err != nil {
			// Fall back to treating the credential as a raw API key,
			// so scripted clients can skip the login round trip.
			actor, err = a.store.ByAPIKey(r.Context(), token)
		}
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.Header.Get("X-Api-Key")
}

// CleanupExpiredSessions sweeps expired sessions until ctx is canceled.
func (a *Authenticator) CleanupExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.mu.Lock()
				now := time.Now()
				for token, session := range a.sessions {
					if now.After(session.ExpiresAt) {
						delete(a.sessions, token)
					}
				}
				a.mu.Unlock()
			}
		}
	}()
}
