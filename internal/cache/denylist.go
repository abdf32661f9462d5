package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/pkg/logger"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/query"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
)

// DefaultTTL bounds how stale a cached deny-list answer can get. Entries are
// created and expired by the bounce processor out of band, so a short TTL is
// the only freshness mechanism.
const DefaultTTL = 30 * time.Second

// missMarker is the cached value for a confirmed absence. Misses are the
// common case on the send path, so they are cached too.
const missMarker = "miss"

// DenyListCache is a read-through decorator over denylist.Repository. Only
// point lookups are cached; listings always hit the database.
type DenyListCache struct {
	inner denylist.Repository
	rdb   *redis.Client
	ttl   time.Duration
}

// NewDenyListCache wraps repo with a Redis lookup cache. ttl <= 0 selects
// DefaultTTL.
func NewDenyListCache(repo denylist.Repository, rdb *redis.Client, ttl time.Duration) *DenyListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DenyListCache{inner: repo, rdb: rdb, ttl: ttl}
}

// lookupKey fingerprints everything the answer depends on: the address, the
// requested list, and the actor's visibility. Two actors with the same scope
// share cache lines; different scopes never collide.
func lookupKey(scope policy.Scope, addressID int64, appID *int64) string {
	list := "global"
	if appID != nil {
		list = strconv.FormatInt(*appID, 10)
	}
	return fmt.Sprintf("denylist:lookup:%s:%d:%s", scopeFingerprint(scope), addressID, list)
}

func scopeFingerprint(scope policy.Scope) string {
	if scope.All {
		return "all"
	}
	ids := append([]int64(nil), scope.AppIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	if scope.IncludeGlobal {
		parts = append(parts, "g")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

func (c *DenyListCache) Lookup(ctx context.Context, scope policy.Scope, addressID int64, appID *int64) (*domain.DenyListEntry, error) {
	key := lookupKey(scope, addressID, appID)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		if cached == missMarker {
			return nil, denylist.ErrNotFound
		}
		var e domain.DenyListEntry
		if err := json.Unmarshal([]byte(cached), &e); err == nil {
			// AddressID is excluded from the JSON form; the key carries it.
			e.AddressID = addressID
			return &e, nil
		}
		// Corrupt cache line; fall through to the repository.
	} else if err != redis.Nil {
		logger.Warn("deny list cache read failed", "error", err)
	}

	entry, err := c.inner.Lookup(ctx, scope, addressID, appID)
	if errors.Is(err, denylist.ErrNotFound) {
		c.store(ctx, key, missMarker)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entry); err == nil {
		c.store(ctx, key, string(data))
	}
	return entry, nil
}

func (c *DenyListCache) store(ctx context.Context, key, value string) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logger.Warn("deny list cache write failed", "error", err)
	}
}

// List is a pass-through; paginated listings are admin-facing and rare.
func (c *DenyListCache) List(ctx context.Context, scope policy.Scope, appID *int64, page query.Page) ([]domain.DenyListEntry, int, error) {
	return c.inner.List(ctx, scope, appID, page)
}
