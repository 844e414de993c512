package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"career-match/internal/domain/ranking"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 1024
)

// Recommendations caches ranked recommendation lists keyed by request
// fingerprint. Concurrent misses for the same key collapse into a single
// computation; when the computation fails and a previous result for the
// profile exists, that result is served marked stale instead of failing
// the request.
type Recommendations struct {
	group singleflight.Group
	lru   *expirable.LRU[string, []ranking.Recommendation]

	mu        sync.Mutex
	byProfile map[uuid.UUID][]string
	lastGood  map[uuid.UUID][]ranking.Recommendation

	logger *log.Logger
}

func NewRecommendations(capacity int, ttl time.Duration, logger *log.Logger) *Recommendations {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Recommendations{
		lru:       expirable.NewLRU[string, []ranking.Recommendation](capacity, nil, ttl),
		byProfile: make(map[uuid.UUID][]string),
		lastGood:  make(map[uuid.UUID][]ranking.Recommendation),
		logger:    logger,
	}
}

type ComputeFunc func(ctx context.Context) ([]ranking.Recommendation, error)

// GetOrCompute returns the cached recommendations for key, computing them
// at most once per key across concurrent callers. The stale flag is true
// only when compute failed and the previous good result was served.
func (c *Recommendations) GetOrCompute(ctx context.Context, profileID uuid.UUID, key string, compute ComputeFunc) ([]ranking.Recommendation, bool, error) {
	if recs, ok := c.lru.Get(key); ok {
		return recs, false, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if recs, ok := c.lru.Get(key); ok {
			return recs, nil
		}
		recs, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.store(profileID, key, recs)
		return recs, nil
	})
	if err != nil {
		if recs, ok := c.staleFor(profileID); ok {
			if c.logger != nil {
				c.logger.Printf("cache | serving stale recommendations profile=%s err=%v", profileID, err)
			}
			return recs, true, nil
		}
		return nil, false, err
	}
	return v.([]ranking.Recommendation), false, nil
}

func (c *Recommendations) store(profileID uuid.UUID, key string, recs []ranking.Recommendation) {
	c.lru.Add(key, recs)
	c.mu.Lock()
	c.byProfile[profileID] = append(c.byProfile[profileID], key)
	c.lastGood[profileID] = recs
	c.mu.Unlock()
}

func (c *Recommendations) staleFor(profileID uuid.UUID) ([]ranking.Recommendation, bool) {
	c.mu.Lock()
	recs, ok := c.lastGood[profileID]
	c.mu.Unlock()
	return recs, ok
}

// InvalidateProfile drops every cached entry belonging to one profile.
// The last good result survives so stale fallback keeps working through a
// provider outage.
func (c *Recommendations) InvalidateProfile(profileID uuid.UUID) {
	c.mu.Lock()
	keys := c.byProfile[profileID]
	delete(c.byProfile, profileID)
	c.mu.Unlock()

	for _, k := range keys {
		c.lru.Remove(k)
	}
}

// InvalidateCatalog drops every cached entry. Fingerprints embed the
// catalog version, so this is a safety net for out-of-band catalog edits.
func (c *Recommendations) InvalidateCatalog() {
	c.lru.Purge()
	c.mu.Lock()
	c.byProfile = make(map[uuid.UUID][]string)
	c.mu.Unlock()
}

func (c *Recommendations) Len() int {
	return c.lru.Len()
}
