package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"career-match/internal/domain/ranking"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

func testRecs(score float64) []ranking.Recommendation {
	return []ranking.Recommendation{{FinalScore: score, Rank: 1}}
}

func TestFingerprint_Stable(t *testing.T) {
	id := uuid.New()
	a := Fingerprint(id, skill.NewSet("Go", "SQL"), 3)
	b := Fingerprint(id, skill.NewSet("sql", "go"), 3)
	if a != b {
		t.Fatalf("expected normalized skill sets to share a fingerprint")
	}
	if c := Fingerprint(id, skill.NewSet("go", "sql"), 4); c == a {
		t.Fatalf("expected catalog version to change the fingerprint")
	}
	if d := Fingerprint(uuid.New(), skill.NewSet("go", "sql"), 3); d == a {
		t.Fatalf("expected profile id to change the fingerprint")
	}
}

func TestGetOrCompute_SingleFlight(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	id := uuid.New()
	key := Fingerprint(id, skill.NewSet("go"), 1)

	var computes atomic.Int64
	compute := func(ctx context.Context) ([]ranking.Recommendation, error) {
		computes.Add(1)
		time.Sleep(20 * time.Millisecond)
		return testRecs(0.9), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recs, stale, err := c.GetOrCompute(context.Background(), id, key, compute)
			if err != nil || stale {
				t.Errorf("unexpected result: stale=%v err=%v", stale, err)
			}
			if len(recs) != 1 {
				t.Errorf("expected 1 recommendation, got %d", len(recs))
			}
		}()
	}
	wg.Wait()

	if n := computes.Load(); n != 1 {
		t.Fatalf("expected exactly one compute, got %d", n)
	}
}

func TestGetOrCompute_HitSkipsCompute(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	id := uuid.New()
	key := Fingerprint(id, skill.NewSet("go"), 1)

	var computes atomic.Int64
	compute := func(ctx context.Context) ([]ranking.Recommendation, error) {
		computes.Add(1)
		return testRecs(0.5), nil
	}

	for i := 0; i < 3; i++ {
		if _, _, err := c.GetOrCompute(context.Background(), id, key, compute); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if n := computes.Load(); n != 1 {
		t.Fatalf("expected one compute across repeated gets, got %d", n)
	}
}

func TestInvalidateProfile_ForcesRecompute(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	id := uuid.New()
	key := Fingerprint(id, skill.NewSet("go"), 1)

	var computes atomic.Int64
	compute := func(ctx context.Context) ([]ranking.Recommendation, error) {
		computes.Add(1)
		return testRecs(0.5), nil
	}

	if _, _, err := c.GetOrCompute(context.Background(), id, key, compute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c.InvalidateProfile(id)
	if _, _, err := c.GetOrCompute(context.Background(), id, key, compute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := computes.Load(); n != 2 {
		t.Fatalf("expected recompute after invalidation, got %d computes", n)
	}
}

func TestInvalidateProfile_LeavesOthersAlone(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	idA, idB := uuid.New(), uuid.New()
	keyA := Fingerprint(idA, skill.NewSet("go"), 1)
	keyB := Fingerprint(idB, skill.NewSet("go"), 1)

	ok := func(ctx context.Context) ([]ranking.Recommendation, error) { return testRecs(0.5), nil }
	boom := func(ctx context.Context) ([]ranking.Recommendation, error) { return nil, errors.New("boom") }

	if _, _, err := c.GetOrCompute(context.Background(), idA, keyA, ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, _, err := c.GetOrCompute(context.Background(), idB, keyB, ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	c.InvalidateProfile(idA)

	// idB still hits the cache; a failing compute proves it is never run.
	if _, stale, err := c.GetOrCompute(context.Background(), idB, keyB, boom); err != nil || stale {
		t.Fatalf("expected cache hit for untouched profile, stale=%v err=%v", stale, err)
	}
}

func TestGetOrCompute_StaleFallback(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	id := uuid.New()
	key1 := Fingerprint(id, skill.NewSet("go"), 1)
	key2 := Fingerprint(id, skill.NewSet("go"), 2)

	ok := func(ctx context.Context) ([]ranking.Recommendation, error) { return testRecs(0.8), nil }
	boom := func(ctx context.Context) ([]ranking.Recommendation, error) { return nil, errors.New("provider down") }

	if _, _, err := c.GetOrCompute(context.Background(), id, key1, ok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	recs, stale, err := c.GetOrCompute(context.Background(), id, key2, boom)
	if err != nil {
		t.Fatalf("expected stale fallback, got err %v", err)
	}
	if !stale {
		t.Fatalf("expected result flagged stale")
	}
	if len(recs) != 1 || recs[0].FinalScore != 0.8 {
		t.Fatalf("expected last good result, got %v", recs)
	}
}

func TestGetOrCompute_FailureWithoutHistory(t *testing.T) {
	c := NewRecommendations(8, time.Minute, nil)
	id := uuid.New()
	key := Fingerprint(id, skill.NewSet("go"), 1)

	wantErr := errors.New("provider down")
	_, stale, err := c.GetOrCompute(context.Background(), id, key, func(ctx context.Context) ([]ranking.Recommendation, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error surfaced, got %v", err)
	}
	if stale {
		t.Fatalf("nothing to serve stale from")
	}
}

func TestExpiry_ForcesRecompute(t *testing.T) {
	c := NewRecommendations(8, 10*time.Millisecond, nil)
	id := uuid.New()
	key := Fingerprint(id, skill.NewSet("go"), 1)

	var computes atomic.Int64
	compute := func(ctx context.Context) ([]ranking.Recommendation, error) {
		computes.Add(1)
		return testRecs(0.5), nil
	}

	if _, _, err := c.GetOrCompute(context.Background(), id, key, compute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, _, err := c.GetOrCompute(context.Background(), id, key, compute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n := computes.Load(); n != 2 {
		t.Fatalf("expected recompute after ttl, got %d computes", n)
	}
}

func TestCapacity_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewRecommendations(2, time.Minute, nil)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for i, id := range ids {
		key := Fingerprint(id, skill.NewSet("go"), 1)
		score := float64(i)
		if _, _, err := c.GetOrCompute(context.Background(), id, key, func(ctx context.Context) ([]ranking.Recommendation, error) {
			return testRecs(score), nil
		}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	if c.Len() != 2 {
		t.Fatalf("expected capacity bound of 2, got %d entries", c.Len())
	}

	// The first entry was evicted, so its compute runs again.
	var computes atomic.Int64
	key := Fingerprint(ids[0], skill.NewSet("go"), 1)
	if _, _, err := c.GetOrCompute(context.Background(), ids[0], key, func(ctx context.Context) ([]ranking.Recommendation, error) {
		computes.Add(1)
		return testRecs(0), nil
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if computes.Load() != 1 {
		t.Fatalf("expected evicted entry to recompute")
	}
}
