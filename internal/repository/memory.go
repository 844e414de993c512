package repository

import (
	"context"
	"sort"
	"sync"

	"career-match/internal/domain/job"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

// MemoryCatalog is an in-memory Catalog used in tests and when the
// server runs without Postgres (demo mode with seeded jobs).
type MemoryCatalog struct {
	mu      sync.RWMutex
	jobs    map[uuid.UUID]job.Job
	version int64
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{jobs: make(map[uuid.UUID]job.Job)}
}

func (c *MemoryCatalog) ActiveJobs(_ context.Context) ([]job.Job, int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]job.Job, 0, len(c.jobs))
	for _, j := range c.jobs {
		if j.Active {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].PostedAt.Equal(out[k].PostedAt) {
			return out[i].PostedAt.After(out[k].PostedAt)
		}
		return out[i].ID.String() < out[k].ID.String()
	})
	return out, c.version, nil
}

func (c *MemoryCatalog) JobByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	j, ok := c.jobs[id]
	if !ok {
		return job.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (c *MemoryCatalog) UpsertJobs(_ context.Context, jobs []job.Job) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, j := range jobs {
		c.jobs[j.ID] = j
	}
	c.version++
	return nil
}

func (c *MemoryCatalog) Version(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version, nil
}

// MemoryProfiles is the in-memory Profiles counterpart.
type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]profile.Profile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[uuid.UUID]profile.Profile)}
}

func (r *MemoryProfiles) Put(p profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

func (r *MemoryProfiles) Get(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return profile.Profile{}, ErrProfileNotFound
	}
	// History is append-only; hand out a copy so callers cannot mutate it.
	out := p
	out.History = append([]profile.Interaction(nil), p.History...)
	return out, nil
}

func (r *MemoryProfiles) UpdateSkills(_ context.Context, id uuid.UUID, skills skill.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	p.Skills = skills
	r.profiles[id] = p
	return nil
}

func (r *MemoryProfiles) RecordInteraction(_ context.Context, id uuid.UUID, it profile.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	p.History = append(p.History, it)
	r.profiles[id] = p
	return nil
}
