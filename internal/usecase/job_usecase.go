package usecase

import (
	"context"
	"errors"

	"career-match/internal/cache"
	"career-match/internal/domain/job"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

type JobListParams struct {
	Limit  int
	Offset int
}

type JobUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]job.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	ImportJobs(ctx context.Context, jobs []job.Job) error
}

type JobService struct {
	catalog  repository.Catalog
	cache    *cache.Recommendations
	notifier Notifier
}

func NewJobUsecase(catalog repository.Catalog, recCache *cache.Recommendations, notifier Notifier) *JobService {
	return &JobService{catalog: catalog, cache: recCache, notifier: notifier}
}

func (u *JobService) ListJobs(ctx context.Context, params JobListParams) ([]job.Job, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	jobs, _, err := u.catalog.ActiveJobs(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if offset >= len(jobs) {
		return []job.Job{}, nil
	}
	jobs = jobs[offset:]
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (u *JobService) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if id == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	j, err := u.catalog.JobByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// ImportJobs writes a batch of postings and bumps the catalog version,
// which retires every cached recommendation fingerprint at once.
func (u *JobService) ImportJobs(ctx context.Context, jobs []job.Job) error {
	if len(jobs) == 0 {
		return ErrInvalidInput
	}
	for _, j := range jobs {
		if j.ID == uuid.Nil || j.Title == "" {
			return ErrInvalidInput
		}
	}

	if err := u.catalog.UpsertJobs(ctx, jobs); err != nil {
		return ErrInternal
	}

	u.cache.InvalidateCatalog()
	if u.notifier != nil {
		version, err := u.catalog.Version(ctx)
		if err == nil {
			u.notifier.CatalogUpdated(version)
		}
	}
	return nil
}
