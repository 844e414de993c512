package usecase

import (
	"context"
	"errors"
	"log"

	"career-match/internal/cache"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/ranking"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultMatchConcurrency = 8

type RecommendationParams struct {
	Limit int
}

type RecommendationItem struct {
	Job           job.Job
	MatchScore    float64
	FinalScore    float64
	Rank          int
	MatchedSkills []string
	MissingSkills []string
	GapPercent    float64
	GapSeverity   gap.Severity
	Explanation   string
}

type RecommendationResult struct {
	Items []RecommendationItem
	// Stale marks results served from the last good snapshot because the
	// embedding provider was unavailable.
	Stale bool
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, profileID uuid.UUID, params RecommendationParams) (RecommendationResult, error)
	GetGapReport(ctx context.Context, profileID, jobID uuid.UUID) (gap.Report, error)
}

type Recommendation struct {
	profiles    repository.Profiles
	catalog     repository.Catalog
	engine      *matching.Engine
	ranker      *ranking.Ranker
	cache       *cache.Recommendations
	concurrency int
	logger      *log.Logger
}

func NewRecommendationUsecase(
	profiles repository.Profiles,
	catalog repository.Catalog,
	engine *matching.Engine,
	ranker *ranking.Ranker,
	recCache *cache.Recommendations,
	logger *log.Logger,
) *Recommendation {
	return &Recommendation{
		profiles:    profiles,
		catalog:     catalog,
		engine:      engine,
		ranker:      ranker,
		cache:       recCache,
		concurrency: defaultMatchConcurrency,
		logger:      logger,
	}
}

func (u *Recommendation) GetRecommendations(ctx context.Context, profileID uuid.UUID, params RecommendationParams) (RecommendationResult, error) {
	if profileID == uuid.Nil {
		return RecommendationResult{}, ErrInvalidInput
	}

	p, err := u.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return RecommendationResult{}, ErrProfileNotFound
		}
		return RecommendationResult{}, ErrInternal
	}
	if p.Skills.IsEmpty() {
		return RecommendationResult{}, ErrSkillProfileEmpty
	}

	jobs, version, err := u.catalog.ActiveJobs(ctx)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}
	if len(jobs) == 0 {
		return RecommendationResult{}, ErrNoJobsFound
	}

	key := cache.Fingerprint(profileID, p.Skills, version)
	recs, stale, err := u.cache.GetOrCompute(ctx, profileID, key, func(ctx context.Context) ([]ranking.Recommendation, error) {
		return u.compute(ctx, p, jobs)
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("recommendation | profile=%s err=%v", profileID, err)
		}
		return RecommendationResult{}, err
	}

	limit := params.Limit
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}

	items := make([]RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		report := gap.Analyze(rec.Result)
		items = append(items, RecommendationItem{
			Job:           rec.Job,
			MatchScore:    rec.Result.MatchScore,
			FinalScore:    rec.FinalScore,
			Rank:          rec.Rank,
			MatchedSkills: rec.Result.MatchedSkills,
			MissingSkills: rec.Result.MissingSkills,
			GapPercent:    report.Percentage,
			GapSeverity:   report.Severity,
			Explanation:   rec.Explanation,
		})
	}
	return RecommendationResult{Items: items, Stale: stale}, nil
}

// compute scores every active job against the profile with a shared
// embedding memo, then ranks the results.
func (u *Recommendation) compute(ctx context.Context, p profile.Profile, jobs []job.Job) ([]ranking.Recommendation, error) {
	batch := u.engine.NewBatch()

	candidates := make([]ranking.Candidate, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			res, err := batch.Match(gctx, p.Skills, j.Required, j.Preferred)
			if err != nil {
				return err
			}
			res.JobID = j.ID
			candidates[i] = ranking.Candidate{Job: j, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return u.ranker.Rank(p, candidates), nil
}

func (u *Recommendation) GetGapReport(ctx context.Context, profileID, jobID uuid.UUID) (gap.Report, error) {
	if profileID == uuid.Nil || jobID == uuid.Nil {
		return gap.Report{}, ErrInvalidInput
	}

	p, err := u.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return gap.Report{}, ErrProfileNotFound
		}
		return gap.Report{}, ErrInternal
	}

	j, err := u.catalog.JobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return gap.Report{}, ErrJobNotFound
		}
		return gap.Report{}, ErrInternal
	}

	res, err := u.engine.NewBatch().Match(ctx, p.Skills, j.Required, j.Preferred)
	if err != nil {
		return gap.Report{}, err
	}
	res.JobID = j.ID
	return gap.Analyze(res), nil
}
