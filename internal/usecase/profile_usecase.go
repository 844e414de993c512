package usecase

import (
	"context"
	"errors"
	"time"

	"career-match/internal/cache"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/skill"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

// Notifier pushes recommendation and catalog events out to connected
// clients.
type Notifier interface {
	RecommendationsRefreshed(profileID uuid.UUID)
	CatalogUpdated(version int64)
}

type ProfileUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	UpdateSkills(ctx context.Context, id uuid.UUID, skills []string) (profile.Profile, error)
	SaveJob(ctx context.Context, profileID, jobID uuid.UUID) error
	ApplyJob(ctx context.Context, profileID, jobID uuid.UUID) error
}

type ProfileService struct {
	profiles repository.Profiles
	catalog  repository.Catalog
	cache    *cache.Recommendations
	notifier Notifier
	now      func() time.Time
}

func NewProfileUsecase(profiles repository.Profiles, catalog repository.Catalog, recCache *cache.Recommendations, notifier Notifier) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		catalog:  catalog,
		cache:    recCache,
		notifier: notifier,
		now:      time.Now,
	}
}

func (u *ProfileService) Get(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	if id == uuid.Nil {
		return profile.Profile{}, ErrInvalidInput
	}
	p, err := u.profiles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *ProfileService) UpdateSkills(ctx context.Context, id uuid.UUID, skills []string) (profile.Profile, error) {
	if id == uuid.Nil {
		return profile.Profile{}, ErrInvalidInput
	}
	set := skill.NewSet(skills...)
	if set.IsEmpty() {
		return profile.Profile{}, ErrInvalidInput
	}

	if err := u.profiles.UpdateSkills(ctx, id, set); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}

	u.cache.InvalidateProfile(id)
	if u.notifier != nil {
		u.notifier.RecommendationsRefreshed(id)
	}

	p, err := u.profiles.Get(ctx, id)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *ProfileService) SaveJob(ctx context.Context, profileID, jobID uuid.UUID) error {
	return u.recordInteraction(ctx, profileID, jobID, profile.InteractionSaved)
}

func (u *ProfileService) ApplyJob(ctx context.Context, profileID, jobID uuid.UUID) error {
	return u.recordInteraction(ctx, profileID, jobID, profile.InteractionApplied)
}

func (u *ProfileService) recordInteraction(ctx context.Context, profileID, jobID uuid.UUID, kind profile.InteractionKind) error {
	if profileID == uuid.Nil || jobID == uuid.Nil {
		return ErrInvalidInput
	}

	j, err := u.catalog.JobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	it := profile.Interaction{
		JobID:  j.ID,
		Kind:   kind,
		Skills: j.AllSkills(),
		At:     u.now(),
	}
	if err := u.profiles.RecordInteraction(ctx, profileID, it); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return ErrInternal
	}

	// Saved jobs feed the affinity tie-break, so cached rankings for this
	// profile are no longer valid.
	u.cache.InvalidateProfile(profileID)
	if u.notifier != nil {
		u.notifier.RecommendationsRefreshed(profileID)
	}
	return nil
}
