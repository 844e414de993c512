package repository

import (
	"context"
	"errors"

	"career-match/internal/database"
	"career-match/internal/domain/job"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

type Profiles interface {
	Get(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	UpdateSkills(ctx context.Context, id uuid.UUID, skills skill.Set) error
	RecordInteraction(ctx context.Context, id uuid.UUID, it profile.Interaction) error
}

type PostgresProfiles struct {
	db database.DB
}

func NewPostgresProfiles(db database.DB) *PostgresProfiles {
	return &PostgresProfiles{db: db}
}

func (r *PostgresProfiles) Get(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	var (
		p          profile.Profile
		skills     []string
		experience string
	)
	row := r.db.QueryRow(ctx,
		`SELECT id, skills, COALESCE(experience, ''), COALESCE(desired_role, ''),
			COALESCE(location, ''), remote_only, COALESCE(salary_floor, 0)
		 FROM profiles WHERE id = $1`, id)
	err := row.Scan(&p.ID, &skills, &experience, &p.DesiredRole,
		&p.Location, &p.RemoteOnly, &p.SalaryFloor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	p.Skills = skill.NewSet(skills...)
	p.Experience = job.ExperienceLevel(experience)

	history, err := r.history(ctx, id)
	if err != nil {
		return profile.Profile{}, err
	}
	p.History = history
	return p, nil
}

func (r *PostgresProfiles) history(ctx context.Context, id uuid.UUID) ([]profile.Interaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id, kind, skills, created_at
		 FROM profile_interactions
		 WHERE profile_id = $1
		 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Interaction, 0)
	for rows.Next() {
		var (
			it     profile.Interaction
			kind   string
			skills []string
		)
		if err := rows.Scan(&it.JobID, &kind, &skills, &it.At); err != nil {
			return nil, err
		}
		it.Kind = profile.InteractionKind(kind)
		it.Skills = skill.NewSet(skills...)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfiles) UpdateSkills(ctx context.Context, id uuid.UUID, skills skill.Set) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET skills = $2, updated_at = NOW() WHERE id = $1`,
		id, skills.Names())
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfiles) RecordInteraction(ctx context.Context, id uuid.UUID, it profile.Interaction) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_interactions (profile_id, job_id, kind, skills, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, it.JobID, string(it.Kind), it.Skills.Names(), it.At)
	return err
}
