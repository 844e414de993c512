package repository

import (
	"context"
	"errors"

	"career-match/internal/database"
	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// Catalog stores the job postings plus a monotonically increasing
// version. The version changes on every catalog write so recommendation
// fingerprints derived from it go stale automatically.
type Catalog interface {
	ActiveJobs(ctx context.Context) ([]job.Job, int64, error)
	JobByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	UpsertJobs(ctx context.Context, jobs []job.Job) error
	Version(ctx context.Context) (int64, error)
}

type PostgresCatalog struct {
	db database.DB
}

func NewPostgresCatalog(db database.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

const jobColumns = `id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(location, ''),
	remote, COALESCE(experience, ''), COALESCE(salary_min, 0), COALESCE(salary_max, 0),
	COALESCE(currency, ''), required_skills, preferred_skills, posted_at, active`

func (r *PostgresCatalog) ActiveJobs(ctx context.Context) ([]job.Job, int64, error) {
	version, err := r.Version(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE active ORDER BY posted_at DESC`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, version, nil
}

func (r *PostgresCatalog) JobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresCatalog) UpsertJobs(ctx context.Context, jobs []job.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, j := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs
				(id, title, company, location, remote, experience,
				 salary_min, salary_max, currency,
				 required_skills, preferred_skills, posted_at, active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				company = EXCLUDED.company,
				location = EXCLUDED.location,
				remote = EXCLUDED.remote,
				experience = EXCLUDED.experience,
				salary_min = EXCLUDED.salary_min,
				salary_max = EXCLUDED.salary_max,
				currency = EXCLUDED.currency,
				required_skills = EXCLUDED.required_skills,
				preferred_skills = EXCLUDED.preferred_skills,
				posted_at = EXCLUDED.posted_at,
				active = EXCLUDED.active`,
			j.ID, j.Title, j.Company, j.Location, j.Remote, string(j.Experience),
			j.Salary.Min, j.Salary.Max, j.Salary.Currency,
			j.Required.Names(), j.Preferred.Names(), j.PostedAt, j.Active,
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE catalog_version SET version = version + 1 WHERE id = 1`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresCatalog) Version(ctx context.Context) (int64, error) {
	var version int64
	row := r.db.QueryRow(ctx, `SELECT version FROM catalog_version WHERE id = 1`)
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j          job.Job
		experience string
		required   []string
		preferred  []string
	)
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location,
		&j.Remote, &experience, &j.Salary.Min, &j.Salary.Max, &j.Salary.Currency,
		&required, &preferred, &j.PostedAt, &j.Active)
	if err != nil {
		return job.Job{}, err
	}
	j.Experience = job.ExperienceLevel(experience)
	j.Required = skill.NewSet(required...)
	j.Preferred = skill.NewSet(preferred...)
	return j, nil
}
