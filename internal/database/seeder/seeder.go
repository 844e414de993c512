package seeder

import (
	"context"
	"log"
	"time"

	"career-match/internal/repository"
)

// Seed loads the demo catalog and profiles. It is idempotent: job and
// profile IDs are derived from their names, so re-running upserts in place.
func Seed(ctx context.Context, catalog repository.Catalog, profiles *repository.MemoryProfiles, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	jobs := DemoJobs(time.Now().UTC())
	if err := catalog.UpsertJobs(ctx, jobs); err != nil {
		return err
	}

	demo := DemoProfiles()
	if profiles != nil {
		for _, p := range demo {
			profiles.Put(p)
		}
	}

	logger.Printf("seed | jobs=%d profiles=%d", len(jobs), len(demo))
	return nil
}
