package job

import (
	"time"

	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

type SalaryRange struct {
	Min      int
	Max      int
	Currency string
}

// Job is a posting in the catalog. Immutable after creation except for
// the Active flag (soft delete).
type Job struct {
	ID         uuid.UUID
	Title      string
	Company    string
	Location   string
	Remote     bool
	Experience ExperienceLevel
	Salary     SalaryRange
	Required   skill.Set
	Preferred  skill.Set
	PostedAt   time.Time
	Active     bool
}

// AllSkills is the union of required and preferred skills.
func (j Job) AllSkills() skill.Set {
	return j.Required.Union(j.Preferred)
}
