package profile

import (
	"time"

	"career-match/internal/domain/job"
	"career-match/internal/domain/skill"

	"github.com/google/uuid"
)

type InteractionKind string

const (
	InteractionSaved   InteractionKind = "saved"
	InteractionApplied InteractionKind = "applied"
)

// Interaction records a profile's engagement with a job; saved jobs feed
// the ranking affinity tie-break.
type Interaction struct {
	JobID  uuid.UUID
	Kind   InteractionKind
	Skills skill.Set
	At     time.Time
}

type Profile struct {
	ID          uuid.UUID
	Skills      skill.Set
	Experience  job.ExperienceLevel
	DesiredRole string
	Location    string
	RemoteOnly  bool
	SalaryFloor int
	History     []Interaction
}

// SavedInteractions filters history down to saved jobs.
func (p Profile) SavedInteractions() []Interaction {
	out := make([]Interaction, 0, len(p.History))
	for _, it := range p.History {
		if it.Kind == InteractionSaved {
			out = append(out, it)
		}
	}
	return out
}
