package ranking

import (
	"fmt"
	"sort"
	"strings"

	"career-match/internal/domain/job"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/profile"
)

type Config struct {
	Limit int
	// Affinity rewards candidate jobs that resemble jobs the profile
	// already saved: AffinityStep per saved job sharing at least
	// MinSharedSkills skills, capped at AffinityCap.
	AffinityStep    float64
	AffinityCap     float64
	MinSharedSkills int
}

func DefaultConfig() Config {
	return Config{
		Limit:           10,
		AffinityStep:    0.05,
		AffinityCap:     0.2,
		MinSharedSkills: 2,
	}
}

type Candidate struct {
	Job    job.Job
	Result matching.Result
}

type Recommendation struct {
	Job         job.Job
	Result      matching.Result
	FinalScore  float64
	Affinity    float64
	Rank        int
	Explanation string
}

type Ranker struct {
	cfg Config
}

func NewRanker(cfg Config) *Ranker {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultConfig().Limit
	}
	if cfg.AffinityStep <= 0 {
		cfg.AffinityStep = DefaultConfig().AffinityStep
	}
	if cfg.AffinityCap <= 0 {
		cfg.AffinityCap = DefaultConfig().AffinityCap
	}
	if cfg.MinSharedSkills <= 0 {
		cfg.MinSharedSkills = DefaultConfig().MinSharedSkills
	}
	return &Ranker{cfg: cfg}
}

// Rank produces a total order over candidates: final score descending,
// then saved-job affinity, then posting recency, then job id ascending so
// identical inputs always yield identical output. Inactive jobs are
// dropped before any scoring work. Truncation happens only after the full
// sort; the later tie-breaks need every candidate.
func (r *Ranker) Rank(p profile.Profile, candidates []Candidate) []Recommendation {
	saved := p.SavedInteractions()

	recs := make([]Recommendation, 0, len(candidates))
	for _, c := range candidates {
		if !c.Job.Active {
			continue
		}
		recs = append(recs, Recommendation{
			Job:        c.Job,
			Result:     c.Result,
			FinalScore: applyPreferences(c.Result.MatchScore, p, c.Job),
			Affinity:   r.affinity(saved, c.Job),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.Affinity != b.Affinity {
			return a.Affinity > b.Affinity
		}
		if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
			return a.Job.PostedAt.After(b.Job.PostedAt)
		}
		return a.Job.ID.String() < b.Job.ID.String()
	})

	if len(recs) > r.cfg.Limit {
		recs = recs[:r.cfg.Limit]
	}

	for i := range recs {
		recs[i].Rank = i + 1
		recs[i].Explanation = explain(recs[i].Result)
	}
	return recs
}

func (r *Ranker) affinity(saved []profile.Interaction, j job.Job) float64 {
	jobSkills := j.AllSkills()
	a := 0.0
	for _, it := range saved {
		if it.Skills.SharedCount(jobSkills) >= r.cfg.MinSharedSkills {
			a += r.cfg.AffinityStep
		}
	}
	if a > r.cfg.AffinityCap {
		a = r.cfg.AffinityCap
	}
	return a
}

// applyPreferences boosts the base match score with the profile's
// location, remote, experience-level, and salary preferences, capped at 1.
func applyPreferences(score float64, p profile.Profile, j job.Job) float64 {
	if p.Location != "" && j.Location != "" &&
		strings.Contains(strings.ToLower(j.Location), strings.ToLower(p.Location)) {
		score *= 1.10
	}
	if p.RemoteOnly && j.Remote {
		score *= 1.15
	}
	if p.Experience != "" && p.Experience == j.Experience {
		score *= 1.05
	}
	if p.SalaryFloor > 0 && j.Salary.Min > 0 && j.Salary.Min >= p.SalaryFloor {
		score *= 1.05
	}
	if score > 1 {
		score = 1
	}
	return score
}

func explain(res matching.Result) string {
	matched := len(res.MatchedSkills)
	total := matched + len(res.MissingSkills)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You match %d out of %d required skills (%.0f%% match).", matched, total, res.MatchScore*100)

	if matched > 0 {
		top := res.MatchedSkills
		if len(top) > 3 {
			top = top[:3]
		}
		fmt.Fprintf(&sb, " Your skills in %s align well with this position.", strings.Join(top, ", "))
	}
	if len(res.MissingSkills) > 0 {
		top := res.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		fmt.Fprintf(&sb, " To strengthen your application, consider developing: %s.", strings.Join(top, ", "))
	}
	return sb.String()
}
