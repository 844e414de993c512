package gap

import (
	"career-match/internal/domain/matching"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

type Report struct {
	JobID         uuid.UUID
	Percentage    float64
	MissingSkills []string
	Severity      Severity
}

// Analyze classifies an already-computed match result. It is a pure
// function; the embedding provider is never consulted here.
func Analyze(res matching.Result) Report {
	return Report{
		JobID:         res.JobID,
		Percentage:    res.GapPercent,
		MissingSkills: res.MissingSkills,
		Severity:      severityFor(res.GapPercent),
	}
}

func severityFor(pct float64) Severity {
	switch {
	case pct <= 0:
		return SeverityNone
	case pct < 25:
		return SeverityMinor
	case pct <= 60:
		return SeverityModerate
	default:
		return SeverityMajor
	}
}
