package gap

import (
	"testing"

	"career-match/internal/domain/matching"
)

func TestSeverityBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want Severity
	}{
		{0, SeverityNone},
		{10, SeverityMinor},
		{24.9, SeverityMinor},
		{25, SeverityModerate},
		{50, SeverityModerate},
		{60, SeverityModerate},
		{60.1, SeverityMajor},
		{100, SeverityMajor},
	}
	for _, c := range cases {
		rep := Analyze(matching.Result{GapPercent: c.pct})
		if rep.Severity != c.want {
			t.Fatalf("gap %.1f%%: expected %s, got %s", c.pct, c.want, rep.Severity)
		}
	}
}

func TestAnalyze_CarriesMissingSkills(t *testing.T) {
	rep := Analyze(matching.Result{
		GapPercent:    50,
		MissingSkills: []string{"aws"},
	})
	if rep.Severity != SeverityModerate {
		t.Fatalf("expected moderate severity, got %s", rep.Severity)
	}
	if len(rep.MissingSkills) != 1 || rep.MissingSkills[0] != "aws" {
		t.Fatalf("expected missing skills carried through, got %v", rep.MissingSkills)
	}
}

func TestAnalyze_NoRequiredSkills(t *testing.T) {
	rep := Analyze(matching.Result{GapPercent: 0})
	if rep.Severity != SeverityNone {
		t.Fatalf("expected severity none, got %s", rep.Severity)
	}
}
