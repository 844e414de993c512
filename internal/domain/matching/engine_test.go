package matching

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"career-match/internal/domain/skill"
	"career-match/internal/embedding"
)

// stubEmbedder returns fixed vectors per text and counts provider calls.
type stubEmbedder struct {
	vectors map[string]skill.Vector
	calls   atomic.Int64
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([]skill.Vector, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]skill.Vector, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
		} else {
			// Unknown skills get a vector orthogonal to everything known.
			out[i] = skill.Vector{0, 0, 1}
		}
	}
	return out, nil
}

func newTestEngine(emb embedding.Provider) *Engine {
	return NewEngine(emb, DefaultConfig())
}

func TestMatch_ExactScenario(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]skill.Vector{
		"python": {1, 0, 0},
		"sql":    {0, 1, 0},
		"aws":    {0.1, 0.1, 0.9},
	}}
	b := newTestEngine(emb).NewBatch()

	res, err := b.Match(context.Background(),
		skill.NewSet("Python", "SQL"),
		skill.NewSet("Python", "AWS"),
		skill.NewSet("SQL"),
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if math.Abs(res.MatchScore-0.65) > 1e-9 {
		t.Fatalf("expected score 0.65, got %f", res.MatchScore)
	}
	if len(res.MatchedSkills) != 2 {
		t.Fatalf("expected 2 matched skills, got %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 1 || res.MissingSkills[0] != "aws" {
		t.Fatalf("expected missing [aws], got %v", res.MissingSkills)
	}
	if res.GapPercent != 50 {
		t.Fatalf("expected gap 50%%, got %f", res.GapPercent)
	}
}

func TestMatch_IdenticalSetsPerfectScore(t *testing.T) {
	emb := &stubEmbedder{}
	b := newTestEngine(emb).NewBatch()

	res, err := b.Match(context.Background(),
		skill.NewSet("Go", "Docker"),
		skill.NewSet("go", "docker"),
		skill.NewSet(),
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(res.MatchScore-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0 for identical sets, got %f", res.MatchScore)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", res.MissingSkills)
	}
	if emb.calls.Load() != 0 {
		t.Fatalf("exact matches must not touch the embedder, got %d calls", emb.calls.Load())
	}
}

func TestMatch_NoPreferredScoredOnRequiredAlone(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]skill.Vector{
		"go":         {1, 0, 0},
		"kubernetes": {0, 1, 0},
	}}
	b := newTestEngine(emb).NewBatch()

	res, err := b.Match(context.Background(),
		skill.NewSet("go"),
		skill.NewSet("go", "kubernetes"),
		skill.NewSet(),
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Half the required skills, nothing preferred: plain coverage, not
	// coverage scaled by the required weight.
	if math.Abs(res.MatchScore-0.5) > 1e-9 {
		t.Fatalf("expected score 0.5, got %f", res.MatchScore)
	}
}

func TestMatch_MatchedAndMissingDisjointCoverRequired(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]skill.Vector{}}
	b := newTestEngine(emb).NewBatch()

	required := skill.NewSet("go", "kubernetes", "terraform")
	res, err := b.Match(context.Background(), skill.NewSet("go"), required, skill.NewSet())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	seen := make(map[string]bool)
	for _, m := range res.MatchedSkills {
		seen[m] = true
	}
	for _, m := range res.MissingSkills {
		if seen[m] {
			t.Fatalf("skill %q both matched and missing", m)
		}
		seen[m] = true
	}
	for _, r := range required.Names() {
		if !seen[r] {
			t.Fatalf("required skill %q neither matched nor missing", r)
		}
	}
}

func TestMatch_SemanticMatchAboveThreshold(t *testing.T) {
	// golang and go embed close together; the exact check fails but the
	// similarity check should pass.
	emb := &stubEmbedder{vectors: map[string]skill.Vector{
		"golang": {1, 0.05, 0},
		"go":     {1, 0, 0},
	}}
	b := newTestEngine(emb).NewBatch()

	res, err := b.Match(context.Background(), skill.NewSet("golang"), skill.NewSet("go"), skill.NewSet())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(res.MatchScore-1.0) > 1e-9 {
		t.Fatalf("expected full required coverage (score 1.0), got %f", res.MatchScore)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", res.MissingSkills)
	}
}

func TestMatch_EmptyProfile(t *testing.T) {
	b := newTestEngine(&stubEmbedder{}).NewBatch()

	res, err := b.Match(context.Background(), skill.NewSet(), skill.NewSet("go", "sql"), skill.NewSet())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.MatchScore != 0 {
		t.Fatalf("expected score 0 for empty profile, got %f", res.MatchScore)
	}
	if len(res.MissingSkills) != 2 {
		t.Fatalf("expected all required missing, got %v", res.MissingSkills)
	}
	if res.GapPercent != 100 {
		t.Fatalf("expected gap 100%%, got %f", res.GapPercent)
	}
}

func TestMatch_EmptyRequired(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]skill.Vector{"sql": {0, 1, 0}}}
	b := newTestEngine(emb).NewBatch()

	res, err := b.Match(context.Background(), skill.NewSet("sql"), skill.NewSet(), skill.NewSet("sql"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(res.MatchScore-1.0) > 1e-9 {
		t.Fatalf("expected required term 1.0 plus full preferred (score 1.0), got %f", res.MatchScore)
	}
	if res.GapPercent != 0 {
		t.Fatalf("expected gap 0, got %f", res.GapPercent)
	}
}

func TestMatch_ProviderFailureSurfaces(t *testing.T) {
	emb := &stubEmbedder{err: embedding.ErrProviderUnavailable}
	b := newTestEngine(emb).NewBatch()

	_, err := b.Match(context.Background(), skill.NewSet("go"), skill.NewSet("rust"), skill.NewSet())
	if !errors.Is(err, embedding.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestBatch_MemoizesAcrossJobs(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string]skill.Vector{
		"go":   {1, 0, 0},
		"rust": {0, 1, 0},
		"c++":  {0, 0.9, 0.1},
	}}
	b := newTestEngine(emb).NewBatch()
	ctx := context.Background()
	profile := skill.NewSet("go")

	if _, err := b.Match(ctx, profile, skill.NewSet("rust"), skill.NewSet()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	first := emb.calls.Load()

	// Second job re-uses the profile embedding; only c++ is new.
	if _, err := b.Match(ctx, profile, skill.NewSet("rust", "c++"), skill.NewSet()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second := emb.calls.Load() - first
	if second > 1 {
		t.Fatalf("expected at most one provider call for the second job, got %d", second)
	}
}
