package matching

import (
	"context"
	"sync"

	"career-match/internal/domain/skill"
	"career-match/internal/embedding"

	"github.com/google/uuid"
)

type Config struct {
	// SimilarityThreshold is the minimum cosine similarity for an
	// embedding-based skill match. Exact string equality always matches
	// first and never touches the provider.
	SimilarityThreshold float64
	RequiredWeight      float64
	PreferredWeight     float64
}

func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.65,
		RequiredWeight:      0.7,
		PreferredWeight:     0.3,
	}
}

type Result struct {
	JobID         uuid.UUID
	MatchScore    float64
	MatchedSkills []string
	MissingSkills []string
	GapPercent    float64
}

// Engine scores a profile's skill set against a job's required and
// preferred skills. It never mutates its inputs.
type Engine struct {
	embedder embedding.Provider
	cfg      Config
}

func NewEngine(embedder embedding.Provider, cfg Config) *Engine {
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = DefaultConfig().SimilarityThreshold
	}
	if cfg.RequiredWeight <= 0 {
		cfg.RequiredWeight = DefaultConfig().RequiredWeight
	}
	if cfg.PreferredWeight < 0 {
		cfg.PreferredWeight = DefaultConfig().PreferredWeight
	}
	return &Engine{embedder: embedder, cfg: cfg}
}

// Batch memoizes embeddings for the duration of one ranking pass so that a
// profile scored against many jobs embeds each skill string once. A Batch
// is safe for concurrent use.
type Batch struct {
	engine *Engine

	mu   sync.Mutex
	memo map[string]skill.Vector
}

func (e *Engine) NewBatch() *Batch {
	return &Batch{engine: e, memo: make(map[string]skill.Vector)}
}

// Match scores profileSkills against required and preferred, embedding only
// the skills the cheap exact check could not resolve.
func (b *Batch) Match(ctx context.Context, profileSkills, required, preferred skill.Set) (Result, error) {
	e := b.engine
	jobSkills := required.Union(preferred)

	res := Result{
		MatchedSkills: make([]string, 0, jobSkills.Len()),
		MissingSkills: make([]string, 0, required.Len()),
	}

	// An empty profile can match nothing; score 0 regardless of weights.
	if profileSkills.IsEmpty() {
		res.MissingSkills = required.Names()
		res.GapPercent = gapPercent(required.Len(), required.Len())
		return res, nil
	}

	// Exact case-insensitive matches first; both sets are already
	// normalized, so this is plain membership.
	pending := make([]string, 0, jobSkills.Len())
	matched := make(map[string]bool, jobSkills.Len())
	for _, js := range jobSkills.Names() {
		if profileSkills.Contains(js) {
			matched[js] = true
			continue
		}
		pending = append(pending, js)
	}

	if len(pending) > 0 {
		profileVecs, err := b.vectors(ctx, profileSkills.Names())
		if err != nil {
			return Result{}, err
		}
		pendingVecs, err := b.vectors(ctx, pending)
		if err != nil {
			return Result{}, err
		}
		for i, js := range pending {
			for _, pv := range profileVecs {
				sim, err := skill.Cosine(pv, pendingVecs[i])
				if err != nil {
					return Result{}, err
				}
				if sim >= e.cfg.SimilarityThreshold {
					matched[js] = true
					break
				}
			}
		}
	}

	matchedRequired := 0
	for _, js := range jobSkills.Names() {
		if matched[js] {
			res.MatchedSkills = append(res.MatchedSkills, js)
		}
	}
	for _, rs := range required.Names() {
		if matched[rs] {
			matchedRequired++
		} else {
			res.MissingSkills = append(res.MissingSkills, rs)
		}
	}
	matchedPreferred := 0
	for _, ps := range preferred.Names() {
		if matched[ps] {
			matchedPreferred++
		}
	}

	res.MatchScore = e.score(matchedRequired, required.Len(), matchedPreferred, preferred.Len())
	res.GapPercent = gapPercent(len(res.MissingSkills), required.Len())
	return res, nil
}

func (e *Engine) score(matchedRequired, totalRequired, matchedPreferred, totalPreferred int) float64 {
	requiredTerm := 1.0
	if totalRequired > 0 {
		requiredTerm = float64(matchedRequired) / float64(totalRequired)
	}
	var s float64
	if totalPreferred == 0 {
		// No preferred skills listed: the preferred weight folds into the
		// required term, so full required coverage still scores 1.0.
		s = requiredTerm
	} else {
		preferredTerm := float64(matchedPreferred) / float64(totalPreferred)
		s = e.cfg.RequiredWeight*requiredTerm + e.cfg.PreferredWeight*preferredTerm
	}
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s
}

func gapPercent(missing, totalRequired int) float64 {
	denom := totalRequired
	if denom < 1 {
		denom = 1
	}
	return 100 * float64(missing) / float64(denom)
}

// vectors returns embeddings for texts, consulting the batch memo and
// embedding only the misses in a single provider call.
func (b *Batch) vectors(ctx context.Context, texts []string) ([]skill.Vector, error) {
	out := make([]skill.Vector, len(texts))

	b.mu.Lock()
	missIdx := make([]int, 0, len(texts))
	for i, t := range texts {
		if v, ok := b.memo[t]; ok {
			out[i] = v
		} else {
			missIdx = append(missIdx, i)
		}
	}
	b.mu.Unlock()

	if len(missIdx) == 0 {
		return out, nil
	}

	miss := make([]string, len(missIdx))
	for i, idx := range missIdx {
		miss[i] = texts[idx]
	}

	vecs, err := b.engine.embedder.Embed(ctx, miss)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(miss) {
		return nil, embedding.ErrProviderUnavailable
	}

	b.mu.Lock()
	for i, idx := range missIdx {
		b.memo[miss[i]] = vecs[i]
		out[idx] = vecs[i]
	}
	b.mu.Unlock()

	return out, nil
}
