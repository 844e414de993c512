package embedding

import (
	"context"
	"errors"

	"career-match/internal/domain/skill"
)

// ErrProviderUnavailable signals that the embedding backend is down or
// returned an unusable batch. Callers must treat the whole batch as failed
// rather than substituting zero vectors.
var ErrProviderUnavailable = errors.New("embedding provider unavailable")

// Provider maps texts to fixed-dimension vectors. Implementations should
// batch: one call per slice, not per element.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([]skill.Vector, error)
}

// Unavailable is the Provider used when no embedding backend is configured.
// Every call fails with ErrProviderUnavailable, so matching degrades to
// exact string comparison.
type Unavailable struct{}

func (Unavailable) Embed(context.Context, []string) ([]skill.Vector, error) {
	return nil, ErrProviderUnavailable
}
