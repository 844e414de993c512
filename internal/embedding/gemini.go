package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-match/internal/domain/skill"

	"google.golang.org/genai"
)

const defaultEmbeddingModel = "gemini-embedding-001"

// Gemini embeds skill text via the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultEmbeddingModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Embed(ctx context.Context, texts []string) ([]skill.Vector, error) {
	if g == nil || g.client == nil {
		return nil, ErrProviderUnavailable
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrProviderUnavailable, embeddingCount(resp), len(texts))
	}

	out := make([]skill.Vector, 0, len(texts))
	for _, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, fmt.Errorf("%w: empty embedding in batch", ErrProviderUnavailable)
		}
		v := make(skill.Vector, len(e.Values))
		for i, f := range e.Values {
			v[i] = float64(f)
		}
		out = append(out, v)
	}
	return out, nil
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}
