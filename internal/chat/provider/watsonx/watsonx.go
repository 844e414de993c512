package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-match/internal/chat/provider"
)

const (
	defaultModel   = "ibm/granite-13b-chat-v2"
	apiVersion     = "2024-05-31"
	generationPath = "/ml/v1/text/generation"
)

// Generator answers chat turns through the IBM watsonx.ai text generation
// endpoint. watsonx has no official Go SDK, so this speaks the REST API
// directly.
type Generator struct {
	baseURL   string
	token     string
	projectID string
	model     string
	client    *http.Client
}

type Config struct {
	BaseURL   string
	Token     string
	ProjectID string
	Model     string
	Timeout   time.Duration
}

func NewGenerator(cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("watsonx base url is required")
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("watsonx token is required")
	}
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("watsonx project id is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Generator{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		projectID: cfg.ProjectID,
		model:     model,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (g *Generator) Name() string { return "watsonx" }

type generationRequest struct {
	ModelID    string               `json:"model_id"`
	ProjectID  string               `json:"project_id"`
	Input      string               `json:"input"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

func (g *Generator) Generate(ctx context.Context, system string, history []provider.Turn, message string) (string, error) {
	body, err := json.Marshal(generationRequest{
		ModelID:    g.model,
		ProjectID:  g.projectID,
		Input:      buildPrompt(system, history, message),
		Parameters: generationParameters{MaxNewTokens: 512},
	})
	if err != nil {
		return "", fmt.Errorf("watsonx encode request: %w", err)
	}

	url := g.baseURL + generationPath + "?version=" + apiVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("watsonx build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", provider.ErrTimeout
		}
		return "", fmt.Errorf("watsonx request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", provider.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("watsonx status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", provider.ErrInvalidResponse
	}
	if len(decoded.Results) == 0 || strings.TrimSpace(decoded.Results[0].GeneratedText) == "" {
		return "", provider.ErrInvalidResponse
	}
	return strings.TrimSpace(decoded.Results[0].GeneratedText), nil
}

// buildPrompt flattens the conversation into the single-input format the
// text generation endpoint expects.
func buildPrompt(system string, history []provider.Turn, message string) string {
	var sb strings.Builder
	if system = strings.TrimSpace(system); system != "" {
		sb.WriteString(system)
		sb.WriteString("\n\n")
	}
	for _, turn := range history {
		switch turn.Role {
		case provider.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("User: ")
	sb.WriteString(message)
	sb.WriteString("\nAssistant:")
	return sb.String()
}
