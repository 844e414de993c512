package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"career-match/internal/chat/provider"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultModel = goopenai.GPT4oMini

// Generator answers chat turns through the OpenAI chat completions API.
type Generator struct {
	client *goopenai.Client
	model  string
}

func NewGenerator(apiKey, model string) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Generator{client: goopenai.NewClient(apiKey), model: model}, nil
}

func (g *Generator) Name() string { return "openai" }

func (g *Generator) Generate(ctx context.Context, system string, history []provider.Turn, message string) (string, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(history)+2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, turn := range history {
		role := goopenai.ChatMessageRoleUser
		if turn.Role == provider.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, goopenai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", provider.ErrRateLimited
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", provider.ErrTimeout
		}
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", provider.ErrInvalidResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
