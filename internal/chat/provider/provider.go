package provider

import (
	"context"
	"errors"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role
	Content string
}

var (
	ErrTimeout         = errors.New("provider: request timed out")
	ErrRateLimited     = errors.New("provider: rate limited")
	ErrInvalidResponse = errors.New("provider: invalid response")
)

// Generator produces one assistant reply given the system context, the
// prior conversation turns, and the new user message. Implementations
// must respect ctx cancellation.
type Generator interface {
	Name() string
	Generate(ctx context.Context, system string, history []Turn, message string) (string, error)
}
