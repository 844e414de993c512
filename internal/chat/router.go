package chat

import (
	"context"
	"log"
	"time"

	"career-match/internal/chat/provider"
)

const DefaultDegradedResponse = "I apologize, but I'm having trouble connecting right now. Please try again later."

type Config struct {
	CallTimeout      time.Duration
	HistoryLimit     int
	FailureThreshold int
	Cooldown         time.Duration
	// RetrySameProvider allows one immediate retry against the failing
	// provider before falling through to the next one in the chain.
	RetrySameProvider bool
	DegradedResponse  string
}

func DefaultRouterConfig() Config {
	return Config{
		CallTimeout:      10 * time.Second,
		HistoryLimit:     DefaultHistoryLimit,
		FailureThreshold: DefaultFailureThreshold,
		Cooldown:         DefaultCooldown,
		DegradedResponse: DefaultDegradedResponse,
	}
}

type Reply struct {
	Text     string
	Provider string
	Degraded bool
}

// Router walks an ordered provider chain behind per-provider circuit
// breakers. When every provider is skipped or fails, it answers with the
// degraded response instead of an error so the chat surface stays up.
type Router struct {
	providers []provider.Generator
	registry  *Registry
	sessions  *SessionStore
	cfg       Config
	logger    *log.Logger
}

func NewRouter(providers []provider.Generator, sessions *SessionStore, cfg Config, logger *log.Logger) *Router {
	def := DefaultRouterConfig()
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.DegradedResponse == "" {
		cfg.DegradedResponse = def.DegradedResponse
	}
	return &Router{
		providers: providers,
		registry:  NewRegistry(cfg.FailureThreshold, cfg.Cooldown),
		sessions:  sessions,
		cfg:       cfg,
		logger:    logger,
	}
}

func (r *Router) Sessions() *SessionStore { return r.sessions }

// Send answers one user message within a session. On success exactly one
// user turn and one assistant turn are appended to the session; a
// degraded answer leaves the transcript untouched.
func (r *Router) Send(ctx context.Context, s *Session, message string) Reply {
	history := s.Window(r.cfg.HistoryLimit)

	text, name, ok := r.generate(ctx, s.System, history, message)
	if !ok {
		return Reply{Text: r.cfg.DegradedResponse, Degraded: true}
	}

	r.sessions.Append(s, message, text)
	return Reply{Text: text, Provider: name}
}

// Complete runs a one-shot generation outside any session, for ancillary
// operations like skill suggestions.
func (r *Router) Complete(ctx context.Context, system, message string) Reply {
	text, name, ok := r.generate(ctx, system, nil, message)
	if !ok {
		return Reply{Text: r.cfg.DegradedResponse, Degraded: true}
	}
	return Reply{Text: text, Provider: name}
}

func (r *Router) generate(ctx context.Context, system string, history []provider.Turn, message string) (string, string, bool) {
	for _, p := range r.providers {
		b := r.registry.For(p.Name())
		if !b.Allow() {
			continue
		}

		text, err := r.call(ctx, p, system, history, message)
		if err == nil {
			b.OnSuccess()
			return text, p.Name(), true
		}
		b.OnFailure()
		if r.logger != nil {
			r.logger.Printf("chat | provider=%s err=%v", p.Name(), err)
		}

		if r.cfg.RetrySameProvider && b.Allow() {
			text, err = r.call(ctx, p, system, history, message)
			if err == nil {
				b.OnSuccess()
				return text, p.Name(), true
			}
			b.OnFailure()
			if r.logger != nil {
				r.logger.Printf("chat | provider=%s retry err=%v", p.Name(), err)
			}
		}
	}
	return "", "", false
}

func (r *Router) call(ctx context.Context, p provider.Generator, system string, history []provider.Turn, message string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
	defer cancel()
	return p.Generate(callCtx, system, history, message)
}
