package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"career-match/internal/chat"
	"career-match/internal/chat/provider"
	"career-match/internal/domain/profile"
	"career-match/internal/domain/skill"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

type scriptedGenerator struct {
	reply      string
	err        error
	lastSystem string
	lastMsg    string
	calls      int
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) Generate(_ context.Context, system string, _ []provider.Turn, message string) (string, error) {
	g.calls++
	g.lastSystem = system
	g.lastMsg = message
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newChatFixture(t *testing.T, gen provider.Generator) (*Chat, profile.Profile) {
	t.Helper()
	profiles := repository.NewMemoryProfiles()
	p := profile.Profile{
		ID:          uuid.New(),
		Skills:      skill.NewSet("go", "sql"),
		DesiredRole: "backend engineer",
	}
	profiles.Put(p)

	router := chat.NewRouter([]provider.Generator{gen}, chat.NewSessionStore(time.Hour), chat.Config{}, nil)
	return NewChatUsecase(profiles, router), p
}

func TestChatSend_ReturnsReplyAndSession(t *testing.T) {
	gen := &scriptedGenerator{reply: "Focus on Kubernetes."}
	u, p := newChatFixture(t, gen)

	reply, err := u.Send(context.Background(), p.ID, "", "what should I learn?")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply.Degraded || reply.Text != "Focus on Kubernetes." {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if !strings.Contains(gen.lastSystem, "go, sql") {
		t.Fatalf("system context should carry the profile skills, got %q", gen.lastSystem)
	}
	if !strings.Contains(gen.lastSystem, "backend engineer") {
		t.Fatalf("system context should carry the desired role, got %q", gen.lastSystem)
	}
}

func TestChatSend_ReusesSession(t *testing.T) {
	gen := &scriptedGenerator{reply: "ok"}
	u, p := newChatFixture(t, gen)

	first, err := u.Send(context.Background(), p.ID, "", "first")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := u.Send(context.Background(), p.ID, first.SessionID, "second")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("expected the same session id across turns")
	}
}

func TestChatSend_DegradedIsNotAnError(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("down")}
	u, p := newChatFixture(t, gen)

	reply, err := u.Send(context.Background(), p.ID, "", "hello")
	if err != nil {
		t.Fatalf("degraded answers are not errors, got %v", err)
	}
	if !reply.Degraded {
		t.Fatalf("expected degraded reply")
	}
	if reply.Text == "" {
		t.Fatalf("expected degraded text")
	}
}

func TestChatSend_Validation(t *testing.T) {
	u, p := newChatFixture(t, &scriptedGenerator{reply: "ok"})

	if _, err := u.Send(context.Background(), p.ID, "", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank message, got %v", err)
	}
	if _, err := u.Send(context.Background(), uuid.New(), "", "hi"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSuggestSkills_PromptCarriesCurrentSkills(t *testing.T) {
	gen := &scriptedGenerator{reply: "Learn Docker."}
	u, p := newChatFixture(t, gen)

	reply, err := u.SuggestSkills(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply.Text != "Learn Docker." {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if !strings.Contains(gen.lastMsg, "go, sql") {
		t.Fatalf("prompt should list current skills, got %q", gen.lastMsg)
	}
}

func TestLearningPath_RequiresTarget(t *testing.T) {
	u, p := newChatFixture(t, &scriptedGenerator{reply: "ok"})

	if _, err := u.LearningPath(context.Background(), p.ID, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	reply, err := u.LearningPath(context.Background(), p.ID, "kubernetes")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply.Degraded {
		t.Fatalf("unexpected degraded reply")
	}
}
