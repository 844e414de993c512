package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-match/internal/chat"
	"career-match/internal/domain/profile"
	"career-match/internal/repository"

	"github.com/google/uuid"
)

type ChatReply struct {
	SessionID string
	Text      string
	Provider  string
	Degraded  bool
}

type ChatUsecase interface {
	Send(ctx context.Context, profileID uuid.UUID, sessionID, message string) (ChatReply, error)
	SuggestSkills(ctx context.Context, profileID uuid.UUID) (ChatReply, error)
	LearningPath(ctx context.Context, profileID uuid.UUID, targetSkill string) (ChatReply, error)
}

type Chat struct {
	profiles repository.Profiles
	router   *chat.Router
}

func NewChatUsecase(profiles repository.Profiles, router *chat.Router) *Chat {
	return &Chat{profiles: profiles, router: router}
}

func (u *Chat) Send(ctx context.Context, profileID uuid.UUID, sessionID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if profileID == uuid.Nil || message == "" {
		return ChatReply{}, ErrInvalidInput
	}

	p, err := u.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ChatReply{}, ErrProfileNotFound
		}
		return ChatReply{}, ErrInternal
	}

	s := u.router.Sessions().Acquire(sessionID, profileID, systemContext(p))
	reply := u.router.Send(ctx, s, message)

	return ChatReply{
		SessionID: s.ID,
		Text:      reply.Text,
		Provider:  reply.Provider,
		Degraded:  reply.Degraded,
	}, nil
}

func (u *Chat) SuggestSkills(ctx context.Context, profileID uuid.UUID) (ChatReply, error) {
	if profileID == uuid.Nil {
		return ChatReply{}, ErrInvalidInput
	}

	p, err := u.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ChatReply{}, ErrProfileNotFound
		}
		return ChatReply{}, ErrInternal
	}

	prompt := fmt.Sprintf(
		"Suggest 3 to 5 skills this person should learn next to improve their job prospects. Answer with a short list and one sentence of reasoning each. Current skills: %s.",
		strings.Join(p.Skills.Names(), ", "))
	reply := u.router.Complete(ctx, systemContext(p), prompt)
	return ChatReply{Text: reply.Text, Provider: reply.Provider, Degraded: reply.Degraded}, nil
}

func (u *Chat) LearningPath(ctx context.Context, profileID uuid.UUID, targetSkill string) (ChatReply, error) {
	targetSkill = strings.TrimSpace(targetSkill)
	if profileID == uuid.Nil || targetSkill == "" {
		return ChatReply{}, ErrInvalidInput
	}

	p, err := u.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ChatReply{}, ErrProfileNotFound
		}
		return ChatReply{}, ErrInternal
	}

	prompt := fmt.Sprintf(
		"Lay out a practical learning path for %s, building on what this person already knows. Keep it to 4 or 5 steps.",
		targetSkill)
	reply := u.router.Complete(ctx, systemContext(p), prompt)
	return ChatReply{Text: reply.Text, Provider: reply.Provider, Degraded: reply.Degraded}, nil
}

// systemContext grounds the advisor in the profile so answers reference
// actual skills and goals instead of generic advice.
func systemContext(p profile.Profile) string {
	var sb strings.Builder
	sb.WriteString("You are a career advisor for a job matching platform. Be concise and practical.")
	if !p.Skills.IsEmpty() {
		fmt.Fprintf(&sb, " The user's skills: %s.", strings.Join(p.Skills.Names(), ", "))
	}
	if p.DesiredRole != "" {
		fmt.Fprintf(&sb, " They are aiming for a role as %s.", p.DesiredRole)
	}
	if p.Experience != "" {
		fmt.Fprintf(&sb, " Experience level: %s.", p.Experience)
	}
	return sb.String()
}
