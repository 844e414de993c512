package chat

import (
	"sync"
	"time"

	"career-match/internal/chat/provider"

	"github.com/google/uuid"
)

const (
	DefaultHistoryLimit = 10
	DefaultIdleTimeout  = 30 * time.Minute
)

type Session struct {
	ID        string
	ProfileID uuid.UUID
	System    string
	UpdatedAt time.Time

	// mu guards turns; Window may run concurrently with Append when two
	// requests share a session id.
	mu    sync.Mutex
	turns []provider.Turn
}

// Window returns a copy of the most recent turns, at most limit of them.
// The full transcript stays on the session; only the provider context is
// bounded.
func (s *Session) Window(limit int) []provider.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]provider.Turn, len(turns))
	copy(out, turns)
	return out
}

// Transcript returns a copy of the full transcript.
func (s *Session) Transcript() []provider.Turn {
	return s.Window(0)
}

func (s *Session) append(userMsg, assistantMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns,
		provider.Turn{Role: provider.RoleUser, Content: userMsg},
		provider.Turn{Role: provider.RoleAssistant, Content: assistantMsg},
	)
}

// SessionStore keeps chat sessions in memory and drops the ones nobody
// has touched within the idle timeout.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

func NewSessionStore(idleTimeout time.Duration) *SessionStore {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &SessionStore{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Acquire returns the existing session or creates a fresh one bound to
// the profile with the given system context.
func (st *SessionStore) Acquire(id string, profileID uuid.UUID, system string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()

	if id != "" {
		if s, ok := st.sessions[id]; ok {
			s.UpdatedAt = st.now()
			return s
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{ID: id, ProfileID: profileID, System: system, UpdatedAt: st.now()}
	st.sessions[id] = s
	return s
}

// Append records one completed user/assistant exchange.
func (st *SessionStore) Append(s *Session, userMsg, assistantMsg string) {
	s.append(userMsg, assistantMsg)

	st.mu.Lock()
	defer st.mu.Unlock()
	s.UpdatedAt = st.now()
}

func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) sweepLocked() {
	cutoff := st.now().Add(-st.idleTimeout)
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
