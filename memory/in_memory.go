package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/ragmesh/core"
)

// DefaultTTL is the inactivity window after which a session's history
// expires, measured from the last write.
const DefaultTTL = time.Hour

// InMemoryOptions configures the in-memory store.
type InMemoryOptions struct {
	// TTL is the sliding inactivity window. Zero disables expiry.
	TTL time.Duration

	// Now supplies the clock. Overridden in tests to exercise expiry
	// without sleeping.
	Now func() time.Time
}

type sessionHistory struct {
	messages  []core.Message
	lastWrite time.Time
}

// InMemoryStore is a volatile MemoryStore keeping histories in a process
// local map. It is safe for concurrent access; returned slices are copies so
// callers cannot mutate internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionHistory
	opts     InMemoryOptions
}

// NewInMemoryStore constructs an empty in-memory store with a one hour
// sliding TTL.
func NewInMemoryStore(optFns ...func(o *InMemoryOptions)) *InMemoryStore {
	opts := InMemoryOptions{
		TTL: DefaultTTL,
		Now: time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		sessions: make(map[string]*sessionHistory),
		opts:     opts,
	}
}

// Append adds a message to the session's history and refreshes the TTL.
func (s *InMemoryStore) Append(_ context.Context, sessionID string, msg core.Message) error {
	if sessionID == "" {
		return core.ErrMissingSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	hist, ok := s.sessions[sessionID]
	if !ok || s.expired(hist, now) {
		if ok {
			delete(s.sessions, sessionID)
		}
		hist = &sessionHistory{}
		s.sessions[sessionID] = hist
	}
	hist.messages = append(hist.messages, msg)
	hist.lastWrite = now
	return nil
}

// History returns the session's messages in append order. An expired or
// unknown session yields an empty history, not an error; expired entries are
// removed so abandoned sessions do not accumulate.
func (s *InMemoryStore) History(_ context.Context, sessionID string) ([]core.Message, error) {
	if sessionID == "" {
		return nil, core.ErrMissingSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	hist, ok := s.sessions[sessionID]
	if !ok {
		return []core.Message{}, nil
	}
	if s.expired(hist, s.opts.Now()) {
		delete(s.sessions, sessionID)
		return []core.Message{}, nil
	}
	out := make([]core.Message, len(hist.messages))
	copy(out, hist.messages)
	return out, nil
}

func (s *InMemoryStore) expired(hist *sessionHistory, now time.Time) bool {
	if s.opts.TTL <= 0 {
		return false
	}
	return now.Sub(hist.lastWrite) >= s.opts.TTL
}

// Compile-time check that InMemoryStore implements MemoryStore.
var _ core.MemoryStore = (*InMemoryStore)(nil)
