package quoteform

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL bounds how long an idle session is kept.
const DefaultSessionTTL = 2 * time.Hour

// Store keeps sessions between the requests of one page load.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// NewSessionID returns a random session id.
func NewSessionID() string {
	return uuid.NewString()
}

type memoryEntry struct {
	snap      Snapshot
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	def *Definition
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an in-memory store. A non-positive ttl uses DefaultSessionTTL.
func NewMemoryStore(def *Definition, ttl time.Duration) *MemoryStore {
	if def == nil {
		panic("quoteform: definition required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		def:      def,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// Create starts a new session and stores it.
func (m *MemoryStore) Create(ctx context.Context) (*Session, error) {
	s := NewSession(NewSessionID(), m.def)
	if err := m.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns a fresh copy of the stored session; mutations need a Save.
func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	if ok && !m.now().Before(entry.expiresAt) {
		delete(m.sessions, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return Restore(m.def, entry.snap)
}

// Save stores the session and extends its expiry.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	snap := s.Snapshot()
	m.mu.Lock()
	m.sessions[s.ID()] = memoryEntry{snap: snap, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// Delete removes a session. Unknown ids are not an error.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Len reports how many sessions are held, expired ones included until touched.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
