// Package session holds the bearer tokens obtained from the courier API.
// One session per logged-in browser, keyed by a random ID carried in the
// session cookie. The token itself is the only credential the portal keeps;
// there is no other durable client-side state.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kettno/courier-portal/internal/api"
)

// sweepInterval is how often expired tokens are reaped in the background.
// Between sweeps a session with a freshly-expired token is still rejected on
// access, so the staleness is bounded by a single request.
const sweepInterval = time.Minute

// Session is a logged-in staff session.
type Session struct {
	ID        string
	Token     string
	Username  string
	CreatedAt time.Time
}

// Store manages sessions and performs logins against the remote API.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	client api.Client
	stop   chan struct{}
	once   sync.Once
}

// NewStore creates a session store backed by the given API client and starts
// the background expiry sweeper. Call Stop on shutdown.
func NewStore(client api.Client) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		client:   client,
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Login exchanges credentials for a bearer token and creates a session.
// On failure nothing is stored and the API's error message is returned.
func (s *Store) Login(username, password string) (string, error) {
	token, err := s.client.Login(username, password)
	if err != nil {
		return "", err
	}

	session := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		Username:  username,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.ID, nil
}

// Get returns the session for id if it exists and its token has not expired.
// An expired or undecodable token deletes the session on the spot, so the
// caller sees exactly "not authenticated".
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if TokenExpired(session.Token) {
		s.Logout(id)
		return nil, false
	}
	return session, true
}

// IsAuthenticated reports whether id refers to a live session.
func (s *Store) IsAuthenticated(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Logout removes a session. Unconditional; removing a missing session is a
// no-op.
func (s *Store) Logout(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count returns the number of live sessions (expired ones included until the
// next sweep).
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stop terminates the background sweeper.
func (s *Store) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// sweep force-logs-out sessions whose token expired while idle.
func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.reapExpired()
		}
	}
}

func (s *Store) reapExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if TokenExpired(session.Token) {
			log.Printf("session %s expired, forcing logout", id)
			delete(s.sessions, id)
		}
	}
}
