package services

import (
	"log"
	"sync"
	"time"

	"claritycoach/config"
	"claritycoach/gateway"

	"github.com/google/uuid"
)

// Session bundles the per-browser-session state: one translate/analyze
// workflow and one chat conversation. Sessions are owned by this process
// alone and vanish on eviction; nothing is shared across instances.
type Session struct {
	ID         string
	Workflow   *Workflow
	Chat       *ChatSession
	lastActive time.Time
}

// SessionStore is the in-memory session registry. A janitor goroutine
// evicts sessions idle past the TTL and releases their tickers.
type SessionStore struct {
	backend  Backend
	interval time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionStore(backend Backend, tickerInterval, ttl time.Duration) *SessionStore {
	store := &SessionStore{
		backend:  backend,
		interval: tickerInterval,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go store.janitor()
	return store
}

// GetOrCreate resolves an existing session or mints a new one when id is
// empty or unknown.
func (s *SessionStore) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.lastActive = time.Now()
			return sess
		}
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Workflow:   NewWorkflow(s.backend, NewTipTicker(s.interval, nil)),
		Chat:       NewChatSession(s.backend),
		lastActive: time.Now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for id, or nil.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastActive = time.Now()
		return sess
	}
	return nil
}

// Remove evicts one session and stops its ticker.
func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if ok {
		sess.Workflow.Close()
	}
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown stops the janitor and releases every session. Safe to call
// more than once.
func (s *SessionStore) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.Workflow.Close()
	}
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stop:
			return
		}
	}
}

func (s *SessionStore) evictIdle() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Workflow.Close()
	}
	if len(expired) > 0 {
		log.Printf("evicted %d idle session(s)", len(expired))
	}
}

// Package-level wiring in the style of the other services: main calls
// Init once, controllers reach the store through Store().
var (
	defaultStore   *SessionStore
	defaultBackend Backend
)

// Init builds the gateway client and session store from config.
func Init(cfg *config.Config) {
	InitWithBackend(cfg, gateway.New(cfg))
}

// InitWithBackend wires an explicit backend; tests use it to substitute
// a fake gateway.
func InitWithBackend(cfg *config.Config, backend Backend) {
	if defaultStore != nil {
		defaultStore.Shutdown()
	}
	defaultBackend = backend
	defaultStore = NewSessionStore(
		backend,
		time.Duration(cfg.Ticker.IntervalMs)*time.Millisecond,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
	)
}

// Store returns the process-wide session store.
func Store() *SessionStore {
	return defaultStore
}
