package api

import (
	"log/slog"
	"sync"
	"time"

	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/projectservice"
	"github.com/starford/showcase/internal/ui"
)

// DefaultSessionLimit caps how many controllers stay in memory.
const DefaultSessionLimit = 1024

// Sessions keeps one ui.Controller per visitor. Each visitor's saved state
// lives in the shared store under its session id.
type Sessions struct {
	svc    *projectservice.Service
	store  kvstore.Store
	logger *slog.Logger
	limit  int

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu       sync.Mutex
	kv       kvstore.Store
	ctrl     *ui.Controller
	version  uint64
	lastSeen time.Time
}

// NewSessions creates a session table over svc. store may be nil, in which
// case nothing is remembered between controllers.
func NewSessions(svc *projectservice.Service, store kvstore.Store, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = kvstore.NewMemory()
	}
	return &Sessions{
		svc:      svc,
		store:    store,
		logger:   logger,
		limit:    DefaultSessionLimit,
		sessions: make(map[string]*session),
	}
}

// Store returns the key-value view scoped to session id.
func (s *Sessions) Store(id string) kvstore.Store {
	return kvstore.Namespaced{Store: s.store, Prefix: id + ":"}
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		if len(s.sessions) >= s.limit {
			s.evictOldest()
		}
		sess = &session{kv: s.Store(id)}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

// evictOldest drops the least recently seen session. Callers hold s.mu.
func (s *Sessions) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldestID)
}

// With runs fn with the controller of session id. The controller is rebuilt
// when the catalog was reloaded since its last use; it then restores the
// session's saved filters. Calls for one session are serialized.
func (s *Sessions) With(id string, fn func(c *ui.Controller, kv kvstore.Store) error) error {
	snap, err := s.svc.Snapshot()
	if err != nil {
		return err
	}
	sess := s.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.ctrl == nil || sess.version != snap.Version {
		sess.ctrl = ui.NewController(snap.Projects,
			ui.WithStore(sess.kv),
			ui.WithLogger(s.logger.With(slog.String("session", id))))
		sess.version = snap.Version
	}
	return fn(sess.ctrl, sess.kv)
}
