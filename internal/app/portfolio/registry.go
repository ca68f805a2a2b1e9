package portfolio

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one visitor session.
type SessionID string

type registryEntry struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry keeps one Controller per visitor session, all sharing the same Deps (and so the
// same member store). Sessions idle for longer than the idle TTL are forgotten.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	idleTTL  time.Duration
	sessions map[SessionID]*registryEntry

	newSessionID func() SessionID
}

func NewRegistry(deps Deps, idleTTL time.Duration) *Registry {
	return &Registry{
		deps:     deps,
		idleTTL:  idleTTL,
		sessions: make(map[SessionID]*registryEntry),
		newSessionID: func() SessionID {
			return SessionID(uuid.NewString())
		},
	}
}

// Create starts a fresh session on the landing page.
func (r *Registry) Create() (SessionID, *Controller) {
	ctrl := NewController(r.deps)
	now := r.deps.Clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newSessionID()
	r.sessions[id] = &registryEntry{ctrl: ctrl, lastSeen: now}
	return id, ctrl
}

// Get returns the controller of a live session and marks it as used.
func (r *Registry) Get(id SessionID) (*Controller, bool) {
	now := r.deps.Clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expired(e, now) {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.ctrl, true
}

// Sweep forgets every idle session and returns how many were removed.
func (r *Registry) Sweep() int {
	now := r.deps.Clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of tracked sessions, idle ones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(e *registryEntry, now time.Time) bool {
	return r.idleTTL > 0 && now.Sub(e.lastSeen) > r.idleTTL
}
