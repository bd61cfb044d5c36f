package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

type entry struct {
	orch     *Orchestrator
	lastSeen time.Time
}

// Registry keeps orchestrators keyed by session id and evicts idle ones.
type Registry struct {
	queries Queries
	timeout time.Duration
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewRegistry builds a registry whose orchestrators use queries and the given
// per-query timeout. Sessions idle longer than idleTTL are swept; zero disables eviction.
func NewRegistry(queries Queries, timeout, idleTTL time.Duration) *Registry {
	return &Registry{
		queries:  queries,
		timeout:  timeout,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new Idle session.
func (r *Registry) Create() (string, *Orchestrator) {
	id := uuid.NewString()
	orch := NewOrchestrator(r.queries, r.timeout)

	r.mu.Lock()
	r.sessions[id] = &entry{orch: orch, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	observability.SessionsActive.Set(float64(n))
	return id, orch
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*Orchestrator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	e.lastSeen = r.now()
	return e.orch, nil
}

// Delete removes the session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	observability.SessionsActive.Set(float64(n))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle longer than the TTL. Sessions with a query in
// flight are kept. It returns the number evicted.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	evicted := 0
	for id, e := range r.sessions {
		if e.lastSeen.After(cutoff) {
			continue
		}
		if e.orch.Snapshot().Loading {
			continue
		}
		delete(r.sessions, id)
		evicted++
	}
	n := len(r.sessions)
	r.mu.Unlock()

	observability.SessionsActive.Set(float64(n))
	return evicted
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				slog.Info("evicted idle sessions", slog.Int("count", n), slog.Int("remaining", r.Len()))
			}
		}
	}
}
