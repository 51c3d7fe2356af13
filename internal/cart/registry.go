package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/urbanx-storefront/pkg/logger"
)

const defaultSweepInterval = time.Minute

type registryRecorder interface {
	SetActiveCarts(n int)
	ObserveSweep(duration time.Duration, evicted int)
}

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per shopper session and evicts idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	idleTTL  time.Duration
	interval time.Duration
	logg     *logger.Logger
	metrics  registryRecorder
	onCreate func(uuid.UUID, *Store)
	now      func() time.Time
}

// RegistryParams configure the session registry.
type RegistryParams struct {
	Logger        *logger.Logger
	Metrics       registryRecorder
	IdleTTL       time.Duration
	SweepInterval time.Duration
	// OnCreate runs once for every new store, before it is handed out. It
	// must not call back into the registry.
	OnCreate func(sessionID uuid.UUID, store *Store)
}

// NewRegistry builds an empty session registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.IdleTTL <= 0 {
		return nil, errors.New("idle ttl must be positive")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	interval := params.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*session),
		idleTTL:  params.IdleTTL,
		interval: interval,
		logg:     logg,
		metrics:  params.Metrics,
		onCreate: params.OnCreate,
		now:      time.Now,
	}, nil
}

// Get returns the session's store, creating an empty one on first use.
func (r *Registry) Get(sessionID uuid.UUID) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[sessionID]; ok {
		s.lastSeen = now
		return s.store
	}
	// An empty initial line set cannot fail validation.
	store, _ := NewStore(nil, WithLogger(r.logg))
	if r.onCreate != nil {
		r.onCreate(sessionID, store)
	}
	r.sessions[sessionID] = &session{store: store, lastSeen: now}
	r.reportSize()
	return store
}

// Lookup returns the session's store without creating or touching it.
func (r *Registry) Lookup(sessionID uuid.UUID) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return s.store, true
}

// Remove drops the session's store.
func (r *Registry) Remove(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	r.reportSize()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts every store idle for longer than the idle TTL and returns the
// number evicted.
func (r *Registry) Sweep(ctx context.Context) int {
	start := time.Now()
	r.mu.Lock()
	cutoff := r.now().Add(-r.idleTTL)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	r.reportSize()
	remaining := len(r.sessions)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ObserveSweep(time.Since(start), evicted)
	}
	if evicted > 0 {
		r.logg.Info(r.logg.WithFields(ctx, map[string]any{
			"event":     "cart.sweep",
			"evicted":   evicted,
			"remaining": remaining,
		}), "idle carts evicted")
	}
	return evicted
}

// Run sweeps on a fixed cadence until the context is canceled.
func (r *Registry) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "cart sweeper context canceled")
			return ctx.Err()
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func (r *Registry) reportSize() {
	if r.metrics != nil {
		r.metrics.SetActiveCarts(len(r.sessions))
	}
}
