package realms

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tmorgan/bloodmoney/internal/api"
	"github.com/tmorgan/bloodmoney/internal/model"
)

// RealmLister fetches the realm list.
type RealmLister interface {
	GetRealms(ctx context.Context) ([]api.RealmInfo, error)
}

// Config holds Realm Registry configuration.
type Config struct {
	ReconcileInterval time.Duration
	SyncTimeout       time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ReconcileInterval: 1 * time.Hour,
		SyncTimeout:       5 * time.Minute,
	}
}

// Registry tracks the realm list and its connected-realm groups.
type Registry struct {
	cfg    Config
	rest   RealmLister
	logger *slog.Logger

	mu         sync.RWMutex
	realms     []model.Realm
	groups     []model.ConnectedRealmGroup
	lastSyncAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Realm Registry.
func New(cfg Config, rest RealmLister, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		cfg:    cfg,
		rest:   rest,
		logger: logger,
	}
}

// Start performs the initial realm sync (blocking) and begins background
// reconciliation.
func (r *Registry) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	if err := r.sync(r.ctx); err != nil {
		r.cancel()
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.reconcileLoop(r.ctx)
	}()

	r.logger.Info("realm registry started",
		"reconcile_interval", r.cfg.ReconcileInterval,
	)

	return nil
}

// Stop halts background reconciliation.
func (r *Registry) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.logger.Info("realm registry stopped")
}

// Realms returns the current realm list.
func (r *Registry) Realms() []model.Realm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Realm, len(r.realms))
	copy(out, r.realms)
	return out
}

// Groups returns the current connected-realm groups.
func (r *Registry) Groups() []model.ConnectedRealmGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ConnectedRealmGroup, len(r.groups))
	copy(out, r.groups)
	return out
}

// LastSyncAt returns the time of the last successful sync.
func (r *Registry) LastSyncAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastSyncAt
}

// reconcileLoop periodically re-syncs the realm list.
func (r *Registry) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ReconcileInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.sync(ctx); err != nil {
				// Keep serving the last good realm list.
				r.logger.Error("realm reconciliation failed", "err", err)
			}
		}
	}
}
