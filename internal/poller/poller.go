package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tmorgan/bloodmoney/internal/api"
	"github.com/tmorgan/bloodmoney/internal/model"
)

// GroupSource provides connected-realm groups to poll.
type GroupSource interface {
	Groups() []model.ConnectedRealmGroup
}

// AuctionFetcher fetches one group's auction snapshot. nil, nil means the
// snapshot has not changed since cutoff.
type AuctionFetcher interface {
	GetAuctionListings(ctx context.Context, realmSlug string, cutoff int64) (*api.AuctionSnapshot, error)
}

// SnapshotHandler receives fetched snapshots.
type SnapshotHandler interface {
	HandleSnapshot(snapshot model.AuctionSnapshot) error
}

// SnapshotHandlerFunc is a function adapter for SnapshotHandler.
type SnapshotHandlerFunc func(model.AuctionSnapshot) error

func (f SnapshotHandlerFunc) HandleSnapshot(s model.AuctionSnapshot) error {
	return f(s)
}

// Config holds poller configuration.
type Config struct {
	Interval    time.Duration // Poll interval (default: 20m)
	Concurrency int           // Max concurrent groups (default: 10)
	Timeout     time.Duration // Per-group timeout (default: 10m; bulk payloads are large)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    20 * time.Minute,
		Concurrency: 10,
		Timeout:     10 * time.Minute,
	}
}

// Poller periodically fetches auction snapshots for every
// connected-realm group.
type Poller struct {
	cfg     Config
	client  AuctionFetcher
	groups  GroupSource
	handler SnapshotHandler
	logger  *slog.Logger

	// Per-group lastModified cutoffs. Only advanced after the handler
	// accepts a snapshot, so a failed write is re-fetched next cycle.
	cutoffMu sync.Mutex
	cutoffs  map[string]int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller.
func New(cfg Config, client AuctionFetcher, groups GroupSource, handler SnapshotHandler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		cfg:     cfg,
		client:  client,
		groups:  groups,
		handler: handler,
		logger:  logger,
		cutoffs: make(map[string]int64),
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("auction poller started",
		"interval", p.cfg.Interval,
		"concurrency", p.cfg.Concurrency,
	)

	return nil
}

// Stop gracefully shuts down the poller.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("auction poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main polling loop.
func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
	p.pollAll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollAll()
		}
	}
}

// pollAll fetches auction data for all groups with bounded concurrency.
func (p *Poller) pollAll() {
	start := time.Now()

	groups := p.groups.Groups()
	if len(groups) == 0 {
		p.logger.Debug("no realm groups to poll")
		return
	}

	var fetched, skipped, errCount atomic.Int64

	g, ctx := errgroup.WithContext(p.ctx)
	g.SetLimit(p.cfg.Concurrency)

	for _, group := range groups {
		slug := group.Leader()
		g.Go(func() error {
			switch err := p.pollGroup(ctx, slug); {
			case err == nil:
				fetched.Add(1)
			case err == errUnchanged:
				skipped.Add(1)
			default:
				p.logger.Warn("failed to poll auction house",
					"group", slug,
					"err", err,
				)
				errCount.Add(1)
			}
			// Errors are counted, not propagated: one bad group must not
			// cancel the rest of the cycle.
			return nil
		})
	}

	_ = g.Wait()

	p.logger.Info("poll cycle complete",
		"groups", len(groups),
		"fetched", fetched.Load(),
		"unchanged", skipped.Load(),
		"errors", errCount.Load(),
		"duration", time.Since(start),
	)
}

// errUnchanged marks a group whose snapshot has not advanced past the
// stored cutoff.
var errUnchanged = &unchangedError{}

type unchangedError struct{}

func (*unchangedError) Error() string { return "auction data unchanged" }

// pollGroup fetches and handles one group's auction snapshot.
func (p *Poller) pollGroup(ctx context.Context, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	cutoff := p.cutoff(slug)

	snapshot, err := p.client.GetAuctionListings(ctx, slug, cutoff)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return errUnchanged
	}

	s := model.AuctionSnapshot{
		SnapshotID:   uuid.New(),
		GroupSlug:    slug,
		LastModified: snapshot.LastModified,
		ReceivedAt:   api.NowMicro(),
		Listings:     make([]model.AuctionListing, 0, len(snapshot.Listings)),
	}
	for _, listing := range snapshot.Listings {
		s.Listings = append(s.Listings, listing.ToModel())
	}

	if p.handler != nil {
		if err := p.handler.HandleSnapshot(s); err != nil {
			return err
		}
	}

	p.setCutoff(slug, snapshot.LastModified)
	return nil
}

func (p *Poller) cutoff(slug string) int64 {
	p.cutoffMu.Lock()
	defer p.cutoffMu.Unlock()
	return p.cutoffs[slug]
}

func (p *Poller) setCutoff(slug string, lastModified int64) {
	p.cutoffMu.Lock()
	defer p.cutoffMu.Unlock()
	if lastModified > p.cutoffs[slug] {
		p.cutoffs[slug] = lastModified
	}
}
