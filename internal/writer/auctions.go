package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmorgan/bloodmoney/internal/model"
)

// AuctionWriter batches auction listings into the auctions table. It
// implements poller.SnapshotHandler.
type AuctionWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	// Database
	db *pgxpool.Pool

	// Batching
	batch       []auctionRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics WriterMetrics
}

// NewAuctionWriter creates a new AuctionWriter.
func NewAuctionWriter(cfg WriterConfig, db *pgxpool.Pool, logger *slog.Logger) *AuctionWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuctionWriter{
		cfg:    cfg,
		db:     db,
		logger: logger,
		batch:  make([]auctionRow, 0, cfg.BatchSize),
	}
}

// Start begins the periodic flush loop.
func (w *AuctionWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("auction writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer.
func (w *AuctionWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping auction writer")

	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	// Final flush runs on the shutdown context: the run context is
	// typically already cancelled by the time Stop is called.
	w.flush(ctx)

	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("auction writer stopped")
	case <-ctx.Done():
		w.logger.Warn("auction writer stop timed out")
	}

	return nil
}

// Stats returns current metrics.
func (w *AuctionWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// HandleSnapshot transforms a snapshot into rows and batches them.
func (w *AuctionWriter) HandleSnapshot(snapshot model.AuctionSnapshot) error {
	rows := w.transform(snapshot)

	w.batchMu.Lock()
	w.batch = append(w.batch, rows...)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush(w.ctx)
	}
	return nil
}

// flushLoop periodically flushes the batch.
func (w *AuctionWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush(w.ctx)
		}
	}
}

// transform converts a snapshot to auction rows.
func (w *AuctionWriter) transform(snapshot model.AuctionSnapshot) []auctionRow {
	rows := make([]auctionRow, 0, len(snapshot.Listings))
	for _, listing := range snapshot.Listings {
		rows = append(rows, auctionRow{
			SnapshotID:   snapshot.SnapshotID,
			GroupSlug:    snapshot.GroupSlug,
			LastModified: snapshot.LastModified,
			ReceivedAt:   snapshot.ReceivedAt,
			ItemID:       listing.Item,
			Buyout:       listing.Buyout,
			Quantity:     listing.Quantity,
		})
	}
	return rows
}

// flush writes the current batch to the database.
func (w *AuctionWriter) flush(ctx context.Context) {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := w.batch
	w.batch = make([]auctionRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	if err := w.batchInsert(ctx, batch); err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch))
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed auctions",
		"count", len(batch),
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch. Identical listings within
// one snapshot are legitimate (same item, same price, separate sellers),
// so there is no conflict clause.
func (w *AuctionWriter) batchInsert(ctx context.Context, rows []auctionRow) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO auctions (snapshot_id, group_slug, last_modified, received_at, item_id, buyout, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.SnapshotID, r.GroupSlug, r.LastModified, r.ReceivedAt, r.ItemID, r.Buyout, r.Quantity)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}
