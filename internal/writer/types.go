package writer

import (
	"time"

	"github.com/google/uuid"
)

// WriterConfig contains configuration for batch writers.
type WriterConfig struct {
	// BatchSize is the number of rows to accumulate before flushing.
	BatchSize int

	// FlushInterval is the maximum time between flushes.
	FlushInterval time.Duration
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize:     1000,
		FlushInterval: 1 * time.Second,
	}
}

// auctionRow represents a row to be inserted into the auctions table.
type auctionRow struct {
	SnapshotID   uuid.UUID
	GroupSlug    string
	LastModified int64 // Seconds since epoch, from upstream
	ReceivedAt   int64 // Microseconds
	ItemID       int64
	Buyout       int64 // Copper; 0 = no buyout
	Quantity     int64
}

// WriterMetrics tracks writer activity.
type WriterMetrics struct {
	Inserts int64
	Flushes int64
	Errors  int64
}
