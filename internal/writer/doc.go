// Package writer implements the batch auction writer.
//
// The writer accumulates listing rows from fresh snapshots and flushes
// them to the auctions table when the batch fills or the flush interval
// elapses. Writes are append-only: every snapshot insert is a new set of
// rows keyed by snapshot id, never an update.
package writer
