// Package poller implements the Auction Poller.
//
// The Auction Poller:
//   - Polls each connected-realm group's auction house on an interval
//   - Issues bounded-concurrency requests gated by the shared rate limiter
//   - Carries a per-group lastModified cutoff so unchanged snapshots are
//     skipped after the cheap pointer fetch
//   - Hands fresh snapshots to a SnapshotHandler (normally the writer)
package poller
