// Package model defines shared data types used across the gatherer.
//
// Conventions:
//   - Prices: int64 copper (the smallest currency unit); 0 buyout means
//     the listing has no buyout
//   - Timestamps: int64 microseconds since Unix epoch, except upstream
//     lastModified values which stay in the seconds the API reports
//   - IDs: string slugs for realms, uuid.UUID for snapshots
package model
