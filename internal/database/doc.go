// Package database provides connection pool management for PostgreSQL.
//
// The gatherer keeps a single pool holding auction snapshots; realm and
// group metadata lives in memory (realm registry) and is cheap to
// re-derive from the API on startup.
package database
