// Package realms implements the Realm Registry.
//
// The registry:
//   - Fetches the realm list from the API on startup (blocking)
//   - Clusters realms into connected-realm groups, one auction house each
//   - Re-syncs on an interval; realm connections change rarely but do
//     change on realm merges
//   - Serves groups to the auction poller from memory
package realms
