package model

import "github.com/google/uuid"

// Realm is a game server instance.
type Realm struct {
	Name            string   // Display name
	Slug            string   // Primary key, stable identifier used in URLs
	ConnectedRealms []string // Slugs sharing this realm's auction house, self included
}

// Item is an immutable snapshot of one item's metadata.
type Item struct {
	ID   int64  // Numeric key
	Name string // Display name
	Icon string // Asset identifier
}

// AuctionListing is one listing on an auction house.
type AuctionListing struct {
	Item     int64 // Item id
	Buyout   int64 // Copper; 0 = no buyout
	Quantity int64 // Stack size, positive
}

// ConnectedRealmGroup is a deduplicated set of realm slugs sharing one
// auction house. Connected realms form a single economic unit, so
// auction data is fetched once per group. Slugs are canonically sorted.
type ConnectedRealmGroup struct {
	Slugs []string
}

// Leader returns the slug used to address the group's auction house.
func (g ConnectedRealmGroup) Leader() string {
	if len(g.Slugs) == 0 {
		return ""
	}
	return g.Slugs[0]
}

// AuctionSnapshot is one poll of a group's auction house.
type AuctionSnapshot struct {
	SnapshotID   uuid.UUID        // Assigned per fetch
	GroupSlug    string           // Leader slug of the connected-realm group
	LastModified int64            // Seconds since epoch, as reported upstream
	ReceivedAt   int64            // µs since epoch
	Listings     []AuctionListing
}
