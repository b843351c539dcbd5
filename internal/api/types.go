package api

// RealmStatusResponse from GET /realm/status.
type RealmStatusResponse struct {
	Realms []RealmInfo `json:"realms"`
}

// RealmInfo is one realm as reported by the realm status endpoint.
// ConnectedRealms names every realm sharing this realm's auction house,
// including the realm itself. All members of a connected group report
// the same set of slugs, but the ordering is not guaranteed to match
// across members.
type RealmInfo struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	ConnectedRealms []string `json:"connected_realms"`
}

// ItemInfo from GET /item/{id}.
type ItemInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AuctionDataResponse from GET /auction/data/{realmSlug}.
type AuctionDataResponse struct {
	Files []AuctionDataPointer `json:"files"`
}

// AuctionDataPointer points at a bulk listings payload. LastModified is
// seconds since epoch and advances monotonically per connected-realm
// group.
type AuctionDataPointer struct {
	URL          string `json:"url"`
	LastModified int64  `json:"lastModified"`
}

// AuctionListingsResponse is the bulk payload behind an
// AuctionDataPointer. Realms here is loosely typed per-realm metadata,
// not the RealmInfo shape.
type AuctionListingsResponse struct {
	Realms   []map[string]string `json:"realms"`
	Auctions []AuctionListing    `json:"auctions"`
}

// AuctionListing is one auction house listing. Buyout is in copper, 0
// meaning the listing has no buyout.
type AuctionListing struct {
	Item     int64 `json:"item"`
	Buyout   int64 `json:"buyout"`
	Quantity int64 `json:"quantity"`
}
