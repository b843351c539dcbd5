package api

import (
	"context"
	"fmt"
)

// AuctionSnapshot is one realm group's auction house at a point in time.
type AuctionSnapshot struct {
	RealmSlug    string
	LastModified int64
	Listings     []AuctionListing
}

// UpdatedSince reports whether a payload modified at lastModified is
// newer than cutoff. The boundary counts as stale: lastModified == cutoff
// means nothing changed since the caller last looked.
func UpdatedSince(lastModified, cutoff int64) bool {
	return lastModified > cutoff
}

// GetAuctionListings downloads the auction listings for realmSlug, or
// nil if they have not changed since cutoff. The status endpoint is a
// cheap pointer fetch (bulk URL plus lastModified); the much larger
// listings payload is only downloaded when lastModified has advanced
// past cutoff.
func (c *Client) GetAuctionListings(ctx context.Context, realmSlug string, cutoff int64) (*AuctionSnapshot, error) {
	var status AuctionDataResponse
	task := "auction data for " + realmSlug

	if err := c.get(ctx, c.endpoint("/auction/data/"+realmSlug), task, &status); err != nil {
		return nil, fmt.Errorf("get auction data %s: %w", realmSlug, err)
	}

	if len(status.Files) == 0 {
		return nil, fmt.Errorf("get auction data %s: empty files list", realmSlug)
	}

	// The files list officially holds exactly one pointer; take the last.
	pointer := status.Files[len(status.Files)-1]
	if !UpdatedSince(pointer.LastModified, cutoff) {
		return nil, nil
	}

	var listings AuctionListingsResponse
	task = "auction listings for " + realmSlug

	if err := c.doWithRetry(ctx, pointer.URL, task, ownerRepair, &listings); err != nil {
		return nil, fmt.Errorf("get auction listings %s: %w", realmSlug, err)
	}

	return &AuctionSnapshot{
		RealmSlug:    realmSlug,
		LastModified: pointer.LastModified,
		Listings:     listings.Auctions,
	}, nil
}
