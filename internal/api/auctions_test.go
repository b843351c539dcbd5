package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestUpdatedSince(t *testing.T) {
	tests := []struct {
		lastModified int64
		cutoff       int64
		want         bool
	}{
		{150, 100, true},
		{100, 100, false}, // boundary: equal means unchanged
		{99, 100, false},
		{0, 0, false},
		{1, 0, true},
		{-5, -10, true},
	}

	for _, tt := range tests {
		if got := UpdatedSince(tt.lastModified, tt.cutoff); got != tt.want {
			t.Errorf("UpdatedSince(%d, %d) = %v, want %v", tt.lastModified, tt.cutoff, got, tt.want)
		}
	}
}

// auctionTestServer serves the status endpoint and the bulk listings
// payload it points to, counting hits on each.
func auctionTestServer(t *testing.T, lastModified int64, listingsBody string) (*httptest.Server, *atomic.Int32, *atomic.Int32) {
	t.Helper()

	var statusCalls, listingsCalls atomic.Int32

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/auction/data/medivh", func(w http.ResponseWriter, r *http.Request) {
		statusCalls.Add(1)
		fmt.Fprintf(w, `{"files":[{"url":"%s/auction-dump.json","lastModified":%d}]}`, server.URL, lastModified)
	})
	mux.HandleFunc("/auction-dump.json", func(w http.ResponseWriter, r *http.Request) {
		listingsCalls.Add(1)
		w.Write([]byte(listingsBody))
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &statusCalls, &listingsCalls
}

func TestGetAuctionListings_Unchanged(t *testing.T) {
	server, statusCalls, listingsCalls := auctionTestServer(t, 100, `{"realms":[],"auctions":[]}`)

	c := NewClient(server.URL, "")

	snapshot, err := c.GetAuctionListings(context.Background(), "medivh", 100)
	if err != nil {
		t.Fatalf("GetAuctionListings failed: %v", err)
	}
	if snapshot != nil {
		t.Fatalf("snapshot = %+v, want nil for unchanged data", snapshot)
	}
	if statusCalls.Load() != 1 {
		t.Errorf("status calls = %d, want 1", statusCalls.Load())
	}
	if listingsCalls.Load() != 0 {
		t.Errorf("listings calls = %d, want 0 (bulk payload must be skipped)", listingsCalls.Load())
	}
}

func TestGetAuctionListings_Fresh(t *testing.T) {
	body := `{
		"realms":[{"name":"Medivh","slug":"medivh"}],
		"auctions":[{"item":1,"buyout":500,"quantity":10,"owner":"SomeSeller"}]
	}`
	server, statusCalls, listingsCalls := auctionTestServer(t, 150, body)

	c := NewClient(server.URL, "")

	snapshot, err := c.GetAuctionListings(context.Background(), "medivh", 100)
	if err != nil {
		t.Fatalf("GetAuctionListings failed: %v", err)
	}
	if snapshot == nil {
		t.Fatal("snapshot = nil, want data")
	}
	if snapshot.LastModified != 150 {
		t.Errorf("LastModified = %d, want 150", snapshot.LastModified)
	}
	if snapshot.RealmSlug != "medivh" {
		t.Errorf("RealmSlug = %q, want %q", snapshot.RealmSlug, "medivh")
	}
	if len(snapshot.Listings) != 1 {
		t.Fatalf("len(Listings) = %d, want 1", len(snapshot.Listings))
	}

	l := snapshot.Listings[0]
	if l.Item != 1 || l.Buyout != 500 || l.Quantity != 10 {
		t.Errorf("Listings[0] = %+v, want {1 500 10}", l)
	}

	if statusCalls.Load() != 1 {
		t.Errorf("status calls = %d, want 1", statusCalls.Load())
	}
	if listingsCalls.Load() != 1 {
		t.Errorf("listings calls = %d, want 1", listingsCalls.Load())
	}
}

func TestGetAuctionListings_RepairsOwnerField(t *testing.T) {
	// The owner value here is structurally valid JSON but stands in for
	// the garbage text Blizzard emits; the repair must blank it before
	// the decode, leaving everything else intact.
	body := `{"realms":[],"auctions":[{"item":7,"buyout":0,"quantity":1,"owner":"###bad###"}]}`
	server, _, _ := auctionTestServer(t, 200, body)

	c := NewClient(server.URL, "")

	snapshot, err := c.GetAuctionListings(context.Background(), "medivh", 0)
	if err != nil {
		t.Fatalf("GetAuctionListings failed: %v", err)
	}
	if len(snapshot.Listings) != 1 {
		t.Fatalf("len(Listings) = %d, want 1", len(snapshot.Listings))
	}
	if snapshot.Listings[0].Buyout != 0 {
		t.Errorf("Buyout = %d, want 0 (no buyout)", snapshot.Listings[0].Buyout)
	}
}

func TestGetAuctionListings_EmptyFilesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"files":[]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")

	_, err := c.GetAuctionListings(context.Background(), "medivh", 0)
	if err == nil {
		t.Fatal("expected error for empty files list")
	}
}
