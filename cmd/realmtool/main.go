// Command realmtool is a small operator CLI for poking the Battle.net
// API: list realms, print connected-realm clusters, look up an item, or
// fetch one auction snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tmorgan/bloodmoney/internal/api"
	"github.com/tmorgan/bloodmoney/internal/ratelimit"
)

func main() {
	baseURL := flag.String("base-url", "https://us.api.battle.net/wow", "API base URL")
	apiKey := flag.String("api-key", "", "Battle.net API key (or set BNET_API_KEY in config)")
	locale := flag.String("locale", "en_US", "locale")
	showRealms := flag.Bool("realms", false, "list realms")
	showClusters := flag.Bool("clusters", false, "print connected-realm clusters")
	itemID := flag.Int64("item", 0, "look up an item by id")
	auctionSlug := flag.String("auctions", "", "fetch one auction snapshot for a realm slug")
	cutoff := flag.Int64("cutoff", 0, "skip the auction snapshot unless it is newer than this timestamp")
	flag.Parse()

	client := api.NewClient(
		*baseURL,
		*apiKey,
		api.WithLocale(*locale),
		api.WithTimeout(30*time.Second),
		api.WithLimiter(ratelimit.New(100, time.Second)),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if *showRealms || *showClusters {
		realms, err := client.GetRealms(ctx)
		if err != nil {
			log.Fatalf("GetRealms failed: %v", err)
		}

		if *showRealms {
			fmt.Printf("=== %d realms ===\n", len(realms))
			for _, r := range realms {
				fmt.Printf("  %s (%s) connected to %v\n", r.Name, r.Slug, r.ConnectedRealms)
			}
		}

		if *showClusters {
			clusters := api.ClusterConnectedRealms(realms)
			fmt.Printf("=== %d connected-realm groups ===\n", len(clusters))
			for i, group := range clusters {
				fmt.Printf("  %d. %v\n", i+1, group)
			}
		}
	}

	if *itemID > 0 {
		item, err := client.GetItem(ctx, *itemID)
		if err != nil {
			log.Fatalf("GetItem failed: %v", err)
		}
		fmt.Printf("=== Item %d ===\nName: %s\nIcon: %s\n", item.ID, item.Name, item.Icon)
	}

	if *auctionSlug != "" {
		snapshot, err := client.GetAuctionListings(ctx, *auctionSlug, *cutoff)
		if err != nil {
			log.Fatalf("GetAuctionListings failed: %v", err)
		}
		if snapshot == nil {
			fmt.Printf("auctions for %s unchanged since %d\n", *auctionSlug, *cutoff)
			return
		}

		fmt.Printf("=== Auctions for %s (modified %d) ===\n", snapshot.RealmSlug, snapshot.LastModified)
		fmt.Printf("Listings: %d\n", len(snapshot.Listings))
		for i, l := range snapshot.Listings {
			if i >= 10 {
				fmt.Println("  ...")
				break
			}
			fmt.Printf("  item=%d buyout=%d quantity=%d\n", l.Item, l.Buyout, l.Quantity)
		}
	}
}
