package api

import (
	"time"

	"github.com/tmorgan/bloodmoney/internal/model"
)

// ToModel converts a wire realm to the domain type.
func (r RealmInfo) ToModel() model.Realm {
	return model.Realm{
		Name:            r.Name,
		Slug:            r.Slug,
		ConnectedRealms: append([]string(nil), r.ConnectedRealms...),
	}
}

// ToModel converts a wire item to the domain type.
func (i ItemInfo) ToModel() model.Item {
	return model.Item{
		ID:   i.ID,
		Name: i.Name,
		Icon: i.Icon,
	}
}

// ToModel converts a wire listing to the domain type.
func (a AuctionListing) ToModel() model.AuctionListing {
	return model.AuctionListing{
		Item:     a.Item,
		Buyout:   a.Buyout,
		Quantity: a.Quantity,
	}
}

// NowMicro returns the current time in microseconds since epoch.
func NowMicro() int64 {
	return time.Now().UnixMicro()
}
