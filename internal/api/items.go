package api

import (
	"context"
	"fmt"
	"strconv"
)

// GetItem fetches metadata for a single item. An unknown id surfaces as
// ErrNotFound rather than retrying.
func (c *Client) GetItem(ctx context.Context, id int64) (*ItemInfo, error) {
	var item ItemInfo
	task := fmt.Sprintf("item info %d", id)

	if err := c.get(ctx, c.endpoint("/item/"+strconv.FormatInt(id, 10)), task, &item); err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	return &item, nil
}
