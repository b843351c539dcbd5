package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// GetRealms fetches the full realm list.
func (c *Client) GetRealms(ctx context.Context) ([]RealmInfo, error) {
	var resp RealmStatusResponse
	if err := c.get(ctx, c.endpoint("/realm/status"), "realm status", &resp); err != nil {
		return nil, fmt.Errorf("get realms: %w", err)
	}

	return resp.Realms, nil
}

// ClusterConnectedRealms reduces a realm list to its distinct
// connected-realm groups. Members of a group report the same set of
// slugs but not necessarily in the same order, so groups are compared
// as sets: each candidate is canonicalized by sorting its slugs before
// deduplication. Every input realm's group appears in exactly one
// output group. Output groups are sorted by their first slug.
func ClusterConnectedRealms(realms []RealmInfo) [][]string {
	seen := make(map[string]struct{}, len(realms))
	groups := make([][]string, 0, len(realms))

	for _, r := range realms {
		if len(r.ConnectedRealms) == 0 {
			continue
		}

		group := append([]string(nil), r.ConnectedRealms...)
		sort.Strings(group)

		key := strings.Join(group, "\x00")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})

	return groups
}
