package realms

import (
	"context"
	"fmt"
	"time"

	"github.com/tmorgan/bloodmoney/internal/api"
	"github.com/tmorgan/bloodmoney/internal/model"
)

// sync fetches the realm list, clusters it, and swaps the registry state.
func (r *Registry) sync(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.SyncTimeout)
	defer cancel()

	infos, err := r.rest.GetRealms(ctx)
	if err != nil {
		return fmt.Errorf("sync realms: %w", err)
	}

	realms := make([]model.Realm, 0, len(infos))
	for _, info := range infos {
		realms = append(realms, info.ToModel())
	}

	clusters := api.ClusterConnectedRealms(infos)
	groups := make([]model.ConnectedRealmGroup, 0, len(clusters))
	for _, slugs := range clusters {
		groups = append(groups, model.ConnectedRealmGroup{Slugs: slugs})
	}

	r.mu.Lock()
	prevGroups := len(r.groups)
	r.realms = realms
	r.groups = groups
	r.lastSyncAt = time.Now()
	r.mu.Unlock()

	if prevGroups != 0 && prevGroups != len(groups) {
		r.logger.Warn("connected realm groups changed",
			"before", prevGroups,
			"after", len(groups),
		)
	}

	r.logger.Info("realm sync complete",
		"realms", len(realms),
		"groups", len(groups),
		"duration", time.Since(start),
	)

	return nil
}
