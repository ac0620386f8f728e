package resolve

import (
	"fmt"

	"github.com/funfan0517/MediaPublishPlatform/internal/api"
	"github.com/funfan0517/MediaPublishPlatform/internal/cache"
	"github.com/funfan0517/MediaPublishPlatform/internal/exitcode"
)

// PlatformConfigKey returns the storage key for a platform's backend config.
func PlatformConfigKey(p Platform) string {
	return fmt.Sprintf("platform-config-%d", p.Type)
}

// FetchPlatformConfig fetches a platform's config from the API and stores it.
func FetchPlatformConfig(client *api.Client, store *cache.Store, p Platform) (*api.PlatformConfig, error) {
	cfg, err := client.PlatformConfig(p.Type)
	if err != nil {
		return nil, exitcode.General("fetching platform config", err)
	}
	if store != nil {
		_ = store.Set(PlatformConfigKey(p), cfg)
	}
	return cfg, nil
}

// PlatformConfig returns a platform's backend config, using the store with
// invalidate-on-miss semantics. A stored config for another platform type
// counts as a miss.
func PlatformConfig(client *api.Client, store *cache.Store, p Platform) (*api.PlatformConfig, error) {
	if store == nil {
		return FetchPlatformConfig(client, nil, p)
	}
	cfg, err := cache.GetOrRefresh(store, PlatformConfigKey(p),
		func() (*api.PlatformConfig, error) {
			cfg, err := client.PlatformConfig(p.Type)
			if err != nil {
				return nil, exitcode.General("fetching platform config", err)
			}
			return cfg, nil
		},
		func(cfg *api.PlatformConfig) (*api.PlatformConfig, bool) {
			return cfg, cfg != nil && cfg.Type == p.Type
		},
	)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, exitcode.NotFoundError(fmt.Sprintf("backend has no config for platform %s", p.Slug))
	}
	return cfg, nil
}
