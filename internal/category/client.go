package category

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chadastore/storefront/internal/storage"
	"github.com/chadastore/storefront/internal/upstream"
)

const cacheKey = "categories"

type Client struct {
	api   *upstream.Client
	cache storage.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewClient(api *upstream.Client, cache storage.Cache, ttl time.Duration) *Client {
	return &Client{api: api, cache: cache, ttl: ttl}
}

// List returns the category collection, cached for the configured TTL with
// the same stale-on-error fallback the catalog uses.
func (c *Client) List(ctx context.Context) ([]Category, error) {
	var cached []Category
	if err := c.cache.Get(ctx, cacheKey, c.ttl, &cached); err == nil {
		return cached, nil
	}

	v, err, _ := c.group.Do(cacheKey, func() (any, error) {
		var categories []Category
		if err := c.api.GetJSON(ctx, "/categories", &categories); err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, cacheKey, categories); err != nil {
			log.Printf("warning: could not cache categories: %v", err)
		}
		return categories, nil
	})
	if err != nil {
		var stale []Category
		if serr := c.cache.GetStale(ctx, cacheKey, &stale); serr == nil {
			log.Printf("warning: categories fetch failed, serving stale cache: %v", err)
			return stale, nil
		}
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return v.([]Category), nil
}
