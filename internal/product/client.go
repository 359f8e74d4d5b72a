package product

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/chadastore/storefront/internal/storage"
	"github.com/chadastore/storefront/internal/upstream"
)

var ErrNotFound = errors.New("product not found")

const (
	cacheKeyProducts   = "products"
	cacheKeyPromotions = "promotions"
)

// Catalog is what the rest of the storefront programs against; Client is
// the live implementation over the commerce API.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	Promotions(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
}

type Client struct {
	api      *upstream.Client
	cache    storage.Cache
	listTTL  time.Duration
	promoTTL time.Duration
	group    singleflight.Group
}

func NewClient(api *upstream.Client, cache storage.Cache, listTTL, promoTTL time.Duration) *Client {
	return &Client{api: api, cache: cache, listTTL: listTTL, promoTTL: promoTTL}
}

// List returns the full catalog, served from cache while fresh. Concurrent
// misses collapse into one upstream fetch; a failed fetch falls back to the
// last cached snapshot when one exists.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	return c.cachedList(ctx, cacheKeyProducts, "/products", c.listTTL)
}

// Promotions returns the products currently eligible for discount display.
func (c *Client) Promotions(ctx context.Context) ([]Product, error) {
	return c.cachedList(ctx, cacheKeyPromotions, "/products/promotions", c.promoTTL)
}

func (c *Client) cachedList(ctx context.Context, key, path string, ttl time.Duration) ([]Product, error) {
	var cached []Product
	if err := c.cache.Get(ctx, key, ttl, &cached); err == nil {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		var products []Product
		if err := c.api.GetJSON(ctx, path, &products); err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, products); err != nil {
			log.Printf("warning: could not cache %s: %v", key, err)
		}
		return products, nil
	})
	if err != nil {
		// stale beats empty
		var stale []Product
		if serr := c.cache.GetStale(ctx, key, &stale); serr == nil {
			log.Printf("warning: %s fetch failed, serving stale cache: %v", key, err)
			return stale, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	return v.([]Product), nil
}

// GetByID fetches a single product. A 404 from the API maps to ErrNotFound;
// any other failure tries the cached catalog before giving up.
func (c *Client) GetByID(ctx context.Context, id int) (Product, error) {
	var p Product
	err := c.api.GetJSON(ctx, fmt.Sprintf("/products/%d", id), &p)
	if err == nil {
		return p, nil
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 404 {
		return Product{}, ErrNotFound
	}

	var stale []Product
	if serr := c.cache.GetStale(ctx, cacheKeyProducts, &stale); serr == nil {
		for _, sp := range stale {
			if sp.ID == id {
				log.Printf("warning: product %d fetch failed, serving stale cache: %v", id, err)
				return sp, nil
			}
		}
	}
	return Product{}, fmt.Errorf("fetch product %d: %w", id, err)
}
