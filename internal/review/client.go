package review

import (
	"context"
	"fmt"

	"github.com/chadastore/storefront/internal/upstream"
)

// Reviews is what the handler programs against; Client talks to the live
// API. Reviews are never cached, a fresh opinion beats a fast one.
type Reviews interface {
	ByProduct(ctx context.Context, productID int) ([]Review, error)
	Stats(ctx context.Context, productID int) (Stats, error)
	Create(ctx context.Context, r NewReview) (Review, error)
}

type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ByProduct(ctx context.Context, productID int) ([]Review, error) {
	var reviews []Review
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/reviews/product/%d", productID), &reviews); err != nil {
		return nil, fmt.Errorf("fetch reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}

func (c *Client) Stats(ctx context.Context, productID int) (Stats, error) {
	var stats Stats
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/reviews/product/%d/stats", productID), &stats); err != nil {
		return Stats{}, fmt.Errorf("fetch review stats for product %d: %w", productID, err)
	}
	return stats, nil
}

func (c *Client) Create(ctx context.Context, r NewReview) (Review, error) {
	var created Review
	if err := c.api.PostJSON(ctx, "/reviews", r, &created, nil); err != nil {
		return Review{}, err
	}
	return created, nil
}
