package recommended

import (
	"context"

	"github.com/chadastore/storefront/internal/product"
)

// Service picks the "you may also like" strip for a product page: visible
// products from the same category, the product itself excluded.
type Service struct {
	products *product.Service
}

func NewService(products *product.Service) *Service {
	return &Service{products: products}
}

func (s *Service) Related(ctx context.Context, productID, limit int) ([]product.Item, error) {
	catalog, err := s.products.MapByID(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := catalog[productID]
	if !ok || p.Category == nil {
		return []product.Item{}, nil
	}

	items, err := s.products.List(ctx, product.ListParams{CategoryID: p.Category.ID})
	if err != nil {
		return nil, err
	}

	related := make([]product.Item, 0, limit)
	for _, item := range items {
		if item.ID == productID {
			continue
		}
		related = append(related, item)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}
