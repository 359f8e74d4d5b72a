package product

import (
	"context"
	"sort"
	"strings"
)

// Service shapes catalog data for the storefront: visibility, filtering,
// sorting and image resolution. Filtering is a linear scan over the fetched
// slice; the catalog is small and the upstream owns anything heavier.
type Service struct {
	catalog Catalog
	baseURL string
}

func NewService(catalog Catalog, baseURL string) *Service {
	return &Service{catalog: catalog, baseURL: baseURL}
}

type ListParams struct {
	CategoryID int
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string // "price-asc", "price-desc", "name"
}

// Item is a catalog row ready for display.
type Item struct {
	Product
	Image string `json:"image"`
}

// Detail is the product-page view: the gallery plus per-variant data.
type Detail struct {
	Product
	Image    string        `json:"image"`
	Images   []string      `json:"images"`
	Variants []VariantView `json:"variants,omitempty"`
}

// VariantView is an ImageDetail with its URL resolved for display.
type VariantView struct {
	URL         string   `json:"url"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Item, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, p := range products {
		if !p.Visible() {
			continue
		}
		if params.CategoryID > 0 && (p.Category == nil || p.Category.ID != params.CategoryID) {
			continue
		}
		if params.MinPrice != nil && p.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && p.Price > *params.MaxPrice {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		items = append(items, Item{Product: p, Image: Image(p, s.baseURL, 0)})
	}

	switch params.Sort {
	case "price-asc":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case "price-desc":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case "name":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}

	return items, nil
}

func (s *Service) Promotions(ctx context.Context) ([]Item, error) {
	products, err := s.catalog.Promotions(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(products))
	for _, p := range products {
		if !p.Visible() {
			continue
		}
		items = append(items, Item{Product: p, Image: Image(p, s.baseURL, 0)})
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int) (Detail, error) {
	p, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Product: p,
		Image:   Image(p, s.baseURL, 0),
		Images:  Images(p, s.baseURL),
	}
	if v := ParseVariants(p.ImageDetails); v.State == VariantsPresent {
		d.Variants = make([]VariantView, 0, len(v.Details))
		for i, det := range v.Details {
			d.Variants = append(d.Variants, VariantView{
				URL:         Image(p, s.baseURL, i),
				Price:       det.Price,
				Description: det.Description,
				Quantity:    det.Quantity,
			})
		}
	}
	return d, nil
}

// MapByID indexes the full catalog by product ID, inactive products
// included: cart reconciliation needs to see them to drop their lines from
// the purchasable view.
func (s *Service) MapByID(ctx context.Context) (map[int]Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[int]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m, nil
}
