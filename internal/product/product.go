package product

// Product mirrors the record shape served by the commerce API. imageUrls and
// imageDetails arrive JSON-encoded inside the JSON document (legacy and
// current format respectively); both are parsed lazily, see variants.go.
type Product struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	Price              float64      `json:"price"`
	OriginalPrice      *float64     `json:"originalPrice,omitempty"`
	DiscountPercentage *float64     `json:"discountPercentage,omitempty"`
	PromotionStartDate *string      `json:"promotionStartDate,omitempty"`
	PromotionEndDate   *string      `json:"promotionEndDate,omitempty"`
	Stock              int          `json:"stock"`
	Category           *CategoryRef `json:"category,omitempty"`
	ImageURLs          string       `json:"imageUrls,omitempty"`
	ImageDetails       string       `json:"imageDetails,omitempty"`
	ImageURL           string       `json:"imageUrl,omitempty"`
	Fragrance          string       `json:"fragrance,omitempty"`
	Volume             *int         `json:"volume,omitempty"`
	Active             bool         `json:"active"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ImageDetail is one per-image variant: its own optional price and its own
// stock ceiling.
type ImageDetail struct {
	URL         string   `json:"url"`
	Price       *float64 `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
}

// Visible reports whether a product belongs on the storefront at all.
func (p Product) Visible() bool {
	return p.Active && p.Stock > 0
}
