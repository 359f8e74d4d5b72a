package product

import (
	"encoding/json"

	"github.com/chadastore/storefront/internal/upstream"
)

// OpenStockCeiling is the effectively-unconstrained ceiling used when a
// variant's stock cannot be resolved. Deliberately open rather than zero so
// a missing record never blocks a purchase on its own.
const OpenStockCeiling = 999

// VariantsState distinguishes "the product has no variant data" from "the
// variant field exists but is corrupt". Display code treats both as absent;
// callers that care (logging, admin tooling) can tell them apart.
type VariantsState int

const (
	VariantsAbsent VariantsState = iota
	VariantsPresent
	VariantsMalformed
)

type Variants struct {
	State   VariantsState
	Details []ImageDetail
}

// ParseVariants decodes the imageDetails field of a product.
func ParseVariants(raw string) Variants {
	if raw == "" {
		return Variants{State: VariantsAbsent}
	}
	var details []ImageDetail
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return Variants{State: VariantsMalformed}
	}
	if len(details) == 0 {
		return Variants{State: VariantsAbsent}
	}
	return Variants{State: VariantsPresent, Details: details}
}

// At returns the variant at index, when one is resolvable.
func (v Variants) At(index int) (ImageDetail, bool) {
	if v.State != VariantsPresent || index < 0 || index >= len(v.Details) {
		return ImageDetail{}, false
	}
	return v.Details[index], true
}

// StockCeiling resolves the purchasable ceiling for the variant at index.
// Absent or malformed data degrades to OpenStockCeiling.
func (v Variants) StockCeiling(index int) int {
	d, ok := v.At(index)
	if !ok || d.Quantity == nil {
		return OpenStockCeiling
	}
	return *d.Quantity
}

// PriceAt returns the variant-specific price at index, when one exists.
func (v Variants) PriceAt(index int) *float64 {
	d, ok := v.At(index)
	if !ok {
		return nil
	}
	return d.Price
}

// legacyImageURLs decodes the legacy imageUrls field; any parse trouble
// reads as "no legacy images".
func legacyImageURLs(raw string) []string {
	if raw == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil
	}
	return urls
}

// Image resolves the display image for a product at the given variant
// index, walking the imageDetails -> imageUrls -> imageUrl fallback chain.
func Image(p Product, base string, index int) string {
	if v := ParseVariants(p.ImageDetails); v.State == VariantsPresent {
		if d, ok := v.At(index); ok && d.URL != "" {
			return upstream.ResolveImageURL(base, d.URL)
		}
		if d := v.Details[0]; d.URL != "" {
			return upstream.ResolveImageURL(base, d.URL)
		}
	}
	if urls := legacyImageURLs(p.ImageURLs); len(urls) > 0 {
		if index >= 0 && index < len(urls) {
			return upstream.ResolveImageURL(base, urls[index])
		}
		return upstream.ResolveImageURL(base, urls[0])
	}
	if p.ImageURL != "" {
		return upstream.ResolveImageURL(base, p.ImageURL)
	}
	return upstream.PlaceholderImage
}

// Images resolves every known image of a product for the detail gallery.
func Images(p Product, base string) []string {
	if v := ParseVariants(p.ImageDetails); v.State == VariantsPresent {
		out := make([]string, 0, len(v.Details))
		for _, d := range v.Details {
			out = append(out, upstream.ResolveImageURL(base, d.URL))
		}
		return out
	}
	if urls := legacyImageURLs(p.ImageURLs); len(urls) > 0 {
		out := make([]string, 0, len(urls))
		for _, u := range urls {
			out = append(out, upstream.ResolveImageURL(base, u))
		}
		return out
	}
	if p.ImageURL != "" {
		return []string{upstream.ResolveImageURL(base, p.ImageURL)}
	}
	return []string{upstream.PlaceholderImage}
}
