package cart

// Line is one cart entry. Identity is the (ProductID, SelectedImageIndex)
// pair: the same product can sit in the cart twice under different image
// variants. Price is the unit price pinned at the moment of adding; nil
// means "use the product's live base price" at reconciliation time.
type Line struct {
	ProductID          int      `json:"productId"`
	Quantity           int      `json:"quantity"`
	SelectedImageIndex *int     `json:"selectedImageIndex,omitempty"`
	Price              *float64 `json:"price,omitempty"`
}

// sameVariant reports whether the line is exactly the (product, variant)
// pair. Two nil indexes are the same variant.
func (l Line) sameVariant(productID int, index *int) bool {
	if l.ProductID != productID {
		return false
	}
	if l.SelectedImageIndex == nil || index == nil {
		return l.SelectedImageIndex == nil && index == nil
	}
	return *l.SelectedImageIndex == *index
}

// matchesProduct reports whether the line belongs to the product at all,
// regardless of variant.
func (l Line) matchesProduct(productID int) bool {
	return l.ProductID == productID
}
