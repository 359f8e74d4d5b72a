package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/chadastore/storefront/internal/cart"
	"github.com/chadastore/storefront/internal/product"
)

// ReconciledLine is a cart line joined against the live catalog: the
// quantity the shopper can actually buy and the price they will pay.
type ReconciledLine struct {
	Product            product.Product
	SelectedImageIndex int
	RequestedQuantity  int
	Quantity           int // min(requested, variant stock ceiling)
	UnitPrice          decimal.Decimal
	LineTotal          decimal.Decimal
	PricePinned        bool // true when the price came from the add-time snapshot
}

type Reconciliation struct {
	Lines []ReconciledLine
	Total decimal.Decimal
}

// Reconcile joins stored cart lines against freshly fetched products.
//
// Lines whose product is missing or inactive drop out of the purchasable
// view; the stored cart is left alone, the shopper decides what to do with
// it. The unit price is the pinned snapshot when the line carries one, the
// product's base price otherwise — live prices never override a snapshot.
func Reconcile(lines []cart.Line, products map[int]product.Product) Reconciliation {
	rec := Reconciliation{Lines: make([]ReconciledLine, 0, len(lines)), Total: decimal.Zero}

	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok || !p.Active {
			continue
		}

		index := 0
		if l.SelectedImageIndex != nil {
			index = *l.SelectedImageIndex
		}

		ceiling := product.ParseVariants(p.ImageDetails).StockCeiling(index)
		quantity := l.Quantity
		if quantity > ceiling {
			quantity = ceiling
		}

		unit := decimal.NewFromFloat(p.Price)
		pinned := false
		if l.Price != nil {
			unit = decimal.NewFromFloat(*l.Price)
			pinned = true
		}

		lineTotal := unit.Mul(decimal.NewFromInt(int64(quantity)))
		rec.Lines = append(rec.Lines, ReconciledLine{
			Product:            p,
			SelectedImageIndex: index,
			RequestedQuantity:  l.Quantity,
			Quantity:           quantity,
			UnitPrice:          unit,
			LineTotal:          lineTotal,
			PricePinned:        pinned,
		})
		rec.Total = rec.Total.Add(lineTotal)
	}

	return rec
}

// Purchasable reports whether anything in the reconciliation can actually
// be ordered.
func (r Reconciliation) Purchasable() bool {
	for _, l := range r.Lines {
		if l.Quantity > 0 {
			return true
		}
	}
	return false
}
