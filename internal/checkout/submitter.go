package checkout

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/chadastore/storefront/internal/cart"
	"github.com/chadastore/storefront/internal/upstream"
)

// Submitter turns a reconciled cart into an order on the commerce API.
type Submitter struct {
	api           *upstream.Client
	store         *cart.Store
	redirectDelay time.Duration
}

func NewSubmitter(api *upstream.Client, store *cart.Store, redirectDelay time.Duration) *Submitter {
	return &Submitter{api: api, store: store, redirectDelay: redirectDelay}
}

type Result struct {
	OrderID       int
	RedirectAfter time.Duration
}

// Submit posts the order and, only on success, clears the session's cart.
// A failed submission leaves the cart exactly as it was so the shopper can
// retry. Every attempt carries a fresh Idempotency-Key so a retried network
// timeout cannot create a duplicate order upstream.
func (s *Submitter) Submit(ctx context.Context, sessionID string, form CustomerForm, rec Reconciliation) (Result, error) {
	items := make([]orderItem, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		if l.Quantity == 0 {
			continue
		}
		item := orderItem{Quantity: l.Quantity, Price: l.UnitPrice.InexactFloat64()}
		item.Product.ID = l.Product.ID
		items = append(items, item)
	}
	if len(items) == 0 {
		return Result{}, ErrEmptyCart
	}

	req := orderRequest{
		CustomerName:     form.CustomerName,
		CustomerEmail:    form.CustomerEmail,
		CustomerPhone:    form.CustomerPhone,
		CustomerAddress:  form.CustomerAddress,
		CustomerLocation: form.CustomerLocation,
		Items:            items,
	}

	var order createdOrder
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	if err := s.api.PostJSON(ctx, "/orders", req, &order, headers); err != nil {
		return Result{}, err
	}

	if err := s.store.Clear(sessionID); err != nil {
		log.Printf("warning: order %d created but cart for session %s not cleared: %v", order.ID, sessionID, err)
	}
	return Result{OrderID: order.ID, RedirectAfter: s.redirectDelay}, nil
}
