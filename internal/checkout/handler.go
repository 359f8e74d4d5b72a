package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chadastore/storefront/internal/cart"
	"github.com/chadastore/storefront/internal/product"
	"github.com/chadastore/storefront/internal/session"
	"github.com/chadastore/storefront/internal/upstream"
)

type Handler struct {
	store     *cart.Store
	products  *product.Service
	submitter *Submitter
	baseURL   string
}

func NewHandler(store *cart.Store, products *product.Service, submitter *Submitter, baseURL string) *Handler {
	return &Handler{store: store, products: products, submitter: submitter, baseURL: baseURL}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/checkout/summary", h.summary)
	app.Post("/api/checkout", h.submit)
}

type lineView struct {
	ProductID          int     `json:"productId"`
	Name               string  `json:"name"`
	Image              string  `json:"image"`
	SelectedImageIndex int     `json:"selectedImageIndex"`
	Quantity           int     `json:"quantity"`
	RequestedQuantity  int     `json:"requestedQuantity"`
	UnitPrice          float64 `json:"unitPrice"`
	LineTotal          float64 `json:"lineTotal"`
}

type summaryView struct {
	Items []lineView `json:"items"`
	Total float64    `json:"total"`
}

func (h *Handler) reconciled(c *fiber.Ctx, sessionID string) (Reconciliation, error) {
	products, err := h.products.MapByID(c.Context())
	if err != nil {
		return Reconciliation{}, err
	}
	return Reconcile(h.store.Load(sessionID), products), nil
}

// summary is the cart page view: stored lines joined against the live
// catalog, with quantities capped and prices settled.
func (h *Handler) summary(c *fiber.Ctx) error {
	sessionID, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No session"})
	}

	rec, err := h.reconciled(c, sessionID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Could not load products"})
	}

	view := summaryView{Items: make([]lineView, 0, len(rec.Lines))}
	for _, l := range rec.Lines {
		view.Items = append(view.Items, lineView{
			ProductID:          l.Product.ID,
			Name:               l.Product.Name,
			Image:              product.Image(l.Product, h.baseURL, l.SelectedImageIndex),
			SelectedImageIndex: l.SelectedImageIndex,
			Quantity:           l.Quantity,
			RequestedQuantity:  l.RequestedQuantity,
			UnitPrice:          l.UnitPrice.InexactFloat64(),
			LineTotal:          l.LineTotal.InexactFloat64(),
		})
	}
	view.Total = rec.Total.InexactFloat64()
	return c.JSON(view)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	sessionID, err := session.FromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No session"})
	}

	var form CustomerForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if errs := validateForm(&form); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	rec, err := h.reconciled(c, sessionID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Could not load products"})
	}

	result, err := h.submitter.Submit(c.Context(), sessionID, form, rec)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cart is empty"})
		}
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < 500 {
			return c.Status(apiErr.Status).JSON(fiber.Map{"message": apiErr.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Could not create order, please try again"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"orderId":       result.OrderID,
		"redirectAfter": result.RedirectAfter.Seconds(),
	})
}
