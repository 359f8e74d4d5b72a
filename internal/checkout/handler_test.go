package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chadastore/storefront/internal/cart"
	"github.com/chadastore/storefront/internal/product"
	"github.com/chadastore/storefront/internal/session"
	"github.com/chadastore/storefront/internal/upstream"
)

type stubCatalog struct {
	products []product.Product
}

func (s stubCatalog) List(context.Context) ([]product.Product, error)       { return s.products, nil }
func (s stubCatalog) Promotions(context.Context) ([]product.Product, error) { return nil, nil }
func (s stubCatalog) GetByID(context.Context, int) (product.Product, error) {
	return product.Product{}, product.ErrNotFound
}

type fixture struct {
	app   *fiber.App
	store *cart.Store
}

func newFixture(t *testing.T, orders http.HandlerFunc, products ...product.Product) fixture {
	t.Helper()
	srv := httptest.NewServer(orders)
	t.Cleanup(srv.Close)

	store := cart.NewStore(cart.NewInMemoryRepository())
	svc := product.NewService(stubCatalog{products: products}, srv.URL)
	sub := NewSubmitter(upstream.New(srv.URL, time.Second), store, 3*time.Second)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-Session-ID"); v != "" {
			claims := jwt.MapClaims{"session_id": v}
			c.Locals(session.ContextKey, &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	NewHandler(store, svc, sub, srv.URL).RegisterProtectedRoutes(app)
	return fixture{app: app, store: store}
}

func postCheckout(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "s1")
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

const validForm = `{"customerName":"Nadia","customerEmail":"nadia@example.com","customerPhone":"0500000000","customerAddress":"12 Rose St"}`

func TestCheckoutRequiresSession(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	res, err := f.app.Test(httptest.NewRequest("POST", "/api/checkout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestCheckoutValidatesForm(t *testing.T) {
	upstreamHit := false
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) { upstreamHit = true })

	res := postCheckout(t, f.app, `{"customerName":"Nadia"}`)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Contains(t, payload.Errors, "customerEmail")
	assert.Contains(t, payload.Errors, "customerPhone")
	assert.Contains(t, payload.Errors, "customerAddress")
	assert.False(t, upstreamHit)
}

func TestCheckoutSubmitsOrderAndClearsCart(t *testing.T) {
	var gotKey string
	var gotBody orderRequest
	orders := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		gotKey = r.Header.Get("Idempotency-Key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":42}`)
	}
	f := newFixture(t, orders, product.Product{
		ID: 1, Name: "Oud Royale", Price: 150, Stock: 10, Active: true,
		ImageDetails: `[{"url":"a.jpg","price":100,"quantity":1}]`,
	})
	_, err := f.store.Add("s1", 1, 5, intp(0), floatp(100))
	require.NoError(t, err)

	res := postCheckout(t, f.app, validForm)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var payload struct {
		OrderID       int     `json:"orderId"`
		RedirectAfter float64 `json:"redirectAfter"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, 42, payload.OrderID)
	assert.Equal(t, 3.0, payload.RedirectAfter)

	assert.NotEmpty(t, gotKey)
	require.Len(t, gotBody.Items, 1)
	// quantity capped by the variant ceiling, price from the pinned snapshot
	assert.Equal(t, 1, gotBody.Items[0].Quantity)
	assert.Equal(t, 100.0, gotBody.Items[0].Price)
	assert.Equal(t, "Nadia", gotBody.CustomerName)

	assert.Empty(t, f.store.Load("s1"))
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	orders := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"out of stock"}`)
	}
	f := newFixture(t, orders, product.Product{ID: 1, Price: 50, Stock: 5, Active: true})
	_, err := f.store.Add("s1", 1, 2, nil, nil)
	require.NoError(t, err)

	res := postCheckout(t, f.app, validForm)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), "out of stock")
	assert.Len(t, f.store.Load("s1"), 1)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {},
		product.Product{ID: 1, Price: 50, Stock: 5, Active: true})

	res := postCheckout(t, f.app, validForm)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), "Cart is empty")
}

func TestCheckoutSummaryReportsCappedLines(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {}, product.Product{
		ID: 1, Name: "Oud Royale", Price: 150, Stock: 10, Active: true,
		ImageDetails: `[{"url":"a.jpg","price":100,"quantity":1}]`,
	})
	_, err := f.store.Add("s1", 1, 5, intp(0), floatp(100))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/checkout/summary", nil)
	req.Header.Set("X-Session-ID", "s1")
	res, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var view summaryView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, 5, view.Items[0].RequestedQuantity)
	assert.Equal(t, 100.0, view.Items[0].UnitPrice)
	assert.Equal(t, 100.0, view.Total)
}
