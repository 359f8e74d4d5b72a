package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"name":"Oud Royale"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	var out []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), "/products", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Oud Royale" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestPostJSONServerMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"out of stock"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	err := c.PostJSON(context.Background(), "/orders", map[string]int{}, nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "out of stock" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestPostJSONSendsHeaders(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	var out struct {
		ID int `json:"id"`
	}
	err := c.PostJSON(context.Background(), "/orders", map[string]int{}, &out, map[string]string{"Idempotency-Key": "abc-123"})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if gotKey != "abc-123" {
		t.Fatalf("idempotency header not forwarded, got %q", gotKey)
	}
	if out.ID != 42 {
		t.Fatalf("expected order id 42, got %d", out.ID)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	for i := 0; i < 5; i++ {
		_ = c.GetJSON(context.Background(), "/products", nil)
	}

	err := c.GetJSON(context.Background(), "/products", nil)
	if err == nil {
		t.Fatal("expected an error once the breaker is open")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("expected a breaker error, got an API answer: %v", err)
	}
}

func TestNon2xxWithoutBodyGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.GetJSON(context.Background(), "/product/99", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("expected empty server message, got %q", apiErr.Message)
	}
	if apiErr.Error() == "" {
		t.Fatal("Error() should fall back to a generic description")
	}
}
