package category

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chadastore/storefront/internal/storage"
	"github.com/chadastore/storefront/internal/upstream"
)

func TestListCachedAndStaleFallback(t *testing.T) {
	var calls int32
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"Oriental"},{"id":2,"name":"Floral"}]`))
	}))
	defer srv.Close()

	client := NewClient(upstream.New(srv.URL, time.Second), storage.NewMemoryCache(), 50*time.Millisecond)
	ctx := context.Background()

	first, err := client.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(first))
	}

	if _, err := client.List(ctx); err != nil {
		t.Fatalf("cached List: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one upstream call while fresh, got %d", n)
	}

	fail.Store(true)
	time.Sleep(60 * time.Millisecond)
	stale, err := client.List(ctx)
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if len(stale) != 2 {
		t.Fatalf("unexpected stale payload: %+v", stale)
	}
}

func TestListErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(upstream.New(srv.URL, time.Second), storage.NewMemoryCache(), time.Minute)
	if _, err := client.List(context.Background()); err == nil {
		t.Fatal("expected error when no cache exists")
	}
}
