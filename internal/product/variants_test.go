package product

import "testing"

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

func TestParseVariantsStates(t *testing.T) {
	if v := ParseVariants(""); v.State != VariantsAbsent {
		t.Fatalf("empty field should be absent, got %v", v.State)
	}
	if v := ParseVariants("{broken"); v.State != VariantsMalformed {
		t.Fatalf("broken JSON should be malformed, got %v", v.State)
	}
	if v := ParseVariants("[]"); v.State != VariantsAbsent {
		t.Fatalf("empty array should read as absent, got %v", v.State)
	}
	v := ParseVariants(`[{"url":"a.jpg","price":120,"quantity":3}]`)
	if v.State != VariantsPresent || len(v.Details) != 1 {
		t.Fatalf("expected one parsed variant, got %+v", v)
	}
	if v.Details[0].Price == nil || *v.Details[0].Price != 120 {
		t.Fatalf("variant price not parsed: %+v", v.Details[0])
	}
}

func TestStockCeilingDefaultsOpen(t *testing.T) {
	// malformed data must not zero out the ceiling
	if got := ParseVariants("{broken").StockCeiling(0); got != OpenStockCeiling {
		t.Fatalf("malformed variants: ceiling = %d, want %d", got, OpenStockCeiling)
	}
	// index beyond the list is equally unconstrained
	v := ParseVariants(`[{"url":"a.jpg","quantity":2}]`)
	if got := v.StockCeiling(5); got != OpenStockCeiling {
		t.Fatalf("out-of-range index: ceiling = %d, want %d", got, OpenStockCeiling)
	}
	// a variant without a quantity field is unconstrained too
	v = ParseVariants(`[{"url":"a.jpg"}]`)
	if got := v.StockCeiling(0); got != OpenStockCeiling {
		t.Fatalf("missing quantity: ceiling = %d, want %d", got, OpenStockCeiling)
	}
	// a resolvable variant uses its own number
	v = ParseVariants(`[{"url":"a.jpg","quantity":2}]`)
	if got := v.StockCeiling(0); got != 2 {
		t.Fatalf("ceiling = %d, want 2", got)
	}
}

func TestImageFallbackChain(t *testing.T) {
	base := "https://api.chadastore.com"

	p := Product{ImageDetails: `[{"url":"/uploads/v0.jpg"},{"url":"/uploads/v1.jpg"}]`}
	if got := Image(p, base, 1); got != base+"/uploads/v1.jpg" {
		t.Fatalf("variant image not used: %q", got)
	}

	p = Product{ImageDetails: "{broken", ImageURLs: `["/uploads/legacy.jpg"]`}
	if got := Image(p, base, 0); got != base+"/uploads/legacy.jpg" {
		t.Fatalf("legacy fallback not used: %q", got)
	}

	p = Product{ImageURL: "single.jpg"}
	if got := Image(p, base, 0); got != base+"/api/images/single.jpg" {
		t.Fatalf("single image fallback not used: %q", got)
	}

	if got := Image(Product{}, base, 0); got == "" {
		t.Fatal("expected placeholder for a product without images")
	}
}

func TestImageOutOfRangeIndexFallsBackToFirst(t *testing.T) {
	base := "https://api.chadastore.com"
	p := Product{ImageDetails: `[{"url":"/uploads/v0.jpg"}]`}
	if got := Image(p, base, 7); got != base+"/uploads/v0.jpg" {
		t.Fatalf("expected first variant image, got %q", got)
	}
}
