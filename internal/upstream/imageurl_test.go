package upstream

import "testing"

func TestResolveImageURL(t *testing.T) {
	base := "https://api.chadastore.com"

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", PlaceholderImage},
		{"whitespace only", "   ", PlaceholderImage},
		{"absolute url", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"stale localhost http", "http://localhost:8080/api/images/a.jpg", base + "/api/images/a.jpg"},
		{"stale localhost https", "https://localhost:8080/uploads/b.png", base + "/uploads/b.png"},
		{"server relative", "/uploads/c.jpg", base + "/uploads/c.jpg"},
		{"bare filename", "d.jpg", base + "/api/images/d.jpg"},
		{"filename with api prefix", "api/images/e.jpg", base + "/api/images/e.jpg"},
		{"padded", "  /uploads/f.jpg  ", base + "/uploads/f.jpg"},
	}

	for _, tc := range cases {
		if got := ResolveImageURL(base, tc.in); got != tc.want {
			t.Errorf("%s: ResolveImageURL(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestResolveImageURLTrailingSlashBase(t *testing.T) {
	got := ResolveImageURL("https://api.chadastore.com/", "/uploads/a.jpg")
	if got != "https://api.chadastore.com/uploads/a.jpg" {
		t.Fatalf("duplicate slash not collapsed: %q", got)
	}
}
