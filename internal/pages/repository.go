package pages

import "errors"

var ErrPageNotFound = errors.New("page not found")

// Repository provides access to static pages by slug.
type Repository interface {
	Get(slug string) (Page, error)
}

// StaticRepository serves pages compiled into the binary. Page copy changes
// rarely enough that a deploy is the edit workflow.
type StaticRepository struct {
	pages map[string]Page
}

func NewStaticRepository(pages []Page) *StaticRepository {
	if pages == nil {
		pages = DefaultPages()
	}
	m := make(map[string]Page, len(pages))
	for _, p := range pages {
		m[p.Slug] = p
	}
	return &StaticRepository{pages: m}
}

func (r *StaticRepository) Get(slug string) (Page, error) {
	p, ok := r.pages[slug]
	if !ok {
		return Page{}, ErrPageNotFound
	}
	return p, nil
}

// DefaultPages is the copy currently live on the storefront.
func DefaultPages() []Page {
	return []Page{
		{
			Slug:  "about",
			Title: "About Chada Store",
			Paragraphs: []string{
				"Chada Store curates perfumes and home fragrances from regional and international houses, with a focus on oud, floral and fresh compositions.",
				"Every bottle we list is sourced directly from the maker or an authorised distributor. What you see in the catalog is what sits on our shelves.",
				"Orders are prepared the same day and shipped with tracked delivery.",
			},
		},
		{
			Slug:  "contact",
			Title: "Contact us",
			Paragraphs: []string{
				"Questions about an order, a fragrance or a return? Reach us through any of the channels below.",
			},
			Contact: &Contact{
				Email:   "hello@chadastore.example",
				Phone:   "+966 50 000 0000",
				Address: "12 Rose Street, Riyadh",
				Hours:   "Sat-Thu 10:00-22:00",
			},
		},
	}
}
