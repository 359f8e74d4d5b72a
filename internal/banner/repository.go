package banner

// Repository provides access to banner slides.
type Repository interface {
	List(limit int) ([]Banner, error)
}

// StaticRepository serves a fixed set of slides. Banners change with
// marketing campaigns, not with user traffic, so they ship with the build.
type StaticRepository struct {
	banners []Banner
}

func NewStaticRepository(banners []Banner) *StaticRepository {
	if banners == nil {
		banners = DefaultBanners()
	}
	return &StaticRepository{banners: banners}
}

func (r *StaticRepository) List(limit int) ([]Banner, error) {
	if limit <= 0 || limit > len(r.banners) {
		limit = len(r.banners)
	}
	out := make([]Banner, limit)
	copy(out, r.banners[:limit])
	return out, nil
}

func strp(s string) *string { return &s }

// DefaultBanners is the campaign set currently on the landing page.
func DefaultBanners() []Banner {
	return []Banner{
		{ID: 1, Image: "/banners/new-arrivals.jpg", Link: strp("/products?sort=name"), Alt: strp("New arrivals")},
		{ID: 2, Image: "/banners/promotions.jpg", Link: strp("/promotions"), Alt: strp("Seasonal offers")},
		{ID: 3, Image: "/banners/oud-collection.jpg", Link: strp("/products?search=oud"), Alt: strp("Oud collection")},
	}
}
