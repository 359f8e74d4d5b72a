package banner

// Service provides business logic for banners.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` slides; a failing repository reads as none.
func (s *Service) List(limit int) []Banner {
	banners, err := s.repo.List(limit)
	if err != nil {
		return []Banner{}
	}
	return banners
}
