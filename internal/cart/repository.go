package cart

import "sync"

// Repository persists one line sequence per session. Load never fails on a
// missing or unreadable cart: an empty sequence is always a safe answer for
// a shopper, an error page is not.
type Repository interface {
	Load(sessionID string) ([]Line, error)
	Save(sessionID string, lines []Line) error
	Delete(sessionID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string][]Line)}
}

func (r *InMemoryRepository) Load(sessionID string) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines, ok := r.carts[sessionID]
	if !ok {
		return []Line{}, nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *InMemoryRepository) Save(sessionID string, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]Line, len(lines))
	copy(cp, lines)
	r.carts[sessionID] = cp
	return nil
}

func (r *InMemoryRepository) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
