package cart

import (
	"log"
	"sync"
)

// Event tells subscribers that a session's cart changed. The full sequence
// rides along so listeners (cart badge, open cart views) need no follow-up
// read.
type Event struct {
	SessionID string
	Lines     []Line
}

// Store is the single owner of cart state. Every mutation runs behind one
// mutex (a read-modify-write against the repository must not interleave
// with another), persists the whole sequence, and notifies subscribers.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	subMu  sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, subs: make(map[int]chan Event)}
}

// Load returns the stored sequence; anything unreadable reads as empty.
func (s *Store) Load(sessionID string) []Line {
	lines, err := s.repo.Load(sessionID)
	if err != nil {
		log.Printf("warning: could not load cart for session %s: %v", sessionID, err)
		return []Line{}
	}
	return lines
}

// Add merges quantity into the line with the same (product, variant)
// identity, appending a new line otherwise. A negative quantity decrements;
// a line that drops to zero or below disappears. No stock cap is applied
// here — capping happens at reconciliation against live data.
func (s *Store) Add(sessionID string, productID, quantity int, index *int, price *float64) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Load(sessionID)
	if quantity == 0 {
		return lines, nil
	}

	merged := false
	for i := range lines {
		if lines[i].sameVariant(productID, index) {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		if quantity < 0 {
			return lines, nil
		}
		lines = append(lines, Line{ProductID: productID, Quantity: quantity, SelectedImageIndex: index, Price: price})
	}
	lines = dropEmpty(lines)

	if err := s.repo.Save(sessionID, lines); err != nil {
		return nil, err
	}
	s.notify(sessionID, lines)
	return lines, nil
}

// UpdateQuantity sets the quantity of the matching line(s). A nil index
// touches every variant of the product, mirroring how the storefront's
// quantity controls behave when no variant was chosen. Zero or negative is
// a removal.
func (s *Store) UpdateQuantity(sessionID string, productID int, index *int, quantity int) ([]Line, error) {
	if quantity <= 0 {
		return s.Remove(sessionID, productID, index)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Load(sessionID)
	for i := range lines {
		if index == nil {
			if lines[i].matchesProduct(productID) {
				lines[i].Quantity = quantity
			}
		} else if lines[i].sameVariant(productID, index) {
			lines[i].Quantity = quantity
		}
	}

	if err := s.repo.Save(sessionID, lines); err != nil {
		return nil, err
	}
	s.notify(sessionID, lines)
	return lines, nil
}

// Remove deletes the matching line. A nil index is a wildcard: every
// variant of the product goes. A concrete index removes only that variant.
func (s *Store) Remove(sessionID string, productID int, index *int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.Load(sessionID)
	kept := lines[:0:0]
	for _, l := range lines {
		if index == nil {
			if l.matchesProduct(productID) {
				continue
			}
		} else if l.sameVariant(productID, index) {
			continue
		}
		kept = append(kept, l)
	}

	if err := s.repo.Save(sessionID, kept); err != nil {
		return nil, err
	}
	s.notify(sessionID, kept)
	return kept, nil
}

// Clear empties the cart; called after a successful order submission.
func (s *Store) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(sessionID); err != nil {
		return err
	}
	s.notify(sessionID, []Line{})
	return nil
}

// Count is the badge number: the sum of quantities across all lines.
func (s *Store) Count(sessionID string) int {
	total := 0
	for _, l := range s.Load(sessionID) {
		total += l.Quantity
	}
	return total
}

// Subscribe registers a listener for cart changes across all sessions.
// The returned cancel func must be called to release the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) notify(sessionID string, lines []Line) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Event{SessionID: sessionID, Lines: lines}:
		default:
			// a slow listener loses events rather than blocking mutations
		}
	}
}

func dropEmpty(lines []Line) []Line {
	kept := lines[:0:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	return kept
}
