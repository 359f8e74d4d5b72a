package cart

import (
	"errors"
	"log"

	"github.com/chadastore/storefront/internal/storage"
)

// FileRepository keeps each session's cart in the local key-value store,
// the server-side stand-in for the browser's localStorage. A cart that
// fails to parse reads back as empty instead of erroring.
type FileRepository struct {
	kv *storage.KV
}

func NewFileRepository(kv *storage.KV) *FileRepository {
	return &FileRepository{kv: kv}
}

func key(sessionID string) string { return "cart_" + sessionID }

func (r *FileRepository) Load(sessionID string) ([]Line, error) {
	var lines []Line
	err := r.kv.Get(key(sessionID), &lines)
	if errors.Is(err, storage.ErrNotFound) {
		return []Line{}, nil
	}
	if errors.Is(err, storage.ErrCorrupt) {
		log.Printf("warning: cart for session %s is corrupt, treating as empty", sessionID)
		return []Line{}, nil
	}
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

func (r *FileRepository) Save(sessionID string, lines []Line) error {
	return r.kv.Set(key(sessionID), lines)
}

func (r *FileRepository) Delete(sessionID string) error {
	return r.kv.Delete(key(sessionID))
}
