package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-house/internal/ports/blobstore"
)

// blobStore guarda los blobs en memoria (modo dev y tests). Se pierde al reiniciar.
type blobStore struct {
	mu    sync.RWMutex
	byKey map[string][]byte
}

func NewBlobStore() blobstore.Store {
	return &blobStore{
		byKey: make(map[string][]byte),
	}
}

// NewBlobStoreWith precarga valores (útil para simular datos persistidos).
func NewBlobStoreWith(seed map[string][]byte) blobstore.Store {
	s := &blobStore{byKey: make(map[string][]byte, len(seed))}
	for k, v := range seed {
		s.byKey[k] = append([]byte(nil), v...)
	}
	return s
}

func (s *blobStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *blobStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(key) == "" {
		return errors.New("blob key required")
	}
	s.byKey[key] = append([]byte(nil), value...)
	return nil
}
