package petstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-house/internal/platform/logger"
	"pet-house/internal/ports/blobstore"
)

// loadCollection lee un arreglo JSON. Clave ausente o JSON inválido => vacío.
func loadCollection[T any](ctx context.Context, blobs blobstore.Store, log logger.Logger, key string) ([]T, error) {
	raw, err := blobs.Load(ctx, key)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("petstore: load %s: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn("malformed persisted data, starting empty", logger.Fields{"key": key, "err": err})
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *Store) persistPets(ctx context.Context) {
	s.save(ctx, KeyPets, s.pets)
}

func (s *Store) persistReminders(ctx context.Context) {
	s.save(ctx, KeyReminders, s.reminders)
}

// persistTimeout acota la escritura una vez desligada del request.
const persistTimeout = 5 * time.Second

// save reescribe la colección completa. Un fallo se registra pero no se devuelve:
// el estado en memoria sigue siendo la fuente de verdad.
// La escritura no hereda la cancelación de ctx: una mutación aceptada se persiste
// aunque el cliente ya se haya ido.
func (s *Store) save(ctx context.Context, key string, v any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	b, err := json.Marshal(v)
	if err == nil {
		err = s.blobs.Save(ctx, key, b)
	}
	if err != nil {
		s.metrics.RecordPersistFailure(key)
		s.log.Error("persist failed", logger.Fields{"key": key, "err": err})
	}
}
