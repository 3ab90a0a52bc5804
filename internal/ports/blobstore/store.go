package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound: la clave nunca fue guardada.
var ErrNotFound = errors.New("blob not found")

// Store guarda valores opacos (JSON) por clave. Cada Save reemplaza el valor completo.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
