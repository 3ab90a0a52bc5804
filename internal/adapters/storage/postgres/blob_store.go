package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-house/internal/ports/blobstore"
)

// BlobStore guarda cada colección como una fila jsonb en app_blobs.
type BlobStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewBlobStore(db *sql.DB) *BlobStore {
	return &BlobStore{db: db, now: time.Now}
}

func (s *BlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, blobstore.ErrNotFound
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value
		FROM app_blobs
		WHERE key = $1
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: load %s: %w", key, err)
	}
	return value, nil
}

// Save hace upsert del valor completo. Postgres valida que sea JSON (columna jsonb).
func (s *BlobStore) Save(ctx context.Context, key string, value []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("postgres: blob key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_blobs (key, value, updated_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, string(value), s.now().UTC())
	if err != nil {
		return fmt.Errorf("postgres: save %s: %w", key, err)
	}
	return nil
}
