// Package sqlite persiste los blobs en un archivo local. Es el equivalente en
// servidor del almacenamiento local del navegador.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pet-house/internal/ports/blobstore"
)

const schema = `
CREATE TABLE IF NOT EXISTS app_blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type BlobStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open abre (o crea) la base y asegura el esquema. path puede ser ":memory:".
func Open(ctx context.Context, path string) (*BlobStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: path required")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// un solo escritor; además ":memory:" es por conexión
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}

	return &BlobStore{db: db, now: time.Now}, nil
}

func (s *BlobStore) Close() error {
	return s.db.Close()
}

func (s *BlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM app_blobs WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: load %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *BlobStore) Save(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("sqlite: blob key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE
		SET value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value), s.now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: save %s: %w", key, err)
	}
	return nil
}
