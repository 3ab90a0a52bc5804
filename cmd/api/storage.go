package main

import (
	"context"
	"fmt"

	"pet-house/internal/adapters/storage/memory"
	pg "pet-house/internal/adapters/storage/postgres"
	"pet-house/internal/adapters/storage/sqlite"
	"pet-house/internal/platform/config"
	"pet-house/internal/platform/logger"
	"pet-house/internal/ports/blobstore"
)

// openBlobs elige el backend del blob store. El cierre devuelto nunca es nil.
func openBlobs(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (blobstore.Store, func(), error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite storage", logger.Fields{"path": cfg.SQLitePath})
		return s, func() { _ = s.Close() }, nil

	case config.StoragePostgres:
		if err := pg.Migrate(cfg.DSN); err != nil {
			return nil, nil, err
		}
		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres storage", nil)
		return pg.NewBlobStore(db), func() { _ = db.Close() }, nil

	case config.StorageMemory, "":
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return memory.NewBlobStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
