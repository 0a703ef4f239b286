package store

import (
	"context"
	"fmt"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
)

// Storages bundles every persistence dependency of the server.
type Storages struct {
	UserRepository UserRepository
	SlotRepository SlotRepository
	BlobStorage    BlobStorage

	db *DB
}

// NewStorages connects to the database, applies migrations and selects the
// blob backend: the object store when an endpoint is configured, otherwise
// the queue directory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	var blobs BlobStorage
	if cfg.ObjectStore.Endpoint != "" {
		blobs, err = NewMinioBlobStorage(ctx, cfg.ObjectStore, log)
	} else {
		blobs, err = NewFileBlobStorage(cfg.Files.QueueDir, log)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating blob storage: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		SlotRepository: NewSlotRepository(db, log),
		BlobStorage:    blobs,
		db:             db,
	}, nil
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
