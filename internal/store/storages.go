package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
)

// Storages groups all repositories into a single value that can be passed
// to the service layer.
type Storages struct {
	UserRepository    UserRepository
	ProductRepository ProductRepository
	LedgerRepository  LedgerRepository
	HistoryRepository HistoryRepository

	db *DB
}

// NewConnect opens the backend selected by the DSN: PostgreSQL for
// postgres URLs and keyword DSNs, SQLite otherwise.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if IsPostgresDSN(cfg.DSN) {
		return NewConnectPostgres(ctx, cfg, log)
	}

	return NewConnectSQLite(ctx, cfg, log)
}

// NewStorages initialises the storage layer. It performs the following steps:
//  1. Connects to the backend selected by cfg.DB.DSN.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB builds every repository over an already connected db.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ProductRepository: NewProductRepository(db, logger),
		LedgerRepository:  NewLedgerRepository(db, logger),
		HistoryRepository: NewHistoryRepository(db, logger),
		db:                db,
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
