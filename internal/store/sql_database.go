package store

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/migrations"
)

// DB is a database handle bound to one SQL backend. It carries the
// backend's error classifier and a squirrel statement builder that emits
// the backend's placeholder format.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	dialect string
	builder sq.StatementBuilderType
}

func newDB(conn *sql.DB, dialect string, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		errorClassificator: classificator,
		logger:             log,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Migrate applies the schema migrations of the backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect name of the backend.
func (db *DB) Dialect() string {
	return db.dialect
}

// classify wraps err with op and, when the backend recognises the failure,
// with [ErrTransient] or [ErrUniqueViolation].
func (db *DB) classify(op error, err error) error {
	classification := NonRetryable
	if db.errorClassificator != nil {
		classification = db.errorClassificator.Classify(err)
	}

	switch classification {
	case Retryable:
		return fmt.Errorf("%w: %w: %w", op, ErrTransient, err)
	case UniqueViolation:
		return fmt.Errorf("%w: %w: %w", op, ErrUniqueViolation, err)
	default:
		return fmt.Errorf("%w: %w", op, err)
	}
}

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server.
// Anything else is opened as an SQLite database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
