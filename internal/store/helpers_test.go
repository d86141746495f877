package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/migrations"
)

// newTestDB returns a PostgreSQL-flavoured DB over sqlmock.
func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func newTestProductRepo(t *testing.T) (*productRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &productRepository{db: db, logger: logger.Nop()}, mock
}

func newTestLedgerRepo(t *testing.T) (*ledgerRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &ledgerRepository{db: db, logger: logger.Nop()}, mock
}

func newTestHistoryRepo(t *testing.T) (*historyRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &historyRepository{db: db, logger: logger.Nop()}, mock
}

var (
	userRowColumns        = []string{"id", "name", "pin", "must_reset_pin"}
	productRowColumns     = []string{"id", "name", "price", "type", "icon", "border_color"}
	transactionRowColumns = []string{"id", "user_id", "product_id", "product_name", "product_type", "price", "timestamp"}
	historyRowColumns     = []string{"id", "user_id", "user_name", "product_name", "price", "timestamp", "month"}
)
