package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// historyRepository reads the append-only "purchase_history" table. Rows are
// written only by [LedgerRepository.RecordPurchase].
type historyRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating purchase history repository")
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

func (h *historyRepository) ListHistory(ctx context.Context) ([]models.PurchaseHistory, error) {
	query, args, err := buildSelectAllHistoryQuery(h.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return h.queryHistory(ctx, "historyRepository.ListHistory", query, args)
}

func (h *historyRepository) ListUserHistory(ctx context.Context, userID int64) ([]models.PurchaseHistory, error) {
	query, args, err := buildSelectUserHistoryQuery(h.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return h.queryHistory(ctx, "historyRepository.ListUserHistory", query, args)
}

func (h *historyRepository) ListMonthHistory(ctx context.Context, month string) ([]models.PurchaseHistory, error) {
	query, args, err := buildSelectMonthHistoryQuery(h.db.builder, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return h.queryHistory(ctx, "historyRepository.ListMonthHistory", query, args)
}

// ListMonths returns the distinct month keys present in history, newest
// first.
func (h *historyRepository) ListMonths(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectHistoryMonthsQuery(h.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "historyRepository.ListMonths").Msg("failed to select months")
		return nil, h.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	months := make([]string, 0)
	for rows.Next() {
		var month string
		if err = rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		months = append(months, month)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return months, nil
}

func (h *historyRepository) queryHistory(ctx context.Context, funcName, query string, args []any) ([]models.PurchaseHistory, error) {
	log := logger.FromContext(ctx)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to select purchase history")
		return nil, h.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.PurchaseHistory, 0)
	for rows.Next() {
		var e models.PurchaseHistory
		scanErr := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.ProductName, &e.Price, &e.Timestamp, &e.Month)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan purchase history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
