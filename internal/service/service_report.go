package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/report"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// reportService loads rows from storage and hands them to the pure
// functions of package report. Nothing derived is ever stored.
type reportService struct {
	userRepository    store.UserRepository
	ledgerRepository  store.LedgerRepository
	historyRepository store.HistoryRepository

	location *time.Location

	logger *logger.Logger
}

func NewReportService(storages *store.Storages, loc *time.Location, logger *logger.Logger) ReportService {
	if loc == nil {
		loc = time.UTC
	}

	return &reportService{
		userRepository:    storages.UserRepository,
		ledgerRepository:  storages.LedgerRepository,
		historyRepository: storages.HistoryRepository,
		location:          loc,
		logger:            logger,
	}
}

// Balance is the sum of the user's unsettled transactions. Unknown users
// simply owe nothing.
func (r *reportService) Balance(ctx context.Context, userID int64) (models.BalanceResponse, error) {
	transactions, err := r.ledgerRepository.ListUserTransactions(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reportService.Balance").Int64("user_id", userID).Msg("error loading transactions")
		return models.BalanceResponse{}, mapStoreError(err, nil)
	}

	return models.BalanceResponse{UserID: userID, Balance: report.Balance(transactions, userID)}, nil
}

func (r *reportService) Balances(ctx context.Context) ([]models.Balance, error) {
	users, transactions, err := r.usersAndTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return report.Balances(users, transactions), nil
}

func (r *reportService) History(ctx context.Context) ([]models.PurchaseHistory, error) {
	history, err := r.historyRepository.ListHistory(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	report.SortHistory(history)
	return history, nil
}

func (r *reportService) UserHistory(ctx context.Context, userID int64) ([]models.PurchaseHistory, error) {
	history, err := r.historyRepository.ListUserHistory(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return report.HistoryOf(history, userID), nil
}

// Months lists the distinct month keys of the history, newest first.
func (r *reportService) Months(ctx context.Context) ([]string, error) {
	months, err := r.historyRepository.ListMonths(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return months, nil
}

func (r *reportService) MonthHistory(ctx context.Context, month string) ([]models.PurchaseHistory, error) {
	if _, err := models.ParseMonthKey(month); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMonth, err)
	}

	history, err := r.historyRepository.ListMonthHistory(ctx, month)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	report.SortHistory(history)
	return history, nil
}

func (r *reportService) Ranking(ctx context.Context, n int) ([]models.RankingEntry, error) {
	users, transactions, err := r.usersAndTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return report.RankingTop(users, transactions, n), nil
}

func (r *reportService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	transactions, err := r.ledgerRepository.ListTransactions(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return report.CategoryMix(transactions), nil
}

func (r *reportService) Hours(ctx context.Context) (models.HourlyHistogram, error) {
	transactions, err := r.ledgerRepository.ListTransactions(ctx)
	if err != nil {
		return models.HourlyHistogram{}, mapStoreError(err, nil)
	}

	return report.Hourly(transactions, r.location), nil
}

func (r *reportService) Summary(ctx context.Context) (models.Summary, error) {
	transactions, err := r.ledgerRepository.ListTransactions(ctx)
	if err != nil {
		return models.Summary{}, mapStoreError(err, nil)
	}

	return report.Summary(transactions), nil
}

// ExportMonth renders the month's history as an XLSX workbook.
func (r *reportService) ExportMonth(ctx context.Context, month string) ([]byte, error) {
	history, err := r.MonthHistory(ctx, month)
	if err != nil {
		return nil, err
	}

	data, err := report.ExportMonth(month, history, r.location)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reportService.ExportMonth").Str("month", month).Msg("error rendering workbook")
		return nil, fmt.Errorf("error exporting month %s: %w", month, err)
	}

	return data, nil
}

func (r *reportService) usersAndTransactions(ctx context.Context) ([]models.User, []models.Transaction, error) {
	log := logger.FromContext(ctx)

	users, err := r.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Str("func", "*reportService.usersAndTransactions").Msg("error loading users")
		return nil, nil, mapStoreError(err, nil)
	}

	transactions, err := r.ledgerRepository.ListTransactions(ctx)
	if err != nil {
		log.Err(err).Str("func", "*reportService.usersAndTransactions").Msg("error loading transactions")
		return nil, nil, mapStoreError(err, nil)
	}

	return users, transactions, nil
}
