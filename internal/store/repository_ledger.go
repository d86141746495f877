// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// ledgerRepository is the SQL-backed implementation of [LedgerRepository].
// It owns the "transactions" table and appends to "purchase_history" as part
// of every purchase.
type ledgerRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLedgerRepository constructs a [LedgerRepository] backed by db.
func NewLedgerRepository(db *DB, logger *logger.Logger) LedgerRepository {
	logger.Debug().Msg("creating ledger repository")
	return &ledgerRepository{
		db:     db,
		logger: logger,
	}
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.ProductID, &t.ProductName, &t.ProductType, &t.Price, &t.Timestamp)
	t.ProductType = t.ProductType.Normalize()
	return t, err
}

// RecordPurchase resolves the user and the product, then writes the debt
// entry and its history entry inside one database transaction.
//
// Steps:
//  1. Look up the user (frozen name for history) → [ErrUserNotFound].
//  2. Look up the product (frozen name, price, category) → [ErrProductNotFound].
//  3. INSERT the transaction row.
//  4. INSERT the purchase history row.
//  5. COMMIT. On any failure the deferred rollback discards both rows.
func (l *ledgerRepository) RecordPurchase(ctx context.Context, purchase models.Purchase) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "ledgerRepository.RecordPurchase").
			Msg("failed to begin transaction")
		return models.Transaction{}, l.db.classify(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// user
	query, args, err := buildSelectUserByIDQuery(l.db.builder, purchase.UserID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	user, err := scanUser(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "ledgerRepository.RecordPurchase").Int64("user_id", purchase.UserID).Msg("failed to select user")
		return models.Transaction{}, l.db.classify(ErrExecutingQuery, err)
	}

	// product
	query, args, err = buildSelectProductByIDQuery(l.db.builder, purchase.ProductID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	product, err := scanProduct(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "ledgerRepository.RecordPurchase").Int64("product_id", purchase.ProductID).Msg("failed to select product")
		return models.Transaction{}, l.db.classify(ErrExecutingQuery, err)
	}

	transaction := models.Transaction{
		UserID:      user.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductType: product.Type.Normalize(),
		Price:       product.Price,
		Timestamp:   purchase.At,
	}

	query, args, err = buildInsertTransactionQuery(l.db.builder, transaction)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&transaction.ID); err != nil {
		log.Err(err).Str("func", "ledgerRepository.RecordPurchase").Msg("failed to insert transaction")
		return models.Transaction{}, l.db.classify(ErrExecutingStatement, err)
	}

	history := models.PurchaseHistory{
		UserID:      user.ID,
		UserName:    user.Name,
		ProductName: product.Name,
		Price:       product.Price,
		Timestamp:   purchase.At,
		Month:       purchase.Month,
	}

	query, args, err = buildInsertHistoryQuery(l.db.builder, history)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&history.ID); err != nil {
		log.Err(err).Str("func", "ledgerRepository.RecordPurchase").Msg("failed to insert purchase history")
		return models.Transaction{}, l.db.classify(ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "ledgerRepository.RecordPurchase").
			Msg("failed to commit transaction")
		return models.Transaction{}, l.db.classify(ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "ledgerRepository.RecordPurchase").
		Int64("user_id", user.ID).
		Int64("product_id", product.ID).
		Int64("transaction_id", transaction.ID).
		Int64("history_id", history.ID).
		Msg("purchase recorded")

	return transaction, nil
}

func (l *ledgerRepository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query, args, err := buildSelectAllTransactionsQuery(l.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return l.queryTransactions(ctx, "ledgerRepository.ListTransactions", query, args)
}

func (l *ledgerRepository) ListUserTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query, args, err := buildSelectUserTransactionsQuery(l.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return l.queryTransactions(ctx, "ledgerRepository.ListUserTransactions", query, args)
}

func (l *ledgerRepository) queryTransactions(ctx context.Context, funcName, query string, args []any) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to select transactions")
		return nil, l.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan transaction row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transactions, nil
}

// DeleteUserTransactions clears the debt of one user and returns the number
// of removed rows. History is untouched.
func (l *ledgerRepository) DeleteUserTransactions(ctx context.Context, userID int64) (int64, error) {
	return l.deleteTransactions(ctx, &userID)
}

// DeleteAllTransactions clears the debt of every user.
func (l *ledgerRepository) DeleteAllTransactions(ctx context.Context) (int64, error) {
	return l.deleteTransactions(ctx, nil)
}

func (l *ledgerRepository) deleteTransactions(ctx context.Context, userID *int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteTransactionsQuery(l.db.builder, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ledgerRepository.deleteTransactions").Msg("failed to delete transactions")
		return 0, l.db.classify(ErrExecutingStatement, err)
	}

	cleared, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().
		Str("func", "ledgerRepository.deleteTransactions").
		Int64("cleared", cleared).
		Bool("all_users", userID == nil).
		Msg("transactions cleared")

	return cleared, nil
}
