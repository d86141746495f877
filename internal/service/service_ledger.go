// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/report"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// ledgerService records purchases and settles debt.
//
// A settlement racing a purchase is last-write-wins: a purchase committed
// after the DELETE survives as new debt.
type ledgerService struct {
	ledgerRepository store.LedgerRepository
	userRepository   store.UserRepository

	metrics  LedgerMetrics
	location *time.Location
	now      func() time.Time

	logger *logger.Logger
}

// NewLedgerService constructs a LedgerService. loc defines the month key of
// history rows; a nil loc means UTC. metrics may be nil.
func NewLedgerService(ledgerRepository store.LedgerRepository, userRepository store.UserRepository, metrics LedgerMetrics, loc *time.Location, logger *logger.Logger) LedgerService {
	if loc == nil {
		loc = time.UTC
	}

	return &ledgerService{
		ledgerRepository: ledgerRepository,
		userRepository:   userRepository,
		metrics:          metrics,
		location:         loc,
		now:              time.Now,
		logger:           logger,
	}
}

// RecordPurchase appends one debt row and one history row for userID buying
// productID. Name, price and category are copied from the catalog.
func (l *ledgerService) RecordPurchase(ctx context.Context, userID, productID int64) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	now := l.now()
	transaction, err := l.ledgerRepository.RecordPurchase(ctx, models.Purchase{
		UserID:    userID,
		ProductID: productID,
		At:        now,
		Month:     models.MonthKey(now, l.location),
	})
	if err != nil {
		log.Err(err).
			Str("func", "*ledgerService.RecordPurchase").
			Int64("user_id", userID).
			Int64("product_id", productID).
			Msg("purchase was not recorded")
		return models.Transaction{}, mapStoreError(err, nil)
	}

	if l.metrics != nil {
		l.metrics.ObservePurchase(transaction.ProductType, transaction.Price)
	}

	log.Info().
		Str("func", "*ledgerService.RecordPurchase").
		Int64("user_id", userID).
		Int64("transaction_id", transaction.ID).
		Str("price", transaction.Price.String()).
		Msg("purchase recorded")

	return transaction, nil
}

// SettleUser clears the debt of userID. Clearing nothing is fine; the call
// fails with ErrUserNotFound only when the user is unknown and had no debt,
// so orphaned debt of a deleted user can still be cleared.
func (l *ledgerService) SettleUser(ctx context.Context, userID int64) (models.Settlement, error) {
	log := logger.FromContext(ctx)

	cleared, err := l.ledgerRepository.DeleteUserTransactions(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*ledgerService.SettleUser").Int64("user_id", userID).Msg("settlement failed")
		return models.Settlement{}, mapStoreError(err, nil)
	}

	if cleared == 0 {
		if _, err = l.userRepository.GetUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return models.Settlement{}, ErrUserNotFound
			}
			return models.Settlement{}, mapStoreError(err, nil)
		}
	}

	if l.metrics != nil {
		l.metrics.ObserveSettlement(cleared)
	}

	log.Info().Str("func", "*ledgerService.SettleUser").Int64("user_id", userID).Int64("cleared", cleared).Msg("user settled")

	return models.Settlement{UserID: &userID, Cleared: cleared}, nil
}

// SettleAll clears every debt row. History is untouched.
func (l *ledgerService) SettleAll(ctx context.Context) (models.Settlement, error) {
	log := logger.FromContext(ctx)

	cleared, err := l.ledgerRepository.DeleteAllTransactions(ctx)
	if err != nil {
		log.Err(err).Str("func", "*ledgerService.SettleAll").Msg("settlement failed")
		return models.Settlement{}, mapStoreError(err, nil)
	}

	if l.metrics != nil {
		l.metrics.ObserveSettlement(cleared)
	}

	log.Info().Str("func", "*ledgerService.SettleAll").Int64("cleared", cleared).Msg("everyone settled")

	return models.Settlement{Cleared: cleared}, nil
}

func (l *ledgerService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := l.ledgerRepository.ListTransactions(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	report.SortTransactions(transactions)
	return transactions, nil
}

// ListUserTransactions returns the open debt rows of userID, newest first.
func (l *ledgerService) ListUserTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	transactions, err := l.ledgerRepository.ListUserTransactions(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return report.DebtOf(transactions, userID), nil
}
