package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/mock"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func newTestLedgerSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	now time.Time,
) (
	*ledgerService,
	*mock.MockLedgerRepository,
	*mock.MockUserRepository,
	*mock.MockLedgerMetrics,
) {
	t.Helper()
	ledgerRepo := mock.NewMockLedgerRepository(ctrl)
	userRepo := mock.NewMockUserRepository(ctrl)
	metrics := mock.NewMockLedgerMetrics(ctrl)

	svc := NewLedgerService(ledgerRepo, userRepo, metrics, saoPaulo, logger.Nop()).(*ledgerService)
	svc.now = func() time.Time { return now }

	return svc, ledgerRepo, userRepo, metrics
}

// ── RecordPurchase ───────────────────────────────────────────────────────────

func TestLedgerService_RecordPurchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2025, time.February, 1, 1, 30, 0, 0, time.UTC) // still January in São Paulo
	svc, ledgerRepo, _, metrics := newTestLedgerSvc(t, ctrl, now)

	created := models.Transaction{
		ID:          10,
		UserID:      1,
		ProductID:   2,
		ProductName: "Coca-Cola",
		ProductType: models.ProductTypeCoke,
		Price:       decimal.RequireFromString("5.00"),
		Timestamp:   now,
	}

	ledgerRepo.EXPECT().RecordPurchase(gomock.Any(), models.Purchase{
		UserID:    1,
		ProductID: 2,
		At:        now,
		Month:     "2025-01",
	}).Return(created, nil)
	metrics.EXPECT().ObservePurchase(models.ProductTypeCoke, created.Price)

	transaction, err := svc.RecordPurchase(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, created, transaction)
}

func TestLedgerService_RecordPurchase_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{"unknown user", store.ErrUserNotFound, ErrUserNotFound},
		{"unknown product", store.ErrProductNotFound, ErrProductNotFound},
		{"transient", fmt.Errorf("%w: deadlock", store.ErrTransient), ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, ledgerRepo, _, _ := newTestLedgerSvc(t, ctrl, time.Now())

			ledgerRepo.EXPECT().RecordPurchase(gomock.Any(), gomock.Any()).Return(models.Transaction{}, tt.storeErr)

			_, err := svc.RecordPurchase(context.Background(), 1, 2)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLedgerService_NilMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerRepo := mock.NewMockLedgerRepository(ctrl)
	svc := NewLedgerService(ledgerRepo, mock.NewMockUserRepository(ctrl), nil, nil, logger.Nop())

	ledgerRepo.EXPECT().RecordPurchase(gomock.Any(), gomock.Any()).Return(models.Transaction{ID: 1}, nil)
	ledgerRepo.EXPECT().DeleteAllTransactions(gomock.Any()).Return(int64(1), nil)

	_, err := svc.RecordPurchase(context.Background(), 1, 1)
	require.NoError(t, err)
	_, err = svc.SettleAll(context.Background())
	require.NoError(t, err)
}

// ── SettleUser ───────────────────────────────────────────────────────────────

func TestLedgerService_SettleUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, metrics := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteUserTransactions(gomock.Any(), int64(1)).Return(int64(3), nil)
	metrics.EXPECT().ObserveSettlement(int64(3))

	settlement, err := svc.SettleUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, settlement.UserID)
	assert.Equal(t, int64(1), *settlement.UserID)
	assert.Equal(t, int64(3), settlement.Cleared)
}

func TestLedgerService_SettleUser_NothingToClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, userRepo, metrics := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteUserTransactions(gomock.Any(), int64(1)).Return(int64(0), nil)
	userRepo.EXPECT().GetUser(gomock.Any(), int64(1)).Return(models.User{ID: 1}, nil)
	metrics.EXPECT().ObserveSettlement(int64(0))

	settlement, err := svc.SettleUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, settlement.Cleared)
}

func TestLedgerService_SettleUser_UnknownUserWithoutDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, userRepo, _ := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteUserTransactions(gomock.Any(), int64(9)).Return(int64(0), nil)
	userRepo.EXPECT().GetUser(gomock.Any(), int64(9)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.SettleUser(context.Background(), 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Debt left behind by a deleted user can still be cleared.
func TestLedgerService_SettleUser_OrphanedDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, metrics := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteUserTransactions(gomock.Any(), int64(9)).Return(int64(2), nil)
	metrics.EXPECT().ObserveSettlement(int64(2))

	settlement, err := svc.SettleUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), settlement.Cleared)
}

func TestLedgerService_SettleUser_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, _ := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteUserTransactions(gomock.Any(), int64(1)).
		Return(int64(0), fmt.Errorf("%w: database is locked", store.ErrTransient))

	_, err := svc.SettleUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// ── SettleAll / lists ────────────────────────────────────────────────────────

func TestLedgerService_SettleAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, metrics := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().DeleteAllTransactions(gomock.Any()).Return(int64(12), nil)
	metrics.EXPECT().ObserveSettlement(int64(12))

	settlement, err := svc.SettleAll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, settlement.UserID)
	assert.Equal(t, int64(12), settlement.Cleared)
}

func TestLedgerService_ListTransactions_NewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, _ := newTestLedgerSvc(t, ctrl, time.Now())
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	ledgerRepo.EXPECT().ListTransactions(gomock.Any()).Return([]models.Transaction{
		{ID: 1, Timestamp: base},
		{ID: 2, Timestamp: base.Add(time.Hour)},
	}, nil)

	transactions, err := svc.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), transactions[0].ID)
}

func TestLedgerService_ListUserTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, _ := newTestLedgerSvc(t, ctrl, time.Now())

	ledgerRepo.EXPECT().ListUserTransactions(gomock.Any(), int64(4)).Return([]models.Transaction{}, nil)

	transactions, err := svc.ListUserTransactions(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestLedgerService_ListUserTransactions_NewestFirstNeverNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, ledgerRepo, _, _ := newTestLedgerSvc(t, ctrl, time.Now())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	ledgerRepo.EXPECT().ListUserTransactions(gomock.Any(), int64(4)).Return([]models.Transaction{
		{ID: 5, UserID: 4, Timestamp: base},
		{ID: 9, UserID: 4, Timestamp: base.Add(2 * time.Hour)},
	}, nil)
	ledgerRepo.EXPECT().ListUserTransactions(gomock.Any(), int64(8)).Return(nil, nil)

	transactions, err := svc.ListUserTransactions(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, int64(9), transactions[0].ID)

	empty, err := svc.ListUserTransactions(context.Background(), 8)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
