package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openSQLiteLedger migrates a fresh SQLite file and wires the real services
// on top of it. The seed migration leaves Ana, Carlos and Beatriz plus the
// Monster Energy and Coca-Cola Zero products in place.
func openSQLiteLedger(t *testing.T) (*Services, *store.Storages) {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, config.DB{DSN: filepath.Join(t.TempDir(), "ledger.db")}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	storages := store.NewStoragesFromDB(db, logger.Nop())
	t.Cleanup(func() { _ = storages.Close() })

	services, err := NewServices(storages, config.App{
		Version:       "test",
		TimeZone:      "UTC",
		AdminPassword: "admin",
		TokenSignKey:  "sign-key",
		TokenIssuer:   "drink-ledger",
		TokenDuration: time.Hour,
	}, nil, logger.Nop())
	require.NoError(t, err)

	return services, storages
}

func seededUsers(t *testing.T, services *Services) map[string]models.User {
	t.Helper()
	users, err := services.UserService.ListUsers(context.Background())
	require.NoError(t, err)

	byName := make(map[string]models.User, len(users))
	for _, user := range users {
		byName[user.Name] = user
	}
	return byName
}

func seededProducts(t *testing.T, services *Services) map[models.ProductType]models.Product {
	t.Helper()
	products, err := services.ProductService.ListProducts(context.Background())
	require.NoError(t, err)

	byType := make(map[models.ProductType]models.Product, len(products))
	for _, product := range products {
		byType[product.Type] = product
	}
	return byType
}

func TestSQLite_SeededStarterData(t *testing.T) {
	services, _ := openSQLiteLedger(t)

	users := seededUsers(t, services)
	require.Len(t, users, 3)
	for _, name := range []string{"Ana", "Carlos", "Beatriz"} {
		user, ok := users[name]
		require.True(t, ok, name)
		assert.Equal(t, models.DefaultPIN, user.PIN)
		assert.True(t, user.MustResetPIN)
	}

	products := seededProducts(t, services)
	require.Len(t, products, 2)
	assert.Equal(t, "Monster Energy", products[models.ProductTypeMonster].Name)
	assert.True(t, decimal.RequireFromString("7.00").Equal(products[models.ProductTypeMonster].Price))
	assert.Equal(t, "Coca-Cola Zero", products[models.ProductTypeCoke].Name)
	assert.True(t, decimal.RequireFromString("5.00").Equal(products[models.ProductTypeCoke].Price))
}

func TestSQLite_BalanceKeepsPurchasePrice(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	ana := seededUsers(t, services)["Ana"]
	products := seededProducts(t, services)
	coke, monster := products[models.ProductTypeCoke], products[models.ProductTypeMonster]

	_, err := services.ProductService.SetPrice(ctx, monster.ID, decimal.RequireFromString("9.50"))
	require.NoError(t, err)

	_, err = services.LedgerService.RecordPurchase(ctx, ana.ID, coke.ID)
	require.NoError(t, err)
	_, err = services.LedgerService.RecordPurchase(ctx, ana.ID, monster.ID)
	require.NoError(t, err)

	balance, err := services.ReportService.Balance(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("14.5").Equal(balance.Balance), balance.Balance.String())

	_, err = services.ProductService.SetPrice(ctx, monster.ID, decimal.RequireFromString("12"))
	require.NoError(t, err)

	balance, err = services.ReportService.Balance(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("14.5").Equal(balance.Balance), balance.Balance.String())

	debt, err := services.LedgerService.ListUserTransactions(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, debt, 2)
	// newest first
	assert.Equal(t, "Monster Energy", debt[0].ProductName)
	assert.Equal(t, models.ProductTypeMonster, debt[0].ProductType)
	assert.True(t, decimal.RequireFromString("9.5").Equal(debt[0].Price))
	assert.True(t, decimal.RequireFromString("5").Equal(debt[1].Price))
}

func TestSQLite_DecimalAndTimestampRoundTrip(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	carlos := seededUsers(t, services)["Carlos"]
	lemonade, err := services.ProductService.CreateProduct(ctx, models.Product{
		Name:  "Lemonade",
		Price: decimal.RequireFromString("3.35"),
		Type:  models.ProductTypeOther,
	})
	require.NoError(t, err)

	stored, err := services.ProductService.GetProduct(ctx, lemonade.ID)
	require.NoError(t, err)
	assert.Equal(t, "3.35", stored.Price.StringFixed(2))

	before := time.Now().Add(-time.Second)
	recorded, err := services.LedgerService.RecordPurchase(ctx, carlos.ID, lemonade.ID)
	require.NoError(t, err)
	after := time.Now().Add(time.Second)

	listed, err := services.LedgerService.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, recorded.ID, listed[0].ID)
	assert.True(t, decimal.RequireFromString("3.35").Equal(listed[0].Price))
	assert.WithinDuration(t, recorded.Timestamp, listed[0].Timestamp, time.Second)
	assert.True(t, listed[0].Timestamp.After(before) && listed[0].Timestamp.Before(after), listed[0].Timestamp)

	history, err := services.ReportService.UserHistory(ctx, carlos.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Carlos", history[0].UserName)
	assert.Equal(t, "Lemonade", history[0].ProductName)
	assert.True(t, decimal.RequireFromString("3.35").Equal(history[0].Price))
	assert.WithinDuration(t, recorded.Timestamp, history[0].Timestamp, time.Second)
}

func TestSQLite_SettlementKeepsHistory(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	users := seededUsers(t, services)
	ana, carlos := users["Ana"], users["Carlos"]
	coke := seededProducts(t, services)[models.ProductTypeCoke]

	for _, userID := range []int64{ana.ID, ana.ID, carlos.ID} {
		_, err := services.LedgerService.RecordPurchase(ctx, userID, coke.ID)
		require.NoError(t, err)
	}

	history, err := services.ReportService.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)

	settlement, err := services.LedgerService.SettleUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), settlement.Cleared)

	balance, err := services.ReportService.Balance(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())

	history, err = services.ReportService.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	settlement, err = services.LedgerService.SettleAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), settlement.Cleared)
	assert.Nil(t, settlement.UserID)

	history, err = services.ReportService.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	summary, err := services.ReportService.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalItems)
	assert.True(t, summary.TotalRevenue.IsZero())
}

func TestSQLite_CategoriesSurviveProductDeletion(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	carlos := seededUsers(t, services)["Carlos"]
	products := seededProducts(t, services)
	coke, monster := products[models.ProductTypeCoke], products[models.ProductTypeMonster]

	for _, productID := range []int64{monster.ID, monster.ID, coke.ID} {
		_, err := services.LedgerService.RecordPurchase(ctx, carlos.ID, productID)
		require.NoError(t, err)
	}

	require.NoError(t, services.ProductService.DeleteProduct(ctx, monster.ID))

	_, err := services.LedgerService.RecordPurchase(ctx, carlos.ID, monster.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	mix, err := services.ReportService.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryCount{
		{Type: models.ProductTypeMonster, Count: 2},
		{Type: models.ProductTypeCoke, Count: 1},
		{Type: models.ProductTypeOther, Count: 0},
	}, mix)
}

func TestSQLite_PINUniqueIndex(t *testing.T) {
	services, storages := openSQLiteLedger(t)
	ctx := context.Background()

	users := seededUsers(t, services)
	ana, carlos := users["Ana"], users["Carlos"]

	_, err := services.UserService.ResetPIN(ctx, ana.ID, "2468")
	require.NoError(t, err)

	_, err = services.UserService.ResetPIN(ctx, carlos.ID, "2468")
	assert.ErrorIs(t, err, ErrPINTaken)

	// a writer that skips the lookup still hits the partial unique index
	pin := "2468"
	_, err = storages.UserRepository.UpdateUser(ctx, models.UserUpdate{ID: carlos.ID, PIN: &pin})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUniqueViolation)
	assert.ErrorIs(t, mapPINUpdateError(err), ErrPINTaken)

	// the default PIN stays shared
	stranger, err := services.UserService.CreateUser(ctx, "Diego")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPIN, stranger.PIN)
}

func TestSQLite_OrphanedDebtSettlesOnce(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	beatriz := seededUsers(t, services)["Beatriz"]
	coke := seededProducts(t, services)[models.ProductTypeCoke]

	_, err := services.LedgerService.RecordPurchase(ctx, beatriz.ID, coke.ID)
	require.NoError(t, err)

	require.NoError(t, services.UserService.DeleteUser(ctx, beatriz.ID))

	settlement, err := services.LedgerService.SettleUser(ctx, beatriz.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), settlement.Cleared)

	_, err = services.LedgerService.SettleUser(ctx, beatriz.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	history, err := services.ReportService.UserHistory(ctx, beatriz.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLite_MonthsAndExport(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	months, err := services.ReportService.Months(ctx)
	require.NoError(t, err)
	assert.Empty(t, months)

	ana := seededUsers(t, services)["Ana"]
	coke := seededProducts(t, services)[models.ProductTypeCoke]
	_, err = services.LedgerService.RecordPurchase(ctx, ana.ID, coke.ID)
	require.NoError(t, err)

	history, err := services.ReportService.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	month := history[0].Month
	assert.Equal(t, models.MonthKey(history[0].Timestamp, time.UTC), month)

	months, err = services.ReportService.Months(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{month}, months)

	monthHistory, err := services.ReportService.MonthHistory(ctx, month)
	require.NoError(t, err)
	assert.Len(t, monthHistory, 1)

	workbook, err := services.ReportService.ExportMonth(ctx, month)
	require.NoError(t, err)
	assert.NotEmpty(t, workbook)
}

func TestSQLite_DefaultPINRejectedAfterReset(t *testing.T) {
	services, _ := openSQLiteLedger(t)
	ctx := context.Background()

	ana := seededUsers(t, services)["Ana"]

	user, err := services.UserService.Authenticate(ctx, ana.ID, models.DefaultPIN)
	require.NoError(t, err)
	assert.True(t, user.MustResetPIN)

	_, err = services.UserService.ResetPIN(ctx, ana.ID, "1357")
	require.NoError(t, err)

	_, err = services.UserService.Authenticate(ctx, ana.ID, models.DefaultPIN)
	assert.ErrorIs(t, err, ErrWrongPIN)

	user, err = services.UserService.Authenticate(ctx, ana.ID, "1357")
	require.NoError(t, err)
	assert.False(t, user.MustResetPIN)

	user, err = services.UserService.LoginByPIN(ctx, "1357")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, user.ID)
}
