package store

import (
	"context"

	"github.com/MKhiriev/go-drink-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists the identity registry.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUsersByPIN(ctx context.Context, pin string) ([]models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// ProductRepository persists the catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// LedgerRepository persists unsettled debt. RecordPurchase also appends the
// matching purchase history row in the same database transaction.
type LedgerRepository interface {
	RecordPurchase(ctx context.Context, purchase models.Purchase) (models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListUserTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
	DeleteUserTransactions(ctx context.Context, userID int64) (int64, error)
	DeleteAllTransactions(ctx context.Context) (int64, error)
}

// HistoryRepository reads the permanent purchase audit trail.
type HistoryRepository interface {
	ListHistory(ctx context.Context) ([]models.PurchaseHistory, error)
	ListUserHistory(ctx context.Context, userID int64) ([]models.PurchaseHistory, error)
	ListMonthHistory(ctx context.Context, month string) ([]models.PurchaseHistory, error)
	ListMonths(ctx context.Context) ([]string, error)
}
