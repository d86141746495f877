package service

import (
	"context"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// UserService manages the identity registry and PIN authentication.
type UserService interface {
	CreateUser(ctx context.Context, name string) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	RenameUser(ctx context.Context, userID int64, name string) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	// Authenticate checks pin against the PIN of userID.
	Authenticate(ctx context.Context, userID int64, pin string) (models.User, error)
	// LoginByPIN finds the single user holding pin.
	LoginByPIN(ctx context.Context, pin string) (models.User, error)
	ResetPIN(ctx context.Context, userID int64, newPIN string) (models.User, error)
}

// ProductService manages the catalog.
type ProductService interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProduct(ctx context.Context, productID int64) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error)
	SetPrice(ctx context.Context, productID int64, price decimal.Decimal) (models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

// LedgerService records consumption and clears debt.
type LedgerService interface {
	RecordPurchase(ctx context.Context, userID, productID int64) (models.Transaction, error)
	SettleUser(ctx context.Context, userID int64) (models.Settlement, error)
	SettleAll(ctx context.Context) (models.Settlement, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListUserTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
}

// ReportService derives balances and dashboard aggregates from stored rows.
type ReportService interface {
	Balance(ctx context.Context, userID int64) (models.BalanceResponse, error)
	Balances(ctx context.Context) ([]models.Balance, error)
	History(ctx context.Context) ([]models.PurchaseHistory, error)
	UserHistory(ctx context.Context, userID int64) ([]models.PurchaseHistory, error)
	Months(ctx context.Context) ([]string, error)
	MonthHistory(ctx context.Context, month string) ([]models.PurchaseHistory, error)
	Ranking(ctx context.Context, n int) ([]models.RankingEntry, error)
	Categories(ctx context.Context) ([]models.CategoryCount, error)
	Hours(ctx context.Context) (models.HourlyHistogram, error)
	Summary(ctx context.Context) (models.Summary, error)
	ExportMonth(ctx context.Context, month string) ([]byte, error)
}

// AuthService issues and verifies session tokens.
type AuthService interface {
	AdminLogin(ctx context.Context, password string) (models.Token, error)
	CreateUserToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// LedgerMetrics receives business events of the ledger.
type LedgerMetrics interface {
	ObservePurchase(productType models.ProductType, price decimal.Decimal)
	ObserveSettlement(cleared int64)
}
