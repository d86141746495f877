package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-drink-ledger/models"
)

var (
	usersTable           = models.User{}.TableName()
	productsTable        = models.Product{}.TableName()
	transactionsTable    = models.Transaction{}.TableName()
	purchaseHistoryTable = models.PurchaseHistory{}.TableName()
)

var (
	userColumns        = []string{"id", "name", "pin", "must_reset_pin"}
	productColumns     = []string{"id", "name", "price", "type", "icon", "border_color"}
	transactionColumns = []string{"id", "user_id", "product_id", "product_name", "product_type", "price", "timestamp"}
	historyColumns     = []string{"id", "user_id", "user_name", "product_name", "price", "timestamp", "month"}
)

// returning builds a RETURNING suffix; both PostgreSQL and SQLite >= 3.35
// support it.
func returning(columns ...string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// users

func buildSelectUsersQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(userColumns...).From(usersTable).OrderBy("id")
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return buildSelectUsersQuery(b).Where(sq.Eq{"id": userID}).ToSql()
}

func buildSelectUsersByPINQuery(b sq.StatementBuilderType, pin string) (string, []any, error) {
	return buildSelectUsersQuery(b).Where(sq.Eq{"pin": pin}).ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("name", "pin", "must_reset_pin").
		Values(user.Name, user.PIN, user.MustResetPIN).
		Suffix(returning(userColumns...)).
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, update models.UserUpdate) (string, []any, error) {
	set := make(map[string]any, 3)
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.PIN != nil {
		set["pin"] = *update.PIN
	}
	if update.MustResetPIN != nil {
		set["must_reset_pin"] = *update.MustResetPIN
	}

	return b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": update.ID}).
		Suffix(returning(userColumns...)).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(usersTable).Where(sq.Eq{"id": userID}).ToSql()
}

// products

func buildSelectProductsQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(productColumns...).From(productsTable).OrderBy("id")
}

func buildSelectProductByIDQuery(b sq.StatementBuilderType, productID int64) (string, []any, error) {
	return buildSelectProductsQuery(b).Where(sq.Eq{"id": productID}).ToSql()
}

func buildInsertProductQuery(b sq.StatementBuilderType, product models.Product) (string, []any, error) {
	return b.Insert(productsTable).
		Columns("name", "price", "type", "icon", "border_color").
		Values(product.Name, product.Price, string(product.Type), product.Icon, product.BorderColor).
		Suffix(returning(productColumns...)).
		ToSql()
}

func buildUpdateProductQuery(b sq.StatementBuilderType, update models.ProductUpdate) (string, []any, error) {
	set := make(map[string]any, 5)
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Type != nil {
		set["type"] = string(*update.Type)
	}
	if update.Icon != nil {
		set["icon"] = *update.Icon
	}
	if update.BorderColor != nil {
		set["border_color"] = *update.BorderColor
	}

	return b.Update(productsTable).
		SetMap(set).
		Where(sq.Eq{"id": update.ID}).
		Suffix(returning(productColumns...)).
		ToSql()
}

func buildDeleteProductQuery(b sq.StatementBuilderType, productID int64) (string, []any, error) {
	return b.Delete(productsTable).Where(sq.Eq{"id": productID}).ToSql()
}

// transactions

func buildSelectTransactionsQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(transactionColumns...).From(transactionsTable).OrderBy("timestamp DESC", "id DESC")
}

func buildSelectAllTransactionsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return buildSelectTransactionsQuery(b).ToSql()
}

func buildSelectUserTransactionsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return buildSelectTransactionsQuery(b).Where(sq.Eq{"user_id": userID}).ToSql()
}

func buildInsertTransactionQuery(b sq.StatementBuilderType, t models.Transaction) (string, []any, error) {
	return b.Insert(transactionsTable).
		Columns("user_id", "product_id", "product_name", "product_type", "price", "timestamp").
		Values(t.UserID, t.ProductID, t.ProductName, string(t.ProductType), t.Price, t.Timestamp).
		Suffix(returning("id")).
		ToSql()
}

// buildDeleteTransactionsQuery deletes the debt of one user or, when userID
// is nil, of everyone.
func buildDeleteTransactionsQuery(b sq.StatementBuilderType, userID *int64) (string, []any, error) {
	query := b.Delete(transactionsTable)
	if userID != nil {
		query = query.Where(sq.Eq{"user_id": *userID})
	}
	return query.ToSql()
}

// purchase history

func buildSelectHistoryQuery(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(historyColumns...).From(purchaseHistoryTable).OrderBy("timestamp DESC", "id DESC")
}

func buildSelectAllHistoryQuery(b sq.StatementBuilderType) (string, []any, error) {
	return buildSelectHistoryQuery(b).ToSql()
}

func buildSelectUserHistoryQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return buildSelectHistoryQuery(b).Where(sq.Eq{"user_id": userID}).ToSql()
}

func buildSelectMonthHistoryQuery(b sq.StatementBuilderType, month string) (string, []any, error) {
	return buildSelectHistoryQuery(b).Where(sq.Eq{"month": month}).ToSql()
}

func buildSelectHistoryMonthsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("month").Distinct().From(purchaseHistoryTable).OrderBy("month DESC").ToSql()
}

func buildInsertHistoryQuery(b sq.StatementBuilderType, h models.PurchaseHistory) (string, []any, error) {
	return b.Insert(purchaseHistoryTable).
		Columns("user_id", "user_name", "product_name", "price", "timestamp", "month").
		Values(h.UserID, h.UserName, h.ProductName, h.Price, h.Timestamp, h.Month).
		Suffix(returning("id")).
		ToSql()
}
