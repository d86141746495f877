// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one unit of unsettled consumption (a debt entry).
//
// ProductName, Price and ProductType are frozen copies of the catalog entry
// taken at purchase time, so later catalog edits never change past debt.
// Transactions are immutable; the only mutation is bulk deletion on
// settlement.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	ProductType ProductType     `json:"productType"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Transaction model.
func (t Transaction) TableName() string {
	return "transactions"
}

// PurchaseRequest is the body of POST /api/transactions.
//
// ProductName and Price are accepted for compatibility with older kiosk
// clients but ignored: the catalog is the only source of the frozen values.
type PurchaseRequest struct {
	UserID      int64            `json:"userId"`
	ProductID   int64            `json:"productId"`
	ProductName string           `json:"productName,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Purchase is a fully resolved purchase event handed to the ledger storage.
type Purchase struct {
	UserID    int64
	ProductID int64
	At        time.Time
	Month     string
}

// Settlement reports the outcome of clearing debt.
type Settlement struct {
	// UserID is nil when every user was settled at once.
	UserID  *int64 `json:"userId,omitempty"`
	Cleared int64  `json:"cleared"`
}
