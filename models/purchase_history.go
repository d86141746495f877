// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the time layout of a month key ("2025-01").
const MonthLayout = "2006-01"

// PurchaseHistory is the permanent audit record of a purchase.
// It is written together with the matching [Transaction] and is never
// removed by settlement.
type PurchaseHistory struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	UserName    string          `json:"userName"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
	Month       string          `json:"month"`
}

// TableName returns the name of the database table
// associated with the PurchaseHistory model.
func (h PurchaseHistory) TableName() string {
	return "purchase_history"
}

// MonthKey returns the "YYYY-MM" bucket of t in loc.
// A nil loc means UTC.
func MonthKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(MonthLayout)
}

// ParseMonthKey validates a "YYYY-MM" month key.
func ParseMonthKey(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil || t.Format(MonthLayout) != month {
		return time.Time{}, fmt.Errorf("month %q is not in YYYY-MM format", month)
	}
	return t, nil
}
