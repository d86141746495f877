// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// HoursInDay is the number of buckets of an [HourlyHistogram].
const HoursInDay = 24

// Balance is the outstanding debt of one user.
type Balance struct {
	UserID   int64           `json:"userId"`
	UserName string          `json:"userName,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
	Items    int             `json:"items"`
}

// RankingEntry is one row of the consumption ranking.
type RankingEntry struct {
	UserID int64           `json:"userId"`
	Name   string          `json:"name"`
	Count  int             `json:"count"`
	Spent  decimal.Decimal `json:"spent"`
}

// CategoryCount is the number of purchases of one product category.
type CategoryCount struct {
	Type  ProductType `json:"type"`
	Count int         `json:"count"`
}

// HourlyHistogram counts purchases per local hour of day.
type HourlyHistogram [HoursInDay]int

// Summary holds the dashboard totals of the current (unsettled) cycle.
type Summary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalItems   int             `json:"totalItems"`
}
