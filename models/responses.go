// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// PINLoginResponse is returned by POST /api/users/login.
// On failure only Success and Message are set.
type PINLoginResponse struct {
	Success      bool   `json:"success"`
	User         *User  `json:"user,omitempty"`
	MustResetPIN *bool  `json:"mustResetPin,omitempty"`
	Token        string `json:"token,omitempty"`
	Message      string `json:"message,omitempty"`
}

// AdminLoginResponse is returned by POST /api/admin/login.
type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// BalanceResponse is returned by GET /api/users/{id}/balance.
type BalanceResponse struct {
	UserID  int64           `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
