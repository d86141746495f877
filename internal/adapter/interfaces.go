// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the drink ledger REST API.
//
// [LedgerAdapter] hides the HTTP details from the admin CLI. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] (e.g. [ErrConflict] for 409,
// [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-drink-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// LedgerAdapter talks to a running drink ledger server.
type LedgerAdapter interface {
	// SetToken stores the bearer token attached to privileged requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// AdminLogin exchanges the admin password for a token and stores it.
	AdminLogin(ctx context.Context, password string) (string, error)

	Version(ctx context.Context) (string, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, name string) (models.User, error)

	Balances(ctx context.Context) ([]models.Balance, error)
	Summary(ctx context.Context) (models.Summary, error)
	Months(ctx context.Context) ([]string, error)

	// SettleUser clears the debt of one user. Requires an admin token.
	SettleUser(ctx context.Context, userID int64) (models.Settlement, error)
	// SettleAll clears the debt of every user. Requires an admin token.
	SettleAll(ctx context.Context) (models.Settlement, error)

	// ExportMonth downloads the XLSX workbook of month. Requires an admin token.
	ExportMonth(ctx context.Context, month string) ([]byte, error)
}
