// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/service"
)

// Sentinel errors of the transport layer. Each wraps a member of the service
// taxonomy so [statusFromError] maps it like any service error.
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = fmt.Errorf("%w: empty `Authorization` header", service.ErrUnauthorized)

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = fmt.Errorf("%w: invalid `Authorization` header", service.ErrUnauthorized)

	// ErrAdminOnly is returned when a valid user token hits an admin route.
	ErrAdminOnly = fmt.Errorf("%w: admin token required", service.ErrForbidden)

	// ErrNotYourAccount is returned when a user token acts on another user.
	ErrNotYourAccount = fmt.Errorf("%w: token does not grant access to this user", service.ErrForbidden)

	ErrInvalidJSON      = fmt.Errorf("%w: invalid JSON was passed", service.ErrInvalidInput)
	ErrInvalidID        = fmt.Errorf("%w: id must be a positive integer", service.ErrInvalidInput)
	ErrInvalidLimit     = fmt.Errorf("%w: limit must be an integer", service.ErrInvalidInput)
	ErrMissingPurchase  = fmt.Errorf("%w: userId and productId are required", service.ErrInvalidInput)
	ErrRouteNotFound    = fmt.Errorf("%w: route", service.ErrNotFound)
	ErrInternalResponse = errors.New("internal server error")
)
