// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-drink-ledger/models"
)

// Field names accepted by LedgerValidator.Validate.
const (
	FieldName  = "name"
	FieldPIN   = "pin"
	FieldPrice = "price"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// LedgerValidator validates users, products and their partial updates.
type LedgerValidator struct{}

func NewLedgerValidator() Validator {
	return &LedgerValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// of models.User, models.UserUpdate, models.Product and
// models.ProductUpdate are supported.
//
// Without fields, User and Product check every field; the update types
// check every field that is set and reject an update that sets nothing.
func (v *LedgerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.UserUpdate:
		return v.validateUserUpdate(value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(*value, fields...)

	case models.Product:
		return v.validateProduct(value, fields...)
	case *models.Product:
		return v.validateProduct(*value, fields...)

	case models.ProductUpdate:
		return v.validateProductUpdate(value, fields...)
	case *models.ProductUpdate:
		return v.validateProductUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *LedgerValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPIN}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(user.Name); err != nil {
				return err
			}
		case FieldPIN:
			// a freshly created user holds the default PIN
			if !pinPattern.MatchString(user.PIN) {
				return ErrInvalidPIN
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateUserUpdate(update models.UserUpdate, fields ...string) error {
	if len(fields) == 0 {
		if update.Name == nil && update.PIN == nil && update.MustResetPIN == nil {
			return ErrNoFieldsToUpdate
		}
		fields = []string{FieldName, FieldPIN}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil {
				if err := validateName(*update.Name); err != nil {
					return err
				}
			}
		case FieldPIN:
			if update.PIN != nil {
				if err := validateChosenPIN(*update.PIN); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateProduct(product models.Product, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(product.Name); err != nil {
				return err
			}
		case FieldPrice:
			if product.Price.IsNegative() {
				return ErrNegativePrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *LedgerValidator) validateProductUpdate(update models.ProductUpdate, fields ...string) error {
	if len(fields) == 0 {
		if update.IsEmpty() {
			return ErrNoFieldsToUpdate
		}
		fields = []string{FieldName, FieldPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil {
				if err := validateName(*update.Name); err != nil {
					return err
				}
			}
		case FieldPrice:
			if update.Price != nil && update.Price.IsNegative() {
				return ErrNegativePrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// validateChosenPIN checks a PIN picked by the user. The shared default
// PIN is well-formed but never a valid choice.
func validateChosenPIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPIN
	}
	if pin == models.DefaultPIN {
		return ErrDefaultPIN
	}
	return nil
}
