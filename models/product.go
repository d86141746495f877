// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// ProductType is the reporting category of a product.
// The set is closed; anything unknown is stored as [ProductTypeOther].
type ProductType string

const (
	ProductTypeMonster ProductType = "monster"
	ProductTypeCoke    ProductType = "coke"
	ProductTypeOther   ProductType = "other"
)

// ProductTypes lists every known category in display order.
var ProductTypes = []ProductType{ProductTypeMonster, ProductTypeCoke, ProductTypeOther}

// Normalize maps unknown or empty categories to [ProductTypeOther].
func (t ProductType) Normalize() ProductType {
	switch t {
	case ProductTypeMonster, ProductTypeCoke, ProductTypeOther:
		return t
	default:
		return ProductTypeOther
	}
}

// Product is a catalog entry that can be purchased.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Type  ProductType     `json:"type"`

	// Icon and BorderColor are display hints for the kiosk UI only.
	Icon        *string `json:"icon,omitempty"`
	BorderColor *string `json:"borderColor,omitempty"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// ProductUpdate represents a partial update of a catalog entry.
// Only non-nil fields are written.
type ProductUpdate struct {
	ID int64 `json:"-"`

	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Type        *ProductType     `json:"type,omitempty"`
	Icon        *string          `json:"icon,omitempty"`
	BorderColor *string          `json:"borderColor,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Price == nil && u.Type == nil && u.Icon == nil && u.BorderColor == nil
}
