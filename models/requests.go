package models

import "github.com/shopspring/decimal"

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// RenameUserRequest is the body of PATCH /api/users/{id}.
type RenameUserRequest struct {
	Name string `json:"name"`
}

// PINLoginRequest is the body of POST /api/users/login.
// UserID is required only while the PIN is still the shared default.
type PINLoginRequest struct {
	PIN    string `json:"pin"`
	UserID *int64 `json:"userId,omitempty"`
}

// ResetPINRequest is the body of POST /api/users/{id}/reset-pin.
type ResetPINRequest struct {
	NewPIN string `json:"newPin"`
}

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// SetPriceRequest is the body of PATCH /api/products/{id}/price.
type SetPriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Type        ProductType      `json:"type"`
	Icon        *string          `json:"icon,omitempty"`
	BorderColor *string          `json:"borderColor,omitempty"`
}

// Product converts the request into a catalog entry. A missing price is zero.
func (r CreateProductRequest) Product() Product {
	product := Product{
		Name:        r.Name,
		Type:        r.Type,
		Icon:        r.Icon,
		BorderColor: r.BorderColor,
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	return product
}
