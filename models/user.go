// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DefaultPIN is the PIN every user starts with. It is shared by all users
// until they pick their own, so it never identifies anybody on its own.
const DefaultPIN = "0000"

// User represents a registered consumer of the shared fridge.
type User struct {
	// ID is the server-assigned unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name shown on the kiosk. Never empty.
	Name string `json:"name"`

	// PIN is the 4-digit secret used for PIN login. It is compared in
	// plaintext and is never serialized to clients.
	PIN string `json:"-"`

	// MustResetPIN stays true until the user replaces the default PIN.
	MustResetPIN bool `json:"mustResetPin"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of a user record.
// Nil fields are left untouched.
type UserUpdate struct {
	ID int64 `json:"-"`

	Name *string `json:"name,omitempty"`

	PIN          *string `json:"-"`
	MustResetPIN *bool   `json:"-"`
}
