package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the capability carried by a session token.
type Role string

const (
	// RoleAdmin grants catalog, registry and settlement operations.
	RoleAdmin Role = "admin"
	// RoleUser grants self-service operations on the subject's own account.
	RoleUser Role = "user"
)

// Claims is the JWT claim set of a session token.
type Claims struct {
	jwt.RegisteredClaims

	Role Role `json:"role"`
}

// Token wraps a JWT session token.
//
// SignedString holds the compact serialized form ready to be sent to the
// client; UserID and Role are parsed copies of the claims.
type Token struct {
	// Token is the underlying JWT token.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the subject of a user token; zero for admin tokens.
	UserID int64 `json:"-"`

	Role Role `json:"-"`
}

// IsAdmin reports whether the token grants administrative access.
func (t Token) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// CanActOn reports whether the token may modify the account of userID.
func (t Token) CanActOn(userID int64) bool {
	return t.IsAdmin() || (t.Role == RoleUser && t.UserID == userID)
}

// SubjectUserID parses the "sub" claim of c as a user ID.
func (c *Claims) SubjectUserID() (int64, error) {
	if c.Subject == "" {
		return 0, nil
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting token subject to user id: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
