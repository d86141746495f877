package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/golang-jwt/jwt/v5"
)

// adminSubject is the "sub" claim of administrator tokens.
const adminSubject = "admin"

// GenerateJWTToken creates a signed HMAC-SHA256 JWT session token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID for user tokens, "admin" for admin tokens
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - role: [models.RoleAdmin] or [models.RoleUser]
//
// A user token needs a positive userID. Returns an error if any parameter is
// empty, zero or unknown.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("drink-ledger", 42, models.RoleUser, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	var subject string
	switch role {
	case models.RoleAdmin:
		subject = adminSubject
		userID = 0
	case models.RoleUser:
		if userID <= 0 {
			return models.Token{}, errors.New("user token needs a user id")
		}
		subject = strconv.FormatInt(userID, 10)
	default:
		return models.Token{}, fmt.Errorf("unknown token role %q", role)
	}

	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, UserID: userID, Role: role}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - A known role; user tokens must carry a numeric subject
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "drink-ledger")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	switch claims.Role {
	case models.RoleAdmin:
		return models.Token{Token: token, SignedString: tokenString, Role: models.RoleAdmin}, nil
	case models.RoleUser:
		userID, err := claims.SubjectUserID()
		if err != nil {
			return models.Token{}, err
		}
		if userID <= 0 {
			return models.Token{}, errors.New("empty subject error")
		}
		return models.Token{Token: token, SignedString: tokenString, UserID: userID, Role: models.RoleUser}, nil
	default:
		return models.Token{}, fmt.Errorf("unknown token role %q", claims.Role)
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
