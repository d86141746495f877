package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// authService is the concrete implementation of AuthService.
// It checks the shared admin secret and manages the JWT session lifecycle.
type authService struct {
	// adminPassword is the configured administrator secret.
	adminPassword string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		adminPassword: cfg.AdminPassword,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// AdminLogin compares password with the configured admin secret and issues
// an admin token on success.
//
// Returns ErrWrongAdminPassword on mismatch or ErrTokenCreationFailed if the
// token cannot be signed.
func (a *authService) AdminLogin(ctx context.Context, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if a.adminPassword == "" || subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword)) != 1 {
		log.Warn().Str("func", "*authService.AdminLogin").Msg("wrong admin password")
		return models.Token{}, ErrWrongAdminPassword
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, 0, models.RoleAdmin, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.AdminLogin").Msg("error creating admin token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// CreateUserToken issues a user token whose subject is user.ID.
func (a *authService) CreateUserToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, models.RoleUser, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateUserToken").Int64("user_id", user.ID).Msg("error creating user token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, unknown role)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
