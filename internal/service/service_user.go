// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/internal/validators"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// userService is the concrete implementation of UserService.
// PINs are compared in plaintext; the registry is a low-stakes office tool.
type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

// NewUserService constructs a UserService over the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewLedgerValidator(),
		logger:         logger,
	}
}

// CreateUser registers a new user with the shared default PIN. The user is
// asked to replace it on first login.
//
// Returns ErrEmptyName if name is blank after trimming.
func (u *userService) CreateUser(ctx context.Context, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	newUser := models.User{
		Name:         strings.TrimSpace(name),
		PIN:          models.DefaultPIN,
		MustResetPIN: true,
	}
	if err := u.validator.Validate(ctx, newUser); err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("invalid user")
		return models.User{}, mapValidationError(err)
	}

	user, err := u.userRepository.CreateUser(ctx, newUser)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Str("name", newUser.Name).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", mapStoreError(err, nil))
	}

	return user, nil
}

func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, mapStoreError(err, ErrUserNotFound)
	}

	return user, nil
}

// ListUsers returns every user ordered by id.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, mapStoreError(err, nil)
	}

	return users, nil
}

func (u *userService) RenameUser(ctx context.Context, userID int64, name string) (models.User, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	update := models.UserUpdate{ID: userID, Name: &name}
	if err := u.validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*userService.RenameUser").Int64("user_id", userID).Msg("invalid user name")
		return models.User{}, mapValidationError(err)
	}

	user, err := u.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*userService.RenameUser").Int64("user_id", userID).Msg("rename failed")
		return models.User{}, mapStoreError(err, ErrUserNotFound)
	}

	return user, nil
}

// DeleteUser removes the user record only. Debt and history rows of the
// user stay in place.
func (u *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := u.userRepository.DeleteUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.DeleteUser").Int64("user_id", userID).Msg("delete failed")
		return mapStoreError(err, ErrUserNotFound)
	}

	return nil
}

// Authenticate returns the user if pin matches its PIN exactly. An unknown
// user yields ErrWrongPIN as well, so callers cannot probe ids.
func (u *userService) Authenticate(ctx context.Context, userID int64, pin string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.GetUser(ctx, userID)
	if err != nil {
		mapped := mapStoreError(err, ErrWrongPIN)
		log.Err(mapped).Str("func", "*userService.Authenticate").Int64("user_id", userID).Msg("authentication failed")
		return models.User{}, mapped
	}

	if user.PIN != pin {
		log.Warn().Str("func", "*userService.Authenticate").Int64("user_id", userID).Msg("wrong PIN")
		return models.User{}, ErrWrongPIN
	}

	return user, nil
}

// LoginByPIN returns the only user holding pin. Nobody holding it, or more
// than one holder (the shared default PIN), is ErrWrongPIN.
func (u *userService) LoginByPIN(ctx context.Context, pin string) (models.User, error) {
	log := logger.FromContext(ctx)

	// a malformed PIN cannot belong to anybody
	if err := u.validator.Validate(ctx, models.User{PIN: pin}, validators.FieldPIN); err != nil {
		return models.User{}, ErrWrongPIN
	}

	users, err := u.userRepository.FindUsersByPIN(ctx, pin)
	if err != nil {
		log.Err(err).Str("func", "*userService.LoginByPIN").Msg("PIN lookup failed")
		return models.User{}, mapStoreError(err, nil)
	}

	if len(users) != 1 {
		log.Warn().Str("func", "*userService.LoginByPIN").Int("matches", len(users)).Msg("PIN does not identify a single user")
		return models.User{}, ErrWrongPIN
	}

	return users[0], nil
}

// ResetPIN replaces the PIN of userID and clears MustResetPIN.
//
// Returns:
//   - ErrInvalidPINFormat unless newPIN is exactly four digits;
//   - ErrDefaultPINNotAllowed for the shared default PIN;
//   - ErrPINTaken if another user already holds newPIN;
//   - ErrUserNotFound if the user does not exist.
func (u *userService) ResetPIN(ctx context.Context, userID int64, newPIN string) (models.User, error) {
	log := logger.FromContext(ctx)

	mustReset := false
	update := models.UserUpdate{
		ID:           userID,
		PIN:          &newPIN,
		MustResetPIN: &mustReset,
	}
	if err := u.validator.Validate(ctx, update, validators.FieldPIN); err != nil {
		return models.User{}, mapValidationError(err)
	}

	if _, err := u.userRepository.GetUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "*userService.ResetPIN").Int64("user_id", userID).Msg("user lookup failed")
		return models.User{}, mapStoreError(err, ErrUserNotFound)
	}

	holders, err := u.userRepository.FindUsersByPIN(ctx, newPIN)
	if err != nil {
		log.Err(err).Str("func", "*userService.ResetPIN").Msg("PIN lookup failed")
		return models.User{}, mapStoreError(err, nil)
	}
	for _, holder := range holders {
		if holder.ID != userID {
			log.Warn().Str("func", "*userService.ResetPIN").Int64("user_id", userID).Msg("PIN already taken")
			return models.User{}, ErrPINTaken
		}
	}

	user, err := u.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*userService.ResetPIN").Int64("user_id", userID).Msg("PIN update failed")
		// the unique index catches a concurrent reset to the same PIN
		return models.User{}, mapPINUpdateError(err)
	}

	return user, nil
}

func mapPINUpdateError(err error) error {
	mapped := mapStoreError(err, ErrUserNotFound)
	if errors.Is(mapped, ErrConflict) {
		return fmt.Errorf("%w: %w", ErrPINTaken, err)
	}
	return mapped
}
