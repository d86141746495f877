package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/internal/validators"
)

// Error taxonomy. Every error returned by a service wraps exactly one of these,
// so the transport layer maps errors to status codes with [errors.Is] alone.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("service unavailable")
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user does not exist", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("%w: product does not exist", ErrNotFound)

	ErrEmptyName            = fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	ErrInvalidPINFormat     = fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidInput)
	ErrDefaultPINNotAllowed = fmt.Errorf("%w: PIN %s is reserved", ErrInvalidInput, "0000")
	ErrNegativePrice        = fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	ErrMissingPrice         = fmt.Errorf("%w: price is required", ErrInvalidInput)
	ErrInvalidMonth         = fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidInput)
	ErrEmptyUpdate          = fmt.Errorf("%w: nothing to update", ErrInvalidInput)

	ErrPINTaken = fmt.Errorf("%w: PIN already in use", ErrConflict)

	ErrWrongPIN                = fmt.Errorf("%w: wrong PIN", ErrUnauthorized)
	ErrWrongAdminPassword      = fmt.Errorf("%w: wrong admin password", ErrUnauthorized)
	ErrTokenIsExpiredOrInvalid = fmt.Errorf("%w: token is expired or invalid", ErrUnauthorized)

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// mapStoreError translates repository failures into the service taxonomy.
// notFound replaces a bare store "not found". Unknown errors are wrapped
// unchanged and surface as internal errors.
func mapStoreError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound) && notFound != nil:
		return fmt.Errorf("%w: %w", notFound, err)
	case errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, store.ErrProductNotFound):
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrTransient):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case errors.Is(err, store.ErrUniqueViolation):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return err
	}
}

var validationErrors = []struct {
	from, to error
}{
	{validators.ErrEmptyName, ErrEmptyName},
	{validators.ErrInvalidPIN, ErrInvalidPINFormat},
	{validators.ErrDefaultPIN, ErrDefaultPINNotAllowed},
	{validators.ErrNegativePrice, ErrNegativePrice},
	{validators.ErrNoFieldsToUpdate, ErrEmptyUpdate},
}

// mapValidationError translates validator failures into the service taxonomy.
// Anything the table does not name is still reported as invalid input.
func mapValidationError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range validationErrors {
		if errors.Is(err, m.from) {
			return m.to
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
