package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyName        = errors.New("name is required")
	ErrInvalidPIN       = errors.New("PIN must be exactly 4 digits")
	ErrDefaultPIN       = errors.New("default PIN cannot be chosen")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
