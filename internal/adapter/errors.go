package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")

	ErrEmptyBaseURL = errors.New("empty server address")
	ErrNoToken      = errors.New("admin token is not set, log in first")
)
