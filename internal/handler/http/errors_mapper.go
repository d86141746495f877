package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrNotFound:     http.StatusNotFound,
	service.ErrInvalidInput: http.StatusBadRequest,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrConflict:     http.StatusConflict,
	service.ErrForbidden:    http.StatusForbidden,
	service.ErrUnavailable:  http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status and a
// {"message": ...} body. Internal errors never leak their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Str("func", "writeError").Msg("unexpected error")
		message = ErrInternalResponse.Error()
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request failed")
	}

	if _, writeErr := utils.WriteError(w, message, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}

// writeJSON answers with data and logs encoding failures.
func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
