package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/models"
)

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.AdminLogin(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			logger.FromRequest(r).Warn().Msg("failed admin login")
			writeJSON(w, r, models.AdminLoginResponse{Success: false, Message: "invalid password"}, http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.AdminLoginResponse{Success: true, Token: token.SignedString}, http.StatusOK)
}

// pinLogin authenticates a kiosk user. With userId the PIN is checked against
// that user only, which is the only way to log in with the shared default PIN.
func (h *Handler) pinLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PINLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		user models.User
		err  error
	)
	if req.UserID != nil {
		user, err = h.services.UserService.Authenticate(ctx, *req.UserID, req.PIN)
	} else {
		user, err = h.services.UserService.LoginByPIN(ctx, req.PIN)
	}
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			log.Warn().Err(err).Msg("failed PIN login")
			writeJSON(w, r, models.PINLoginResponse{Success: false, Message: "invalid PIN"}, http.StatusUnauthorized)
			return
		}
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateUserToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.ID).Msg("user logged in")

	mustReset := user.MustResetPIN
	writeJSON(w, r, models.PINLoginResponse{
		Success:      true,
		User:         &user,
		MustResetPIN: &mustReset,
		Token:        token.SignedString,
	}, http.StatusOK)
}
