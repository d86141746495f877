// Package http implements the HTTP transport layer of the drink ledger.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, metrics and compression
// are handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the parsed token in the
// request context (see [utils.GetTokenFromContext]). Missing, malformed,
// expired or foreign tokens are answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Msg("malformed authorization header")
			writeError(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithToken(ctx, token)))
	})
}

// adminOnly lets through requests authenticated with an admin token. It must
// run after [Handler.auth].
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := utils.GetTokenFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}
		if !token.IsAdmin() {
			writeError(w, r, ErrAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
