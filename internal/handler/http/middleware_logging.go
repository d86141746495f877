package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := wrapResponseWriter(w)

		next.ServeHTTP(lw, r)

		event := log.Info()
		if lw.statusOrOK() >= http.StatusInternalServerError {
			event = log.Error()
		}

		var route string
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		event.
			Str("uri", r.RequestURI).
			Str("route", route).
			Str("method", r.Method).
			Int("status", lw.statusOrOK()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
