package handler

import (
	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/handler/http"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds a handler for every configured transport. metrics may
// be nil.
func NewHandlers(services *service.Services, metrics http.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, metrics, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
