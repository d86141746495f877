package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/service"
)

// Metrics is the part of the metrics registry the transport layer needs.
type Metrics interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
	Handler() http.Handler
}

type Handler struct {
	services *service.Services
	metrics  Metrics

	requestTimeout time.Duration
	metricsPath    string

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. metrics may be nil, in which case no
// request metrics are recorded and no exposition route is registered.
func NewHandler(services *service.Services, metrics Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        metrics,
		requestTimeout: cfg.Server.RequestTimeout,
		metricsPath:    cfg.Metrics.Path,
		logger:         logger,
	}
}
