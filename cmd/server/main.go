package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/handler"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/metrics"
	"github.com/MKhiriev/go-drink-ledger/internal/server"
	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
	"github.com/MKhiriev/go-drink-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("drink-ledger-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("time_zone", cfg.App.TimeZone).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	registry := metrics.New()

	services, err := service.NewServices(storages, cfg.App, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, registry, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
