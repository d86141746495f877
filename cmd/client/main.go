package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-drink-ledger/internal/adapter"
	"github.com/MKhiriev/go-drink-ledger/internal/client"
	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewCLILogger("drink-ledger-cli")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if len(args) > 0 && args[0] == "build-info" {
		fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	ledger, err := adapter.NewHTTPLedgerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	app, err := client.NewApp(ledger, cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client app")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, args); err != nil {
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
