package service

import (
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/store"
)

type Services struct {
	UserService    UserService
	ProductService ProductService
	LedgerService  LedgerService
	ReportService  ReportService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices wires every service over storages. metrics may be nil.
func NewServices(storages *store.Storages, cfg config.App, metrics LedgerMetrics, logger *logger.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("error resolving business time zone: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		UserService:    NewUserService(storages.UserRepository, logger),
		ProductService: NewProductService(storages.ProductRepository, logger),
		LedgerService:  NewLedgerService(storages.LedgerRepository, storages.UserRepository, metrics, loc, logger),
		ReportService:  NewReportService(storages, loc, logger),
		AuthService:    NewAuthService(cfg, logger),
		AppInfoService: appInfoService,
	}, nil
}
