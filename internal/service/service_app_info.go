package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
)

// appInfoService answers GET /api/version, which the kiosk footer and the
// admin CLI `version` command display.
type appInfoService struct {
	version string
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when the configured
// version is blank. Surrounding whitespace (a trailing newline from a
// VERSION file, say) is dropped.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		logger.Error().Str("func", "NewAppInfoService").Msg("app version is not configured")
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("func", "NewAppInfoService").Str("version", version).Msg("app info service created")
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
