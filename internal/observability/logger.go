package observability

import (
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/climate-insights-service/internal/config"
)

// ServiceName is attached to every log record.
const ServiceName = "climate-insights"

// NewLogger builds the process logger from cfg and installs it as the slog
// default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", ServiceName)
	slog.SetDefault(logger)
	return logger
}
