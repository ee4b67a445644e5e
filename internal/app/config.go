package app

import (
	"github.com/lcamargo/catalog-backend/internal/platform/envutil"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type Config struct {
	Addr           string
	LogMode        string
	MetricsEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:           ":" + envutil.Str("PORT", "8080"),
		LogMode:        envutil.Str("LOG_MODE", "development"),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
	}
	log.Info("Config loaded", "addr", cfg.Addr, "metrics_enabled", cfg.MetricsEnabled)
	return cfg
}
