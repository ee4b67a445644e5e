package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/lcamargo/catalog-backend/internal/data/db"
	httpx "github.com/lcamargo/catalog-backend/internal/http"
	"github.com/lcamargo/catalog-backend/internal/observability"
	"github.com/lcamargo/catalog-backend/internal/platform/gcs"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpx.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init gcs bucket: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, bucket, metrics)
	handlerset := wireHandlers(log, serviceset)

	server := httpx.NewServer(httpx.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		CategoryHandler:   handlerset.Category,
		GenreHandler:      handlerset.Genre,
		CastMemberHandler: handlerset.CastMember,
		VideoHandler:      handlerset.Video,
		HealthHandler:     handlerset.Health,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Metrics:  metrics,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.Addr)
	return a.Server.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
