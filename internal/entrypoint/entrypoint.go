package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/cache"
	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/covers"
	"github.com/mrlokans/library/internal/database"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/metadata"
	"github.com/mrlokans/library/internal/metrics"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired components of a running server.
type App struct {
	Router   *gin.Engine
	Database *database.Database
	Service  *catalog.Service

	redis *cache.RedisCoverCache
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.Database != nil {
		errs = append(errs, a.Database.Close())
	}
	return errors.Join(errs...)
}

// NewCoverLookup builds the provider chain named in cfg.Providers. Unknown
// provider names are skipped with a warning.
func NewCoverLookup(cfg config.Covers) metadata.Chain {
	var chain metadata.Chain
	for _, name := range cfg.Providers {
		switch name {
		case "google":
			chain = append(chain, metadata.NewGoogleBooksClient(cfg.GoogleBooksURL, cfg.GoogleBooksAPIKey, cfg.LookupTimeout, cfg.RequestsPerSecond))
		case "openlibrary":
			chain = append(chain, metadata.NewOpenLibraryClient(cfg.OpenLibraryURL, cfg.LookupTimeout, cfg.RequestsPerSecond))
		default:
			slog.Warn("Unknown cover provider, skipping", "provider", name)
		}
	}
	return chain
}

// Build wires configuration into a ready-to-serve App.
func Build(cfg *config.Config, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path,
		database.WithBusyTimeout(cfg.Database.BusyTimeout),
		database.WithLogLevel(cfg.Database.LogLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	app := &App{Database: db}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	healthChecks := map[string]http_controllers.Pinger{"database": db}

	// A nil lookup stores every book without a cover.
	var lookup catalog.CoverLookup
	if chain := NewCoverLookup(cfg.Covers); len(chain) > 0 {
		lookup = chain
		if cfg.Redis.URL != "" {
			app.redis = cache.NewRedisCoverCache(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
			lookup = metadata.NewCachedLookup(chain, app.redis, m)
			healthChecks["redis"] = app.redis
			slog.Info("Cover URL cache enabled", "redis", cfg.Redis.URL)
		}
	}

	service := catalog.NewService(db, lookup)
	service.SetLookupTimeout(cfg.Covers.LookupTimeout)
	service.SetMetrics(m)
	app.Service = service

	routerCfg := http_controllers.RouterConfig{
		Catalog:       service,
		Books:         service,
		HealthChecks:  healthChecks,
		SecureCookies: cfg.Sessions.SecureCookies,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Metrics:       m,
		Version:       version,
	}

	if cfg.Covers.CacheDir != "" {
		coverCache, err := covers.NewCache(cfg.Covers.CacheDir, 0)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create cover cache: %w", err)
		}
		service.SetCoverInvalidator(coverCache)
		routerCfg.CoverCache = coverCache
	}

	if cfg.Sessions.Enabled {
		sqlDB, err := db.SQLDB()
		if err != nil {
			app.Close()
			return nil, err
		}
		sessions, err := http_controllers.NewSessionManager(sqlDB, cfg.Sessions.Lifetime, cfg.Sessions.SecureCookies)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("create session manager: %w", err)
		}
		routerCfg.Sessions = sessions
	}

	if cfg.CSRF.Secret != "" {
		routerCfg.CSRFSecret = []byte(cfg.CSRF.Secret)
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Router = router

	return app, nil
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	slog.Info("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logging.Setup(cfg.Logging.Level)
	gin.SetMode(gin.ReleaseMode)
	slog.Info("Starting Library", "version", version)

	app, err := Build(cfg, version)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		os.Exit(1)
	}

	Serve(app.Router, cfg, func(ctx context.Context) {
		if err := app.Close(); err != nil {
			slog.Warn("Error while closing resources", "error", err)
		}
	})
}
