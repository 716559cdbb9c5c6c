// Package main is the entry point for the Coursebook API server.
// Coursebook is a small course catalog service with basic-auth protected
// mutations backed by a relational datastore.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/coursebook/internal/auth"
	"github.com/prn-tf/coursebook/internal/cache/memory"
	rediscache "github.com/prn-tf/coursebook/internal/cache/redis"
	"github.com/prn-tf/coursebook/internal/config"
	"github.com/prn-tf/coursebook/internal/handler"
	"github.com/prn-tf/coursebook/internal/metrics"
	"github.com/prn-tf/coursebook/internal/repository"
	"github.com/prn-tf/coursebook/internal/repository/postgres"
	"github.com/prn-tf/coursebook/internal/repository/sqlite"
	"github.com/prn-tf/coursebook/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Str("driver", cfg.Database.Driver).
		Msg("starting coursebook server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Datastore: connect, verify, synchronize schema.
	repos, dbHealth, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer dbHealth.Close()

	// Course read-cache: Redis when enabled, in-memory otherwise.
	courseRepo := repos.Course
	if cfg.Cache.Enabled {
		cache, cleanup, err := openCache(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("cache init failed: %w", err)
		}
		defer cleanup()
		courseRepo = repository.NewCachedCourseRepository(courseRepo, cache, cfg.Cache.TTL, logger)
	}

	// Services.
	userService := service.NewUserService(repos.User, logger)
	courseService := service.NewCourseService(courseRepo, logger)

	// HTTP surface.
	gate := auth.NewGate(userService, logger)
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	router := handler.NewRouter(handler.RouterConfig{
		UserHandler:    handler.NewUserHandler(userService, gate, logger),
		CourseHandler:  handler.NewCourseHandler(courseService, gate, logger),
		DBHealth:       dbHealth,
		Metrics:        m,
		MetricsPath:    cfg.Metrics.Path,
		LogStackTraces: cfg.Logging.LogStackTraces,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// openDatabase wires the driver-specific repositories. The repository
// subpackages cannot be constructed from the repository package itself,
// so the composition happens here.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return &repository.Repositories{
			User:   sqlite.NewUserRepository(db),
			Course: sqlite.NewCourseRepository(db),
		}, db, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return &repository.Repositories{
			User:   postgres.NewUserRepository(db),
			Course: postgres.NewCourseRepository(db),
		}, db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// openCache picks the cache backend. The returned cleanup stops the
// backend's background resources.
func openCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Cache, func(), error) {
	if cfg.Redis.Enabled {
		cache, err := rediscache.NewCache(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using redis course cache")
		return cache, func() { cache.Close() }, nil
	}

	cache := memory.NewCache()
	logger.Info().Msg("using in-memory course cache")
	return cache, cache.Stop, nil
}

// newLogger builds the process logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Format == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
