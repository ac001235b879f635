package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"messhall/internal/audit"
	"messhall/internal/config"
	"messhall/internal/jwtauth"
	"messhall/internal/meal"
	srvconfig "messhall/internal/platform/config"
	"messhall/internal/platform/httpserver"
	"messhall/internal/platform/logger"
	"messhall/internal/platform/metrics"
	"messhall/internal/platform/postgres"
	"messhall/internal/platform/redis"
	"messhall/internal/registration"
	"messhall/internal/status"
	httptransport "messhall/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business rules live
// in the internal service packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := srvconfig.FromEnv()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var (
		db            *sql.DB
		settingsStore config.Store
		mealStore     meal.Store
		regStore      registration.Store
		auditStore    audit.Store
	)
	if cfg.DatabaseURL != "" {
		db, err = postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		settingsStore = config.NewPostgresStore(db)
		mealStore = meal.NewPostgresStore(db)
		regStore = registration.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)
		log.Info("using postgres storage")
	} else {
		settingsStore = config.NewInMemoryStore()
		mealStore = meal.NewInMemoryStore()
		regStore = registration.NewInMemoryStore()
		auditStore = audit.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory storage; state is lost on restart")
	}

	rdb, err := redis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		settingsStore = config.NewCachedStore(settingsStore, rdb, cfg.SettingsCacheTTL, log)
		log.Info("settings cache enabled", "ttl", cfg.SettingsCacheTTL)
	}

	m := metrics.New()
	settings := config.NewService(settingsStore, log)
	meals := meal.NewService(mealStore, log)
	auditor := audit.NewService(auditStore, log)
	registrations := registration.NewService(regStore, meals, settings, auditor, m, log, loc)
	statusSvc := status.NewService(regStore, meals)
	tokens := jwtauth.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Handlers:  httptransport.NewHandlers(registrations, statusSvc, meals, settings, auditor, log, loc),
		Validator: tokens,
		Metrics:   m,
		Logger:    log,
		Ready: func(ctx context.Context) error {
			if db != nil {
				if err := db.PingContext(ctx); err != nil {
					return err
				}
			}
			if rdb != nil {
				return rdb.Health(ctx)
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
