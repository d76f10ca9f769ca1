// Package fieldops собирает основное HTTP-приложение: хранилище,
// миграции, кеш, сервисы и маршруты.
package fieldops

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/fieldray/fieldops/internal/analyticsclient"
	"github.com/fieldray/fieldops/internal/cache"
	"github.com/fieldray/fieldops/internal/config"
	"github.com/fieldray/fieldops/internal/lib/jwt"
	"github.com/fieldray/fieldops/internal/migrations"
	analyticsservice "github.com/fieldray/fieldops/internal/services/analytics"
	authservice "github.com/fieldray/fieldops/internal/services/auth"
	catalogservice "github.com/fieldray/fieldops/internal/services/catalog"
	jobservice "github.com/fieldray/fieldops/internal/services/job"
	quoteservice "github.com/fieldray/fieldops/internal/services/quote"
	"github.com/fieldray/fieldops/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	trendClient := analyticsclient.NewClient(cfg.AnalyticsBaseURL, cfg.AnalyticsTimeout)

	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	jobService := jobservice.NewJobService(db, catalogService, logger)
	quoteService := quoteservice.NewQuoteService(db, catalogService, logger)
	analyticsService := analyticsservice.NewAnalyticsService(db, trendClient, cacheRedis, logger)
	authService := authservice.NewAuthService(db, jwtMaker, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, cfg, jwtMaker, &Services{
		Auth:      authService,
		Job:       jobService,
		Catalog:   catalogService,
		Quote:     quoteService,
		Analytics: analyticsService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
