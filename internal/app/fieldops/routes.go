// Package fieldops предоставляет маршруты для основного приложения.
package fieldops

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fieldray/fieldops/internal/config"
	analyticssummary "github.com/fieldray/fieldops/internal/http/handlers/analytics/summary"
	"github.com/fieldray/fieldops/internal/http/handlers/auth/login"
	"github.com/fieldray/fieldops/internal/http/handlers/auth/register"
	"github.com/fieldray/fieldops/internal/http/handlers/health"
	jobcreate "github.com/fieldray/fieldops/internal/http/handlers/job/create"
	joblist "github.com/fieldray/fieldops/internal/http/handlers/job/list"
	jobread "github.com/fieldray/fieldops/internal/http/handlers/job/read"
	jobremove "github.com/fieldray/fieldops/internal/http/handlers/job/remove"
	jobupdate "github.com/fieldray/fieldops/internal/http/handlers/job/update"
	quotelist "github.com/fieldray/fieldops/internal/http/handlers/quote/list"
	quotewebhook "github.com/fieldray/fieldops/internal/http/handlers/quote/webhook"
	catalogcreate "github.com/fieldray/fieldops/internal/http/handlers/servicecatalog/create"
	cataloglist "github.com/fieldray/fieldops/internal/http/handlers/servicecatalog/list"
	catalogremove "github.com/fieldray/fieldops/internal/http/handlers/servicecatalog/remove"
	catalogupdate "github.com/fieldray/fieldops/internal/http/handlers/servicecatalog/update"
	"github.com/fieldray/fieldops/internal/http/middlewarectx"
	"github.com/fieldray/fieldops/internal/lib/jwt"
	"github.com/fieldray/fieldops/internal/models"
	analyticsservice "github.com/fieldray/fieldops/internal/services/analytics"
	authservice "github.com/fieldray/fieldops/internal/services/auth"
	catalogservice "github.com/fieldray/fieldops/internal/services/catalog"
	jobservice "github.com/fieldray/fieldops/internal/services/job"
	quoteservice "github.com/fieldray/fieldops/internal/services/quote"
)

// Services сервисы, используемые маршрутами приложения.
type Services struct {
	Auth      *authservice.AuthService
	Job       *jobservice.JobService
	Catalog   *catalogservice.CatalogService
	Quote     *quoteservice.QuoteService
	Analytics *analyticsservice.AnalyticsService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, jwtMaker jwt.Maker, services *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, services.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, services.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/jobs", jobcreate.New(logger, services.Job).ServeHTTP)
			r.Get("/jobs", joblist.New(logger, services.Job).ServeHTTP)
			r.Get("/jobs/{id}", jobread.New(logger, services.Job).ServeHTTP)
			r.Patch("/jobs/{id}/status", jobupdate.New(logger, services.Job).ServeHTTP)
			r.Delete("/jobs/{id}", jobremove.New(logger, services.Job).ServeHTTP)

			r.Get("/services", cataloglist.New(logger, services.Catalog).ServeHTTP)
			r.Get("/quotes", quotelist.New(logger, services.Quote).ServeHTTP)
			r.Get("/analytics/summary", analyticssummary.New(logger, services.Analytics).ServeHTTP)

			// Управление каталогом доступно только администраторам
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoleMiddleware(models.RoleAdmin, logger))

				r.Post("/services", catalogcreate.New(logger, services.Catalog).ServeHTTP)
				r.Put("/services/{id}", catalogupdate.New(logger, services.Catalog).ServeHTTP)
				r.Delete("/services/{id}", catalogremove.New(logger, services.Catalog).ServeHTTP)
			})
		})

		// Webhook endpoint (аутентификация общим секретом)
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.WebhookSecretMiddleware(cfg.WebhookSecret, logger))
			r.Post("/webhooks/quotes", quotewebhook.New(logger, services.Quote).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
