// Package list реализует HTTP-обработчик списка записей каталога услуг.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fieldray/fieldops/internal/http/response"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, activeOnly bool) ([]*models.CatalogService, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список услуг каталога
// @Description Возвращает записи каталога. При active=true — только активные.
// @Tags Services
// @Produce  json
// @Param active query bool false "Только активные записи"
// @Success 200 {object} map[string]any "Список услуг"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.servicecatalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	activeOnly := r.URL.Query().Get("active") == "true"

	services, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		log.Error("failed to list catalog services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list catalog services"))
		return
	}

	log.Info("success to list catalog services", slog.Int("count", len(services)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"services": services,
		"count":    len(services),
	}))
}
