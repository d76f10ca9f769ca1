// Package remove реализует HTTP-обработчик деактивации записи каталога услуг.
//
// Запись не удаляется физически: она выводится из сопоставления, но остаётся
// доступной по ссылкам из уже созданных заявок.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fieldray/fieldops/internal/http/response"
	"github.com/fieldray/fieldops/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Deactivate(ctx context.Context, id int) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Деактивировать услугу каталога
// @Description Помечает запись каталога неактивной. Запись перестаёт участвовать в сопоставлении.
// @Tags Services
// @Produce  json
// @Param id path int true "ID услуги"
// @Success 200 {object} map[string]any "Количество деактивированных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /services/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.servicecatalog.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	count, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		log.Error("failed to deactivate catalog service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to deactivate catalog service"))
		return
	}

	log.Info("success to deactivate catalog service", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deactivated_count": count,
	}))
}
