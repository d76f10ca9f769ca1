// Package list реализует HTTP-обработчик списка принятых котировок.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

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
	List(ctx context.Context, limit, offset int) ([]*models.AcceptedQuote, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список принятых котировок
// @Description Возвращает принятые котировки, новые первыми.
// @Tags Quotes
// @Produce  json
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список котировок"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /quotes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, offset, err := parsePaging(r)
	if err != nil {
		log.Error("invalid paging params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid paging params"))
		return
	}

	quotes, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list quotes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list quotes"))
		return
	}

	log.Info("success to list quotes", slog.Int("count", len(quotes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"quotes": quotes,
		"count":  len(quotes),
	}))
}

func parsePaging(r *http.Request) (int, int, error) {
	var limit, offset int
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}
