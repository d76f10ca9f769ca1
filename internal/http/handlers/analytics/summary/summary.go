// Package summary реализует HTTP-обработчик сводки панели аналитики.
//
// Период задаётся query-параметрами from/to; по умолчанию — последние 30 дней.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fieldray/fieldops/internal/http/response"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/services/analytics"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	BuildSummary(ctx context.Context, from, to time.Time) (*analytics.Summary, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по заявкам
// @Description Возвращает агрегаты по заявкам за период и тренд выручки.
// @Tags Analytics
// @Produce  json
// @Param from query string false "Начало периода, RFC3339"
// @Param to query string false "Конец периода, RFC3339"
// @Success 200 {object} map[string]any "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректный период"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /analytics/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	from, to, err := parsePeriod(r)
	if err != nil {
		log.Error("invalid period params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid period params"))
		return
	}

	summary, err := h.service.BuildSummary(r.Context(), from, to)
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build summary"))
		return
	}

	log.Info("success to build summary")
	render.JSON(w, r, response.OKWithData(summary))
}

func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}
