// Package list реализует HTTP-обработчик доски заявок с фильтрами.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

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
	List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заявок
// @Description Возвращает заявки доски. Фильтры: status, technician, from, to; пагинация limit/offset.
// @Tags Jobs
// @Produce  json
// @Param status query string false "Фильтр по статусу"
// @Param technician query string false "Фильтр по uid техника"
// @Param from query string false "Начало периода, RFC3339"
// @Param to query string false "Конец периода, RFC3339"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /jobs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("invalid filter params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid filter params"))
		return
	}

	jobs, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list jobs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list jobs"))
		return
	}

	log.Info("success to list jobs", slog.Int("count", len(jobs)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	}))
}

func parseFilter(r *http.Request) (models.JobFilter, error) {
	var filter models.JobFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("technician"); v != "" {
		filter.TechnicianUID = &v
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Offset = n
	}
	return filter, nil
}
