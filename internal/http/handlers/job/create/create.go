// Package create реализует HTTP-обработчик для создания заявок.
//
// Handler принимает JSON-запрос с данными заявки, валидирует их, извлекает имя
// пользователя из контекста и вызывает бизнес-логику создания. Для повторяющейся
// заявки создается вся серия, возвращаются ID всех созданных записей.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fieldray/fieldops/internal/http/middlewarectx"
	"github.com/fieldray/fieldops/internal/http/response"
	"github.com/fieldray/fieldops/internal/lib/recurrence"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
	"github.com/fieldray/fieldops/internal/services/job"
)

// Handler управляет HTTP-запросами на создание заявок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания заявок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заявки.
type Service interface {
	Create(ctx context.Context, username string, req models.DummyJob) ([]int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать заявку
// @Description Создает заявку или серию повторяющихся заявок. Возвращает ID созданных записей.
// @Tags Jobs
// @Accept  json
// @Produce  json
// @Param request body models.DummyJob true "Данные новой заявки"
// @Success 200 {object} map[string]any "Успешное создание заявки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заявки"
// @Router /jobs [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.job.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyJob
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	ids, err := h.service.Create(r.Context(), username, req)
	if err != nil {
		if isClientError(err) {
			log.Error("invalid job data", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create job", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create job"))
		return
	}

	log.Info("success to create jobs", slog.Any("ids", ids))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"created_ids": ids,
	}))
}

func isClientError(err error) bool {
	return errors.Is(err, job.ErrInvalidDate) ||
		errors.Is(err, job.ErrEmptyTitle) ||
		errors.Is(err, job.ErrNoServices) ||
		errors.Is(err, recurrence.ErrInvalidCount) ||
		errors.Is(err, recurrence.ErrInvalidInterval) ||
		errors.Is(err, recurrence.ErrInvalidDayOfWeek) ||
		errors.Is(err, recurrence.ErrUnknownFrequency)
}
