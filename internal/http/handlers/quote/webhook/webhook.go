// Package webhook реализует HTTP-обработчик приёма принятых котировок
// от внешней квотирующей системы.
//
// Запрос аутентифицируется общим секретом в заголовке (middleware).
// Строки услуг разрешаются сопоставителем; отсутствие совпадения с каталогом
// не является ошибкой и не отклоняет запрос.
package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fieldray/fieldops/internal/http/response"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	Intake(ctx context.Context, req models.DummyAcceptedQuote) (int, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Принять котировку
// @Description Принимает котировку от внешней системы. Строки услуг разрешаются по каталогу.
// @Tags Quotes
// @Accept  json
// @Produce  json
// @Param X-Webhook-Secret header string true "Общий секрет"
// @Param request body models.DummyAcceptedQuote true "Данные котировки"
// @Success 200 {object} map[string]any "Котировка принята"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверный секрет"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /webhooks/quotes [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quote.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAcceptedQuote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Intake(r.Context(), req)
	if err != nil {
		log.Error("failed to intake quote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not intake quote"))
		return
	}

	log.Info("quote accepted", slog.Int("id", id), slog.String("source", req.Source))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"quote_id": id,
	}))
}
