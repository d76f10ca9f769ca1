package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fieldray/fieldops/internal/services/job"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id int, wholeSequence bool) (int, error) {
	args := m.Called(ctx, id, wholeSequence)
	return args.Int(0), args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление одной заявки",
			id:   "9",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 9, false).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":1`,
		},
		{
			name:  "успешное удаление серии",
			id:    "9",
			query: "?sequence=true",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 9, true).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":3`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid id"`,
		},
		{
			name:  "заявка не найдена",
			id:    "9",
			query: "?sequence=true",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 9, true).Return(0, job.ErrJobNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"job not found"`,
		},
		{
			name: "ошибка сервиса",
			id:   "9",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, 9, false).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to delete job"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/jobs/"+tt.id+tt.query, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
