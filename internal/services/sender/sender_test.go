package sender

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fieldray/fieldops/internal/models"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendReminder(reminder models.JobReminder) error {
	args := m.Called(reminder)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_HandleReminder(t *testing.T) {
	reminderBody := []byte(`{"email":"t.volkova@fieldray.ru","technician":"volkova",` +
		`"title":"Чистка дымохода","customer_name":"ООО Ромашка",` +
		`"address":"пр. Мира, 24","scheduled_at":"2026-09-08T09:30:00Z"}`)

	wantReminder := models.JobReminder{
		Email:        "t.volkova@fieldray.ru",
		Technician:   "volkova",
		Title:        "Чистка дымохода",
		CustomerName: "ООО Ромашка",
		Address:      "пр. Мира, 24",
		ScheduledAt:  time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		body          []byte
		setupMocks    func(*MockMailer)
		expectedError bool
		errorMessage  string
	}{
		{
			name: "успешная отправка напоминания",
			body: reminderBody,
			setupMocks: func(m *MockMailer) {
				m.On("SendReminder", wantReminder).Return(nil).Once()
			},
			expectedError: false,
		},
		{
			name: "некорректный JSON",
			body: []byte(`invalid json`),
			setupMocks: func(_ *MockMailer) {
				// Рассыльщик не должен вызываться
			},
			expectedError: true,
			errorMessage:  "error unmarshalling message",
		},
		{
			name: "ошибка отправки возвращается в очередь",
			body: reminderBody,
			setupMocks: func(m *MockMailer) {
				m.On("SendReminder", wantReminder).
					Return(errors.New("mailbox unavailable")).Once()
			},
			expectedError: true,
			errorMessage:  "mailbox unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := new(MockMailer)
			service := NewSenderService(mailer, newNoopLogger())

			tt.setupMocks(mailer)

			err := service.HandleReminder(tt.body)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
			} else {
				assert.NoError(t, err)
			}

			mailer.AssertExpectations(t)
		})
	}
}
