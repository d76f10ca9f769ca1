// Package sender реализует воркер отправки писем-напоминаний техникам
// о завтрашних выездах.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

// ReminderMailer отправляет письмо-напоминание технику.
type ReminderMailer interface {
	SendReminder(reminder models.JobReminder) error
}

// SenderService воркер отправки напоминаний: разбирает сообщения очереди
// и передает их рассыльщику.
type SenderService struct {
	mailer ReminderMailer
	log    *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(mailer ReminderMailer, log *slog.Logger) *SenderService {
	return &SenderService{
		mailer: mailer,
		log:    log,
	}
}

// HandleReminder обрабатывает сообщение очереди напоминаний. Ошибка
// разбора или отправки возвращает сообщение в очередь на повторную
// доставку.
func (s *SenderService) HandleReminder(body []byte) error {
	var reminder models.JobReminder
	if err := json.Unmarshal(body, &reminder); err != nil {
		s.log.Error("failed to unmarshal reminder body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	if err := s.mailer.SendReminder(reminder); err != nil {
		s.log.Error("failed to send reminder",
			slog.String("to", reminder.Email),
			slog.String("job", reminder.Title),
			sl.Err(err))
		return err
	}

	s.log.Info("reminder email sent",
		slog.String("to", reminder.Email),
		slog.String("job", reminder.Title))
	return nil
}
