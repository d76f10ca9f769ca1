// Package scheduler реализует воркер, который периодически находит
// заявки с выездом на завтра и публикует напоминания в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fieldray/fieldops/internal/lib/rabbitmq"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

// JobRepository описывает методы хранилища для поиска завтрашних заявок.
type JobRepository interface {
	FindJobsDueTomorrow(ctx context.Context) ([]*models.JobReminder, error)
}

// SchedulerService воркер публикации напоминаний.
type SchedulerService struct {
	repo JobRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo JobRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindJobsDueTomorrow запускает цикл поиска завтрашних заявок: первый
// проход сразу, дальше по тикеру раз в 12 часов.
func (s *SchedulerService) FindJobsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindJobsDueTomorrow(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindJobsDueTomorrow(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindJobsDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find jobs due tomorrow")
	reminders, err := s.repo.FindJobsDueTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find jobs due tomorrow", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no jobs due tomorrow found")
		return
	}
	s.log.Info("found jobs due tomorrow", "count", len(reminders))
	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, "reminders", "due_tomorrow", reminder)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
