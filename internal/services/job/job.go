// Package job содержит бизнес-логику заявок: материализацию формы,
// сохранение серий, доску заявок и переходы статусов.
package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fieldray/fieldops/internal/lib/recurrence"
	"github.com/fieldray/fieldops/internal/models"
	"github.com/fieldray/fieldops/internal/storage/repository"
)

// Ошибки операций над заявками.
var (
	ErrJobNotFound       = errors.New("job not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDate       = errors.New("invalid scheduled date")
)

// jobsCreated счётчик созданных заявок для /metrics.
var jobsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fieldops_jobs_created_total",
	Help: "Total number of job records created, recurring occurrences included.",
})

// allowedTransitions допустимые переходы статусов. Терминальные статусы
// переходов не имеют.
var allowedTransitions = map[string][]string{
	models.StatusPending:    {models.StatusOnTheWay, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusOnTheWay:   {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

// JobRepository определяет методы для работы с заявками в хранилище.
type JobRepository interface {
	// CreateMaterialization сохраняет заявки серии с услугами, назначениями
	// и расписанием в одной транзакции и возвращает ID созданных заявок.
	CreateMaterialization(ctx context.Context, m *models.Materialization) ([]int, error)
	// ReadJob возвращает заявку по ID.
	ReadJob(ctx context.Context, id int) (*models.Job, error)
	// ListJobServices возвращает строки услуг заявки.
	ListJobServices(ctx context.Context, jobID int) ([]*models.JobService, error)
	// ListJobs возвращает заявки доски по фильтру с пагинацией.
	ListJobs(ctx context.Context, filter models.JobFilter) ([]*models.Job, error)
	// UpdateJobStatus меняет статус заявки.
	UpdateJobStatus(ctx context.Context, id int, status string) (int, error)
	// RemoveJob удаляет одну заявку.
	RemoveJob(ctx context.Context, id int) (int, error)
	// RemoveSequence удаляет все заявки серии по sequence_id.
	RemoveSequence(ctx context.Context, sequenceID string) (int, error)
}

// Resolver сопоставляет строки услуг с активным каталогом.
type Resolver interface {
	ResolveActive(ctx context.Context, items []models.LineItem) ([]models.ResolvedService, error)
}

// JobService реализует бизнес-логику работы с заявками.
type JobService struct {
	repo     JobRepository
	resolver Resolver
	log      *slog.Logger
}

// NewJobService создает новый экземпляр JobService.
func NewJobService(repo JobRepository, resolver Resolver, log *slog.Logger) *JobService {
	return &JobService{
		repo:     repo,
		resolver: resolver,
		log:      log,
	}
}

// Create материализует форму заявки и сохраняет результат.
// Возвращает ID созданных заявок в порядке дат.
func (s *JobService) Create(ctx context.Context, username string, req models.DummyJob) ([]int, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	var rule *recurrence.Rule
	if req.IsRecurring {
		rule = &recurrence.Rule{
			Frequency: recurrence.Frequency(req.Frequency),
			Interval:  req.Interval,
			Count:     req.OccurrenceCount,
			DayOfWeek: req.DayOfWeek,
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	items := make([]models.LineItem, 0, len(req.Services))
	for _, dto := range req.Services {
		items = append(items, dto.ToLineItem())
	}
	selections, err := s.resolver.ResolveActive(ctx, items)
	if err != nil {
		return nil, err
	}

	form := models.JobForm{
		Title:        req.Title,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		ScheduledAt:  scheduledAt,
		FirstTime:    req.FirstTime,
		IsRecurring:  req.IsRecurring,
		Recurrence:   rule,
		Assignees:    req.Assignees,
		CreatedBy:    username,
	}

	materialization, err := Materialize(form, selections)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.CreateMaterialization(ctx, materialization)
	if err != nil {
		return nil, err
	}
	jobsCreated.Add(float64(len(ids)))

	s.log.Info("created jobs",
		slog.Int("count", len(ids)),
		slog.Bool("recurring", req.IsRecurring))
	return ids, nil
}

// Read возвращает заявку и её строки услуг.
func (s *JobService) Read(ctx context.Context, id int) (*models.Job, []*models.JobService, error) {
	job, err := s.repo.ReadJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, nil, ErrJobNotFound
		}
		return nil, nil, err
	}
	services, err := s.repo.ListJobServices(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return job, services, nil
}

// List возвращает заявки доски по фильтру.
func (s *JobService) List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.ListJobs(ctx, filter)
}

// UpdateStatus выполняет переход статуса заявки. Переход из терминального
// статуса отклоняется с ErrInvalidTransition.
func (s *JobService) UpdateStatus(ctx context.Context, id int, status string) error {
	job, err := s.repo.ReadJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	if !transitionAllowed(job.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, status)
	}

	count, err := s.repo.UpdateJobStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrJobNotFound
	}
	s.log.Info("job status updated",
		slog.Int("id", id),
		slog.String("from", job.Status),
		slog.String("to", status))
	return nil
}

// Remove удаляет заявку. При wholeSequence == true и наличии sequence_id
// удаляется вся серия вместе с расписанием. Возвращает количество
// удалённых заявок.
func (s *JobService) Remove(ctx context.Context, id int, wholeSequence bool) (int, error) {
	if !wholeSequence {
		return s.repo.RemoveJob(ctx, id)
	}

	job, err := s.repo.ReadJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return 0, ErrJobNotFound
		}
		return 0, err
	}
	if job.SequenceID == nil {
		return s.repo.RemoveJob(ctx, id)
	}

	count, err := s.repo.RemoveSequence(ctx, *job.SequenceID)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed job sequence",
		slog.String("sequence_id", *job.SequenceID),
		slog.Int("count", count))
	return count, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
