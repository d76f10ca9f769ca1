package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fieldray/fieldops/internal/models"
)

// ErrJobNotFound возвращается, когда заявка отсутствует в хранилище.
var ErrJobNotFound = errors.New("job not found")

// CreateMaterialization вставляет в одной транзакции все заявки серии,
// их услуги и назначения, а также расписание серии, если оно есть.
// Возвращает ID созданных заявок в порядке вставки.
func (s *Storage) CreateMaterialization(ctx context.Context, m *models.Materialization) ([]int, error) {
	const op = "storage.CreateMaterialization"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	jobQuery := `INSERT INTO jobs (sequence_id, title, customer_name, address, scheduled_at,
			  price, estimated_hours, is_recurring, first_time, status, created_by)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		  RETURNING id`
	serviceQuery := `INSERT INTO job_services (job_id, catalog_id, custom_id, name, price, hours)
		  VALUES ($1, $2, $3, $4, $5, $6)`
	assignmentQuery := `INSERT INTO job_assignments (job_id, technician_uid)
		  VALUES ($1, $2)`

	ids := make([]int, 0, len(m.Jobs))
	for _, job := range m.Jobs {
		var newID int
		err = tx.QueryRowContext(ctx, jobQuery,
			job.SequenceID, job.Title, job.CustomerName, job.Address, job.ScheduledAt,
			job.Price, job.EstimatedHours, job.IsRecurring, job.FirstTime,
			job.Status, job.CreatedBy).Scan(&newID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, sel := range m.Selections {
			var customID *string
			if sel.CustomID != "" {
				customID = &sel.CustomID
			}
			if _, err = tx.ExecContext(ctx, serviceQuery,
				newID, sel.CatalogID, customID, sel.Name, sel.Price, sel.Hours); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		ids = append(ids, newID)
	}

	if m.Schedule != nil && len(ids) > 0 {
		scheduleQuery := `INSERT INTO job_schedules (job_id, sequence_id, frequency,
				  recur_interval, occurrence_count, day_of_week, next_due_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err = tx.ExecContext(ctx, scheduleQuery,
			ids[0], m.Schedule.SequenceID, string(m.Schedule.Rule.Frequency),
			m.Schedule.Rule.Interval, m.Schedule.Rule.Count,
			m.Schedule.Rule.DayOfWeek, m.Schedule.NextDueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	// Назначения одинаковы для всех заявок серии.
	for _, id := range ids {
		for _, uid := range m.Assignees {
			if _, err = tx.ExecContext(ctx, assignmentQuery, id, uid); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// ReadJob возвращает данные заявки по её ID.
func (s *Storage) ReadJob(ctx context.Context, id int) (*models.Job, error) {
	const op = "storage.ReadJob"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, sequence_id, title, customer_name, address, scheduled_at,
				price, estimated_hours, is_recurring, first_time, status, created_by, created_at
			  FROM jobs WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Job
	if err := row.Scan(&result.ID, &result.SequenceID, &result.Title, &result.CustomerName,
		&result.Address, &result.ScheduledAt, &result.Price, &result.EstimatedHours,
		&result.IsRecurring, &result.FirstTime, &result.Status,
		&result.CreatedBy, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListJobServices возвращает строки услуг заявки.
func (s *Storage) ListJobServices(ctx context.Context, jobID int) ([]*models.JobService, error) {
	const op = "storage.ListJobServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT job_id, catalog_id, COALESCE(custom_id, ''), name, price, hours
			  FROM job_services WHERE job_id = $1 ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.JobService
	for rows.Next() {
		var js models.JobService
		if err := rows.Scan(&js.JobID, &js.CatalogID, &js.CustomID,
			&js.Name, &js.Price, &js.Hours); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &js)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListJobs возвращает заявки доски по фильтру с пагинацией.
func (s *Storage) ListJobs(ctx context.Context, filter models.JobFilter) ([]*models.Job, error) {
	const op = "storage.ListJobs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, "j.status = $"+strconv.Itoa(len(args)))
	}
	if filter.TechnicianUID != nil {
		args = append(args, *filter.TechnicianUID)
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM job_assignments a WHERE a.job_id = j.id AND a.technician_uid = $"+
				strconv.Itoa(len(args))+")")
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, "j.scheduled_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, "j.scheduled_at < $"+strconv.Itoa(len(args)))
	}

	query := `SELECT j.id, j.sequence_id, j.title, j.customer_name, j.address, j.scheduled_at,
				j.price, j.estimated_hours, j.is_recurring, j.first_time, j.status, j.created_by, j.created_at
			  FROM jobs j`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit)
	query += " ORDER BY j.scheduled_at, j.id LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(&job.ID, &job.SequenceID, &job.Title, &job.CustomerName,
			&job.Address, &job.ScheduledAt, &job.Price, &job.EstimatedHours,
			&job.IsRecurring, &job.FirstTime, &job.Status,
			&job.CreatedBy, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateJobStatus меняет статус заявки и возвращает количество изменённых строк.
func (s *Storage) UpdateJobStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateJobStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE jobs SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveJob удаляет одну заявку по ID и возвращает количество удалённых строк.
// Услуги, назначения и расписание удаляются каскадно по внешним ключам.
func (s *Storage) RemoveJob(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveJob"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM jobs WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSequence удаляет все заявки серии по общему sequence_id
// и возвращает количество удалённых заявок.
func (s *Storage) RemoveSequence(ctx context.Context, sequenceID string) (int, error) {
	const op = "storage.RemoveSequence"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM jobs WHERE sequence_id = $1`
	result, err := s.DB.ExecContext(ctx, query, sequenceID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountSummary считает агрегаты по заявкам за период: количество по статусам
// и выручку по завершённым заявкам.
func (s *Storage) CountSummary(ctx context.Context, from, to time.Time) (*models.JobSummary, error) {
	const op = "storage.CountSummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT status, COUNT(*), COALESCE(SUM(price) FILTER (WHERE status = 'completed'), 0)
			  FROM jobs
			  WHERE scheduled_at >= $1 AND scheduled_at < $2
			  GROUP BY status`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	summary := &models.JobSummary{CountByStatus: make(map[string]int)}
	for rows.Next() {
		var status string
		var count int
		var revenue float64
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		summary.CountByStatus[status] = count
		summary.TotalJobs += count
		summary.TotalRevenue += revenue
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}

// FindJobsDueTomorrow возвращает напоминания по заявкам, назначенным на завтра,
// по одному на каждую пару заявка-техник.
func (s *Storage) FindJobsDueTomorrow(ctx context.Context) ([]*models.JobReminder, error) {
	const op = "storage.FindJobsDueTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.username, j.title, j.customer_name, j.address, j.scheduled_at
			  FROM jobs j
			  JOIN job_assignments a ON a.job_id = j.id
			  JOIN users u ON u.uid = a.technician_uid
			  WHERE j.status = 'pending'
			    AND j.scheduled_at >= CURRENT_DATE + INTERVAL '1 day'
			    AND j.scheduled_at < CURRENT_DATE + INTERVAL '2 days'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.JobReminder
	for rows.Next() {
		var r models.JobReminder
		if err := rows.Scan(&r.Email, &r.Technician, &r.Title,
			&r.CustomerName, &r.Address, &r.ScheduledAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
