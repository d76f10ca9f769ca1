package job

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldray/fieldops/internal/lib/recurrence"
	"github.com/fieldray/fieldops/internal/models"
)

// Ошибки валидации формы заявки. Поверхностный слой отдаёт их
// пользователю без повторных попыток, в хранилище ничего не пишется.
var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrNoServices = errors.New("at least one service must be selected")
)

// Materialize превращает состояние формы и разрешённые услуги в набор
// заявок для сохранения. Функция чистая: побочных эффектов нет, повторный
// вызов с теми же аргументами даёт эквивалентный результат (кроме новых
// идентификаторов серии).
//
// Для разовой формы создаётся ровно одна заявка. Для повторяющейся —
// по заявке на каждую дату правила; флаг IsRecurring ставится на каждую
// заявку серии, чтобы любую из них можно было опознать как часть серии,
// FirstTime остаётся только у первой. Все заявки серии получают общий
// sequence_id, расписание привязывается к первой заявке, его NextDueDate —
// последняя сгенерированная дата.
//
// Цена заявки — сумма цен разрешённых услуг; нулевая сумма не сохраняется
// как 0, а остаётся незаданной, чтобы отличать «не оценено» от «бесплатно».
func Materialize(form models.JobForm, selections []models.ResolvedService) (*models.Materialization, error) {
	if strings.TrimSpace(form.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if len(selections) == 0 {
		return nil, ErrNoServices
	}

	var totalPrice float64
	var totalHours int
	for _, sel := range selections {
		totalPrice += sel.Price
		totalHours += sel.Hours
	}
	var price *float64
	if totalPrice != 0 {
		price = &totalPrice
	}

	if !form.IsRecurring || form.Recurrence == nil {
		job := models.Job{
			Title:          form.Title,
			CustomerName:   form.CustomerName,
			Address:        form.Address,
			ScheduledAt:    form.ScheduledAt,
			Price:          price,
			EstimatedHours: totalHours,
			IsRecurring:    false,
			FirstTime:      form.FirstTime,
			Status:         models.StatusPending,
			CreatedBy:      form.CreatedBy,
		}
		return &models.Materialization{
			Jobs:       []models.Job{job},
			Selections: selections,
			Assignees:  form.Assignees,
		}, nil
	}

	dates, err := recurrence.Generate(form.ScheduledAt, *form.Recurrence)
	if err != nil {
		return nil, err
	}

	sequenceID := uuid.NewString()
	jobs := make([]models.Job, 0, len(dates))
	for i, date := range dates {
		title := form.Title
		if i > 0 {
			title = fmt.Sprintf("%s (%d)", form.Title, i+1)
		}
		seq := sequenceID
		jobs = append(jobs, models.Job{
			SequenceID:     &seq,
			Title:          title,
			CustomerName:   form.CustomerName,
			Address:        form.Address,
			ScheduledAt:    date,
			Price:          price,
			EstimatedHours: totalHours,
			IsRecurring:    true,
			FirstTime:      form.FirstTime && i == 0,
			Status:         models.StatusPending,
			CreatedBy:      form.CreatedBy,
		})
	}

	schedule := &models.Schedule{
		SequenceID:  sequenceID,
		Rule:        *form.Recurrence,
		NextDueDate: dates[len(dates)-1],
	}

	return &models.Materialization{
		Jobs:       jobs,
		Selections: selections,
		Assignees:  form.Assignees,
		Schedule:   schedule,
	}, nil
}
