package models

import (
	"time"

	"github.com/fieldray/fieldops/internal/lib/recurrence"
)

// Schedule расписание повторяющейся серии заявок. Создаётся один раз
// при материализации серии, привязано к первой заявке и удаляется
// вместе с ней при удалении всей серии.
type Schedule struct {
	ID          int
	JobID       int             // Первая заявка серии
	SequenceID  string          // Общий идентификатор серии
	Rule        recurrence.Rule // Правило повторения
	NextDueDate time.Time       // Последняя сгенерированная дата серии
}

// JobForm иммутабельное состояние формы создания заявки, передаваемое
// в материализатор. UI-слой отвечает за его заполнение; бизнес-логика
// формы не изменяет.
type JobForm struct {
	Title        string
	CustomerName string
	Address      string
	ScheduledAt  time.Time
	FirstTime    bool
	IsRecurring  bool
	Recurrence   *recurrence.Rule // nil для разовой заявки
	Assignees    []string         // UID назначенных техников
	CreatedBy    string           // Имя пользователя-автора
}

// Materialization результат материализации формы: набор заявок с общим
// списком услуг и, для повторяющейся серии, расписание.
type Materialization struct {
	Jobs       []Job
	Selections []ResolvedService // Услуги, одинаковые для каждой заявки серии
	Assignees  []string          // UID техников, назначаемых на каждую заявку
	Schedule   *Schedule         // nil для разовой заявки
}
