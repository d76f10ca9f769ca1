// Package recurrence реализует генерацию последовательности дат для
// повторяющихся заявок. Генерация детерминирована: текущее время не
// используется, дата старта всегда передаётся вызывающей стороной.
package recurrence

import (
	"errors"
	"time"
)

// Frequency единица повторения правила.
type Frequency string

// Поддерживаемые единицы повторения.
const (
	Daily        Frequency = "daily"
	Weekly       Frequency = "weekly"
	Monthly      Frequency = "monthly"
	Quarterly    Frequency = "quarterly"
	SemiAnnually Frequency = "semi_annually"
	Yearly       Frequency = "yearly"
)

// Ошибки валидации правила повторения.
var (
	ErrInvalidCount     = errors.New("occurrence count must be at least 1")
	ErrInvalidInterval  = errors.New("interval must be at least 1")
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")
	ErrUnknownFrequency = errors.New("unknown frequency")
)

// Rule описывает правило повторения заявки.
// DayOfWeek учитывается только при Frequency == Weekly:
// 0 — воскресенье, 6 — суббота, nil — день недели не задан.
type Rule struct {
	Frequency Frequency
	Interval  int
	Count     int
	DayOfWeek *int
}

// Validate проверяет параметры правила. Вызывается до генерации,
// сгенерировать даты по невалидному правилу нельзя.
func (r Rule) Validate() error {
	if r.Count < 1 {
		return ErrInvalidCount
	}
	if r.Interval < 1 {
		return ErrInvalidInterval
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return ErrInvalidDayOfWeek
	}
	switch r.Frequency {
	case Daily, Weekly, Monthly, Quarterly, SemiAnnually, Yearly:
		return nil
	default:
		return ErrUnknownFrequency
	}
}

// Generate возвращает ровно r.Count дат, строго по возрастанию.
//
// Для weekly-правила с заданным DayOfWeek дата старта сдвигается вперёд
// (никогда назад) до ближайшего нужного дня недели; если старт уже попадает
// на нужный день, сдвига нет. Дальше каждая дата получается из предыдущей
// через AddDate целыми днями/месяцами/годами, поэтому 31 января + 1 месяц
// нормализуется так, как это делает time.AddDate.
func Generate(start time.Time, r Rule) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	current := start
	if r.Frequency == Weekly && r.DayOfWeek != nil {
		shift := (*r.DayOfWeek - int(start.Weekday()) + 7) % 7
		current = start.AddDate(0, 0, shift)
	}

	dates := make([]time.Time, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		dates = append(dates, current)
		current = advance(current, r)
	}
	return dates, nil
}

// advance сдвигает дату на один шаг правила с учётом интервала.
func advance(t time.Time, r Rule) time.Time {
	switch r.Frequency {
	case Daily:
		return t.AddDate(0, 0, r.Interval)
	case Weekly:
		return t.AddDate(0, 0, 7*r.Interval)
	case Monthly:
		return t.AddDate(0, r.Interval, 0)
	case Quarterly:
		return t.AddDate(0, 3*r.Interval, 0)
	case SemiAnnually:
		return t.AddDate(0, 6*r.Interval, 0)
	case Yearly:
		return t.AddDate(r.Interval, 0, 0)
	}
	return t
}
