// Package models содержит доменные структуры заявок, услуг и расписаний,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы заявки. Новая заявка всегда создаётся в StatusPending,
// дальнейшие переходы выполняются явным действием диспетчера.
const (
	StatusPending    = "pending"
	StatusOnTheWay   = "on_the_way"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Job представляет собой заявку на выезд, основную модель бизнес-логики
// и хранилища. Поле Price может быть nil — это означает, что заявка
// не оценена (нулевая сумма услуг не сохраняется как 0).
type Job struct {
	ID             int
	SequenceID     *string   // Общий идентификатор серии для повторяющихся заявок
	Title          string    // Заголовок заявки
	CustomerName   string    // Имя клиента
	Address        string    // Адрес выезда
	ScheduledAt    time.Time // Дата и время выезда
	Price          *float64  // Итоговая цена (nil — не оценена)
	EstimatedHours int       // Оценка длительности в часах
	IsRecurring    bool      // Заявка входит в повторяющуюся серию
	FirstTime      bool      // Первый визит к клиенту
	Status         string    // Текущий статус
	CreatedBy      string    // Имя пользователя, создавшего заявку
	CreatedAt      time.Time
}

// JobAssignment связывает заявку с назначенным техником.
type JobAssignment struct {
	JobID         int
	TechnicianUID string
}

// JobService одна строка услуги, закреплённая за заявкой.
type JobService struct {
	JobID     int
	CatalogID *int   // id записи каталога, nil для custom-услуги
	CustomID  string // синтетический id custom-услуги, пусто для каталожной
	Name      string
	Price     float64
	Hours     int
}

// DummyJob используется для приёма данных формы создания заявки из
// JSON-запроса, прежде чем конвертировать их в JobForm.
// Даты приходят строками в формате RFC3339, чтобы их можно было
// валидировать и парсить вручную.
type DummyJob struct {
	Title           string          `json:"title" validate:"required"`                 // Заголовок заявки
	CustomerName    string          `json:"customer_name" validate:"required"`         // Имя клиента
	Address         string          `json:"address,omitempty"`                         // Адрес выезда
	ScheduledAt     string          `json:"scheduled_at" validate:"required"`          // Дата выезда, RFC3339
	FirstTime       bool            `json:"first_time"`                                // Первый визит
	IsRecurring     bool            `json:"is_recurring"`                              // Повторяющаяся заявка
	Frequency       string          `json:"frequency,omitempty"`                       // Единица повторения
	Interval        int             `json:"interval,omitempty"`                        // Интервал повторения
	OccurrenceCount int             `json:"occurrence_count,omitempty"`                // Количество повторений
	DayOfWeek       *int            `json:"day_of_week,omitempty"`                     // День недели для weekly
	Assignees       []string        `json:"assignees,omitempty"`                       // UID назначенных техников
	Services        []DummyLineItem `json:"services" validate:"required,min=1,dive"`   // Строки услуг
}

// DummyStatus используется для приёма нового статуса заявки.
type DummyStatus struct {
	Status string `json:"status" validate:"required,oneof=pending on_the_way in_progress completed cancelled"`
}
