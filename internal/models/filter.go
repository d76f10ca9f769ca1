package models

import "time"

// JobFilter параметры выборки заявок для доски. Nil-поля означают
// отсутствие фильтра по соответствующему измерению.
type JobFilter struct {
	Status        *string    // Фильтр по статусу
	TechnicianUID *string    // Фильтр по назначенному технику
	From          *time.Time // Начало периода по дате выезда
	To            *time.Time // Конец периода по дате выезда
	Limit         int
	Offset        int
}

// JobSummary агрегаты по заявкам для панели аналитики.
type JobSummary struct {
	TotalJobs     int            `json:"total_jobs"`
	TotalRevenue  float64        `json:"total_revenue"` // Сумма цен завершённых заявок
	CountByStatus map[string]int `json:"count_by_status"`
}

// JobReminder сообщение напоминания о завтрашнем выезде, публикуемое
// в очередь для воркера отправки писем.
type JobReminder struct {
	Email        string    `json:"email"`    // Почта назначенного техника
	Technician   string    `json:"technician"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}
