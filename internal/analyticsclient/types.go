package analyticsclient

// RevenueTrendResponse ответ сервиса аналитики на запрос тренда выручки.
type RevenueTrendResponse struct {
	Months []MonthRevenue `json:"months"`
}

// MonthRevenue выручка за один календарный месяц.
type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
	Jobs    int     `json:"jobs"`
}
