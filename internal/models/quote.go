package models

import "time"

// AcceptedQuote принятая котировка, поступившая через webhook внешней
// квотирующей системы. Строки услуг уже разрешены сопоставителем.
type AcceptedQuote struct {
	ID            int
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Source        string            // Идентификатор внешней системы
	Items         []ResolvedService // Разрешённые строки услуг
	Total         float64           // Сумма цен разрешённых строк
	ReceivedAt    time.Time
}

// DummyAcceptedQuote тело webhook-запроса от квотирующей системы.
type DummyAcceptedQuote struct {
	CustomerName  string          `json:"customer_name" validate:"required"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string          `json:"customer_phone"`
	Source        string          `json:"source"`
	Items         []DummyLineItem `json:"items" validate:"required,min=1,dive"`
}
