package models

// Источник разрешённой услуги: запись каталога или синтезированная
// custom-услуга, созданная на лету при отсутствии совпадения.
const (
	ServiceSourceCatalog = "catalog"
	ServiceSourceCustom  = "custom"
)

// CatalogService запись каталога услуг, редактируется администраторами
// и доступна сопоставителю только на чтение.
type CatalogService struct {
	ID           int
	Name         string   // Название услуги
	DefaultPrice *float64 // Цена по умолчанию (nil — не задана)
	DefaultHours *int     // Длительность по умолчанию в часах (nil — не задана)
	Active       bool     // Деактивированные записи не участвуют в сопоставлении
}

// LineItem входящая строка услуги из формы или webhook-а. Приходит один
// раз на событие, цена и длительность могут отсутствовать.
type LineItem struct {
	Name            string
	Price           *float64
	DurationMinutes *int
}

// ResolvedService результат сопоставления строки услуги с каталогом.
// Ровно один ResolvedService на каждую входящую строку: либо ссылка на
// запись каталога, либо custom-услуга с синтетическим идентификатором.
type ResolvedService struct {
	Source    string  `json:"source"`               // catalog | custom
	CatalogID *int    `json:"catalog_id,omitempty"` // id записи каталога, nil для custom
	CustomID  string  `json:"custom_id,omitempty"`  // uuid custom-услуги, пусто для каталожной
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Hours     int     `json:"hours"`
}

// DummyCatalogService используется для приёма данных записи каталога
// из JSON-запроса администратора.
type DummyCatalogService struct {
	Name         string   `json:"name" validate:"required"`            // Название услуги
	DefaultPrice *float64 `json:"default_price,omitempty" validate:"omitempty,gte=0"` // Цена по умолчанию
	DefaultHours *int     `json:"default_hours,omitempty" validate:"omitempty,gte=0"` // Длительность по умолчанию
	Active       *bool    `json:"active,omitempty"`                    // Флаг активности (по умолчанию true)
}

// DummyLineItem строка услуги из JSON-запроса до конвертации в LineItem.
type DummyLineItem struct {
	Name            string   `json:"name" validate:"required"`                             // Название услуги
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`           // Цена (опционально)
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"` // Длительность в минутах
}

// ToLineItem конвертирует DTO во внутреннюю модель.
func (d DummyLineItem) ToLineItem() LineItem {
	return LineItem{
		Name:            d.Name,
		Price:           d.Price,
		DurationMinutes: d.DurationMinutes,
	}
}
