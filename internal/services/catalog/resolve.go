package catalog

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldray/fieldops/internal/models"
)

// customServiceName имя custom-услуги, когда входящая строка пришла без названия.
const customServiceName = "Custom Service"

// Resolve сопоставляет входящие строки услуг с каталогом. На каждую строку
// возвращается ровно один результат: ссылка на запись каталога либо
// синтезированная custom-услуга. Функция чистая и никогда не возвращает ошибку:
// несопоставленная строка деградирует до custom-услуги, а не отклоняется.
//
// Сопоставление регистронезависимое и двухпроходное: сначала весь каталог
// проверяется на точное совпадение имени, и только потом — на подстрочные
// правила (имя записи входит в имя строки либо наоборот). Запись с точным
// именем побеждает более раннюю запись с подстрочным совпадением; внутри
// каждого прохода побеждает первая запись каталога. Деактивированные
// записи не участвуют.
func Resolve(items []models.LineItem, catalog []*models.CatalogService) []models.ResolvedService {
	result := make([]models.ResolvedService, 0, len(items))
	for _, item := range items {
		result = append(result, resolveOne(item, catalog))
	}
	return result
}

func resolveOne(item models.LineItem, catalog []*models.CatalogService) models.ResolvedService {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	if name == "" {
		return customService(item)
	}

	for _, svc := range catalog {
		if catalogName, ok := matchableName(svc); ok && catalogName == name {
			return matchedService(item, svc)
		}
	}
	for _, svc := range catalog {
		if catalogName, ok := matchableName(svc); ok &&
			(strings.Contains(name, catalogName) || strings.Contains(catalogName, name)) {
			return matchedService(item, svc)
		}
	}
	return customService(item)
}

// matchableName возвращает нормализованное имя записи каталога и признак
// того, что запись участвует в сопоставлении.
func matchableName(svc *models.CatalogService) (string, bool) {
	if svc == nil || !svc.Active {
		return "", false
	}
	name := strings.ToLower(strings.TrimSpace(svc.Name))
	return name, name != ""
}

// matchedService собирает результат для найденной записи каталога:
// явная цена строки важнее цены по умолчанию, явная длительность —
// длительности по умолчанию.
func matchedService(item models.LineItem, svc *models.CatalogService) models.ResolvedService {
	price := 0.0
	switch {
	case item.Price != nil:
		price = *item.Price
	case svc.DefaultPrice != nil:
		price = *svc.DefaultPrice
	}

	hours := 0
	switch {
	case item.DurationMinutes != nil:
		hours = roundToHours(*item.DurationMinutes)
	case svc.DefaultHours != nil:
		hours = *svc.DefaultHours
	}

	id := svc.ID
	return models.ResolvedService{
		Source:    models.ServiceSourceCatalog,
		CatalogID: &id,
		Name:      svc.Name,
		Price:     price,
		Hours:     hours,
	}
}

// customService синтезирует услугу для строки, не нашедшей совпадения.
func customService(item models.LineItem) models.ResolvedService {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = customServiceName
	}

	price := 0.0
	if item.Price != nil {
		price = *item.Price
	}

	hours := 1
	if item.DurationMinutes != nil {
		hours = roundToHours(*item.DurationMinutes)
	}

	return models.ResolvedService{
		Source:   models.ServiceSourceCustom,
		CustomID: uuid.NewString(),
		Name:     name,
		Price:    price,
		Hours:    hours,
	}
}

// roundToHours переводит минуты в часы с округлением к ближайшему целому.
func roundToHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60.0))
}
