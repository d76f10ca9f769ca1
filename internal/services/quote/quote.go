// Package quote реализует приём принятых котировок через webhook.
// Строки услуг разрешаются сопоставителем каталога; неразрешённые
// строки превращаются в пользовательские услуги, запрос не отклоняется.
package quote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
	"github.com/fieldray/fieldops/internal/services/catalog"
)

// QuoteRepository описывает методы хранилища для котировок.
type QuoteRepository interface {
	CreateAcceptedQuote(ctx context.Context, quote models.AcceptedQuote) (int, error)
	ListAcceptedQuotes(ctx context.Context, limit, offset int) ([]*models.AcceptedQuote, error)
}

// Resolver сопоставляет строки услуг с активным каталогом.
type Resolver interface {
	ResolveActive(ctx context.Context, items []models.LineItem) ([]models.ResolvedService, error)
}

// QuoteService сервис приёма и просмотра принятых котировок.
type QuoteService struct {
	repo     QuoteRepository
	resolver Resolver
	log      *slog.Logger
}

// NewQuoteService создает новый экземпляр QuoteService.
func NewQuoteService(repo QuoteRepository, resolver Resolver, log *slog.Logger) *QuoteService {
	return &QuoteService{repo: repo, resolver: resolver, log: log}
}

// Intake принимает котировку из webhook: разрешает строки услуг,
// считает сумму и сохраняет запись. Если каталог недоступен, строки
// разрешаются без каталога и становятся пользовательскими услугами.
func (s *QuoteService) Intake(ctx context.Context, req models.DummyAcceptedQuote) (int, error) {
	const op = "services.quote.Intake"

	items := make([]models.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.ToLineItem())
	}

	resolved, err := s.resolver.ResolveActive(ctx, items)
	if err != nil {
		s.log.Warn("catalog unavailable, resolving quote items as custom services", sl.Err(err))
		resolved = catalog.Resolve(items, nil)
	}

	var total float64
	for _, r := range resolved {
		total += r.Price
	}

	quote := models.AcceptedQuote{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Source:        req.Source,
		Items:         resolved,
		Total:         total,
		ReceivedAt:    time.Now().UTC(),
	}

	id, err := s.repo.CreateAcceptedQuote(ctx, quote)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// List возвращает принятые котировки, новые первыми.
func (s *QuoteService) List(ctx context.Context, limit, offset int) ([]*models.AcceptedQuote, error) {
	const op = "services.quote.List"
	if limit <= 0 {
		limit = 50
	}
	res, err := s.repo.ListAcceptedQuotes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
