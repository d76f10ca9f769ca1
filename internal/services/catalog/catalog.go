// Package catalog содержит бизнес-логику каталога услуг: администрирование
// записей и сопоставление входящих строк услуг с каталогом.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldray/fieldops/internal/models"
)

// activeCatalogKey ключ кеша активного каталога.
const activeCatalogKey = "services:active"

// ServiceRepository определяет методы для работы с каталогом в хранилище.
type ServiceRepository interface {
	// CreateService добавляет запись каталога и возвращает её ID.
	CreateService(ctx context.Context, svc models.CatalogService) (int, error)
	// ListServices возвращает записи каталога, при activeOnly — только активные.
	ListServices(ctx context.Context, activeOnly bool) ([]*models.CatalogService, error)
	// UpdateService обновляет запись каталога по ID.
	UpdateService(ctx context.Context, svc models.CatalogService, id int) (int, error)
	// DeactivateService снимает флаг активности с записи.
	DeactivateService(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога услуг, включая кеширование
// активного каталога.
type CatalogService struct {
	repo  ServiceRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ServiceRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет запись каталога и инвалидирует кеш активного каталога.
func (s *CatalogService) Create(ctx context.Context, req models.DummyCatalogService) (int, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	svc := models.CatalogService{
		Name:         req.Name,
		DefaultPrice: req.DefaultPrice,
		DefaultHours: req.DefaultHours,
		Active:       active,
	}

	id, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return 0, err
	}
	s.log.Info("created catalog service", slog.Int("id", id), slog.String("name", svc.Name))

	s.invalidateActive()
	return id, nil
}

// List возвращает записи каталога.
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]*models.CatalogService, error) {
	return s.repo.ListServices(ctx, activeOnly)
}

// Update обновляет запись каталога и инвалидирует кеш активного каталога.
func (s *CatalogService) Update(ctx context.Context, req models.DummyCatalogService, id int) (int, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	svc := models.CatalogService{
		Name:         req.Name,
		DefaultPrice: req.DefaultPrice,
		DefaultHours: req.DefaultHours,
		Active:       active,
	}

	count, err := s.repo.UpdateService(ctx, svc, id)
	if err != nil {
		return 0, err
	}
	s.invalidateActive()
	return count, nil
}

// Deactivate снимает флаг активности с записи каталога.
func (s *CatalogService) Deactivate(ctx context.Context, id int) (int, error) {
	count, err := s.repo.DeactivateService(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidateActive()
	return count, nil
}

// ActiveCatalog возвращает активные записи каталога, используя кеш.
func (s *CatalogService) ActiveCatalog(ctx context.Context) ([]*models.CatalogService, error) {
	var cached []*models.CatalogService
	found, err := s.cache.Get(activeCatalogKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	catalog, err := s.repo.ListServices(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(activeCatalogKey, catalog, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache active catalog", slog.Any("err", err))
	}
	return catalog, nil
}

// ResolveActive сопоставляет строки услуг с активным каталогом.
func (s *CatalogService) ResolveActive(ctx context.Context, items []models.LineItem) ([]models.ResolvedService, error) {
	catalog, err := s.ActiveCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(items, catalog), nil
}

func (s *CatalogService) invalidateActive() {
	if err := s.cache.Invalidate(activeCatalogKey); err != nil {
		s.log.Warn("failed to invalidate catalog cache", slog.Any("err", err))
	}
}
