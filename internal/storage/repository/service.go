package repository

import (
	"context"
	"fmt"

	"github.com/fieldray/fieldops/internal/models"
)

// CreateService вставляет новую запись каталога услуг и возвращает её ID.
func (s *Storage) CreateService(ctx context.Context, svc models.CatalogService) (int, error) {
	const op = "storage.CreateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO services (name, default_price, default_hours, active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		svc.Name, svc.DefaultPrice, svc.DefaultHours, svc.Active).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListServices возвращает записи каталога. При activeOnly == true
// деактивированные записи не возвращаются.
func (s *Storage) ListServices(ctx context.Context, activeOnly bool) ([]*models.CatalogService, error) {
	const op = "storage.ListServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, default_price, default_hours, active
			  FROM services`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY id`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.CatalogService
	for rows.Next() {
		var svc models.CatalogService
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.DefaultPrice,
			&svc.DefaultHours, &svc.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateService обновляет запись каталога по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateService(ctx context.Context, svc models.CatalogService, id int) (int, error) {
	const op = "storage.UpdateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services
			  SET name = $1, default_price = $2, default_hours = $3, active = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		svc.Name, svc.DefaultPrice, svc.DefaultHours, svc.Active, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeactivateService снимает флаг активности с записи каталога.
// Запись не удаляется, чтобы существующие заявки сохранили ссылки на неё.
func (s *Storage) DeactivateService(ctx context.Context, id int) (int, error) {
	const op = "storage.DeactivateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services SET active = false WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
