package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fieldray/fieldops/internal/models"
)

// CreateAcceptedQuote сохраняет принятую котировку. Разрешённые строки
// услуг сериализуются в JSONB-колонку items.
func (s *Storage) CreateAcceptedQuote(ctx context.Context, quote models.AcceptedQuote) (int, error) {
	const op = "storage.CreateAcceptedQuote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, err := json.Marshal(quote.Items)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO accepted_quotes (customer_name, customer_email, customer_phone,
			  source, items, total, received_at)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)
		  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		quote.CustomerName, quote.CustomerEmail, quote.CustomerPhone,
		quote.Source, items, quote.Total, quote.ReceivedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAcceptedQuotes возвращает принятые котировки с пагинацией,
// новые первыми.
func (s *Storage) ListAcceptedQuotes(ctx context.Context, limit, offset int) ([]*models.AcceptedQuote, error) {
	const op = "storage.ListAcceptedQuotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, customer_name, customer_email, customer_phone, source, items, total, received_at
			  FROM accepted_quotes
			  ORDER BY received_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.AcceptedQuote
	for rows.Next() {
		var quote models.AcceptedQuote
		var items []byte
		if err := rows.Scan(&quote.ID, &quote.CustomerName, &quote.CustomerEmail,
			&quote.CustomerPhone, &quote.Source, &items, &quote.Total, &quote.ReceivedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(items, &quote.Items); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
