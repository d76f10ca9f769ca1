package quote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldray/fieldops/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateAcceptedQuote(ctx context.Context, quote models.AcceptedQuote) (int, error) {
	args := m.Called(ctx, quote)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListAcceptedQuotes(ctx context.Context, limit, offset int) ([]*models.AcceptedQuote, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AcceptedQuote), args.Error(1)
}

type ResolverMock struct{ mock.Mock }

func (m *ResolverMock) ResolveActive(ctx context.Context, items []models.LineItem) ([]models.ResolvedService, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResolvedService), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestQuoteService_Intake(t *testing.T) {
	repo := new(RepoMock)
	resolver := new(ResolverMock)
	service := NewQuoteService(repo, resolver, newNoopLogger())

	req := models.DummyAcceptedQuote{
		CustomerName: "Acme LLC",
		Source:       "quotes-portal",
		Items: []models.DummyLineItem{
			{Name: "Window Cleaning"},
			{Name: "Gutter Repair"},
		},
	}
	resolved := []models.ResolvedService{
		{Source: models.ServiceSourceCatalog, Name: "Window Cleaning", Price: 100, Hours: 2},
		{Source: models.ServiceSourceCustom, Name: "Custom Service", Price: 25, Hours: 1},
	}
	resolver.On("ResolveActive", mock.Anything, mock.Anything).Return(resolved, nil)
	repo.On("CreateAcceptedQuote", mock.Anything, mock.MatchedBy(func(q models.AcceptedQuote) bool {
		return q.Total == 125 && len(q.Items) == 2 && q.CustomerName == "Acme LLC"
	})).Return(7, nil)

	id, err := service.Intake(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	repo.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestQuoteService_Intake_CatalogUnavailable(t *testing.T) {
	repo := new(RepoMock)
	resolver := new(ResolverMock)
	service := NewQuoteService(repo, resolver, newNoopLogger())

	price := 80.0
	req := models.DummyAcceptedQuote{
		CustomerName: "Acme LLC",
		Items: []models.DummyLineItem{
			{Name: "Window Cleaning", Price: &price},
		},
	}
	resolver.On("ResolveActive", mock.Anything, mock.Anything).
		Return(nil, errors.New("redis down"))
	repo.On("CreateAcceptedQuote", mock.Anything, mock.MatchedBy(func(q models.AcceptedQuote) bool {
		return len(q.Items) == 1 &&
			q.Items[0].Source == models.ServiceSourceCustom &&
			q.Total == 80
	})).Return(8, nil)

	id, err := service.Intake(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestQuoteService_Intake_RepoError(t *testing.T) {
	repo := new(RepoMock)
	resolver := new(ResolverMock)
	service := NewQuoteService(repo, resolver, newNoopLogger())

	resolver.On("ResolveActive", mock.Anything, mock.Anything).
		Return([]models.ResolvedService{}, nil)
	repo.On("CreateAcceptedQuote", mock.Anything, mock.Anything).
		Return(0, errors.New("db down"))

	_, err := service.Intake(context.Background(), models.DummyAcceptedQuote{CustomerName: "x"})
	assert.Error(t, err)
}

func TestQuoteService_List_DefaultLimit(t *testing.T) {
	repo := new(RepoMock)
	service := NewQuoteService(repo, new(ResolverMock), newNoopLogger())

	repo.On("ListAcceptedQuotes", mock.Anything, 50, 0).Return([]*models.AcceptedQuote{}, nil)

	_, err := service.List(context.Background(), 0, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
