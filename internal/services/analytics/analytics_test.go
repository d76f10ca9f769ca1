package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldray/fieldops/internal/analyticsclient"
	"github.com/fieldray/fieldops/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountSummary(ctx context.Context, from, to time.Time) (*models.JobSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobSummary), args.Error(1)
}

type ClientMock struct{ mock.Mock }

func (m *ClientMock) RevenueTrend(ctx context.Context, months int) (*analyticsclient.RevenueTrendResponse, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsclient.RevenueTrendResponse), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func period() (time.Time, time.Time) {
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	return from, to
}

func TestAnalyticsService_BuildSummary(t *testing.T) {
	repo := new(RepoMock)
	client := new(ClientMock)
	cache := new(CacheMock)
	service := NewAnalyticsService(repo, client, cache, newNoopLogger())

	from, to := period()
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CountSummary", mock.Anything, from, to).Return(&models.JobSummary{
		TotalJobs:     10,
		TotalRevenue:  1500,
		CountByStatus: map[string]int{models.StatusCompleted: 6, models.StatusPending: 4},
	}, nil)
	client.On("RevenueTrend", mock.Anything, trendMonths).Return(&analyticsclient.RevenueTrendResponse{
		Months: []analyticsclient.MonthRevenue{{Month: "2025-04", Revenue: 1500, Jobs: 6}},
	}, nil)
	cache.On("Set", mock.Anything, mock.Anything, summaryCacheTTL).Return(nil)

	summary, err := service.BuildSummary(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalJobs)
	assert.Equal(t, 1500.0, summary.TotalRevenue)
	assert.Len(t, summary.Trend, 1)

	repo.AssertExpectations(t)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAnalyticsService_BuildSummary_TrendUnavailable(t *testing.T) {
	repo := new(RepoMock)
	client := new(ClientMock)
	cache := new(CacheMock)
	service := NewAnalyticsService(repo, client, cache, newNoopLogger())

	from, to := period()
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CountSummary", mock.Anything, from, to).Return(&models.JobSummary{TotalJobs: 2}, nil)
	client.On("RevenueTrend", mock.Anything, trendMonths).Return(nil, errors.New("timeout"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	summary, err := service.BuildSummary(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalJobs)
	assert.Empty(t, summary.Trend)
}

func TestAnalyticsService_BuildSummary_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	client := new(ClientMock)
	cache := new(CacheMock)
	service := NewAnalyticsService(repo, client, cache, newNoopLogger())

	from, to := period()
	cache.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*Summary)
		*out = Summary{TotalJobs: 99}
	}).Return(true, nil)

	summary, err := service.BuildSummary(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 99, summary.TotalJobs)
	repo.AssertNotCalled(t, "CountSummary", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "RevenueTrend", mock.Anything, mock.Anything)
}

func TestAnalyticsService_BuildSummary_RepoError(t *testing.T) {
	repo := new(RepoMock)
	client := new(ClientMock)
	cache := new(CacheMock)
	service := NewAnalyticsService(repo, client, cache, newNoopLogger())

	from, to := period()
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("CountSummary", mock.Anything, from, to).Return(nil, errors.New("db down"))

	_, err := service.BuildSummary(context.Background(), from, to)
	assert.Error(t, err)
	client.AssertNotCalled(t, "RevenueTrend", mock.Anything, mock.Anything)
}
