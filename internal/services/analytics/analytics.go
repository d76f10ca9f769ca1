// Package analytics собирает сводку панели: агрегаты из БД и тренд
// выручки от внешнего сервиса аналитики. Сводка кешируется в Redis,
// отказ внешнего сервиса не роняет запрос.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldray/fieldops/internal/analyticsclient"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

const (
	summaryCacheKey = "analytics:summary"
	summaryCacheTTL = 2 * time.Minute
	trendMonths     = 6
)

// SummaryRepository описывает методы хранилища для агрегатов по заявкам.
type SummaryRepository interface {
	CountSummary(ctx context.Context, from, to time.Time) (*models.JobSummary, error)
}

// TrendClient запрашивает тренд выручки у внешнего сервиса.
type TrendClient interface {
	RevenueTrend(ctx context.Context, months int) (*analyticsclient.RevenueTrendResponse, error)
}

// Cache описывает методы кеша для сводки.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Summary сводка панели аналитики за период.
type Summary struct {
	From          time.Time                      `json:"from"`
	To            time.Time                      `json:"to"`
	TotalJobs     int                            `json:"total_jobs"`
	TotalRevenue  float64                        `json:"total_revenue"`
	CountByStatus map[string]int                 `json:"count_by_status"`
	Trend         []analyticsclient.MonthRevenue `json:"trend,omitempty"`
}

// AnalyticsService сервис сводки для панели.
type AnalyticsService struct {
	repo   SummaryRepository
	client TrendClient
	cache  Cache
	log    *slog.Logger
}

// NewAnalyticsService создает новый экземпляр AnalyticsService.
func NewAnalyticsService(repo SummaryRepository, client TrendClient, cache Cache, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, client: client, cache: cache, log: log}
}

// BuildSummary возвращает сводку за период. Агрегаты берутся из БД,
// тренд — от внешнего сервиса; при его отказе сводка возвращается без
// тренда. Результат кешируется на короткий срок.
func (s *AnalyticsService) BuildSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	const op = "services.analytics.BuildSummary"

	cacheKey := fmt.Sprintf("%s:%s:%s", summaryCacheKey,
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	var cached Summary
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read summary cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	counts, err := s.repo.CountSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &Summary{
		From:          from,
		To:            to,
		TotalJobs:     counts.TotalJobs,
		TotalRevenue:  counts.TotalRevenue,
		CountByStatus: counts.CountByStatus,
	}

	trend, err := s.client.RevenueTrend(ctx, trendMonths)
	if err != nil {
		s.log.Warn("analytics service unavailable, returning summary without trend", sl.Err(err))
	} else {
		summary.Trend = trend.Months
	}

	if err := s.cache.Set(cacheKey, summary, summaryCacheTTL); err != nil {
		s.log.Warn("failed to cache summary", sl.Err(err))
	}
	return summary, nil
}
