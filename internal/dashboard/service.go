package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 5
)

type Service interface {
	Overview(ctx context.Context, period Period) (*Overview, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func lookback(period Period) time.Duration {
	switch period {
	case PeriodMonth:
		return 30 * 24 * time.Hour
	case PeriodYear:
		return 365 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// Overview assembles the manager dashboard for one period. An unknown period
// falls back to the weekly view rather than failing the whole screen.
func (s *service) Overview(ctx context.Context, period Period) (*Overview, error) {
	if !period.Valid() {
		if period != "" {
			log.Warn().Str("period", string(period)).Msg("dashboard: unknown period, defaulting to week")
		}
		period = PeriodWeek
	}

	sales, err := s.repo.SalesSeries(ctx, period)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: failed to load sales series")
		return nil, fmt.Errorf("dashboard: failed to load sales series: %w", err)
	}

	stats, err := s.repo.Stats(ctx, time.Now().Add(-lookback(period)))
	if err != nil {
		log.Error().Err(err).Msg("dashboard: failed to load stats")
		return nil, fmt.Errorf("dashboard: failed to load stats: %w", err)
	}

	topProducts, err := s.repo.TopProducts(ctx, topProductsLimit)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: failed to load top products")
		return nil, fmt.Errorf("dashboard: failed to load top products: %w", err)
	}

	recentOrders, err := s.repo.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: failed to load recent orders")
		return nil, fmt.Errorf("dashboard: failed to load recent orders: %w", err)
	}

	return &Overview{
		Period:       period,
		Sales:        sales,
		Stats:        stats,
		TopProducts:  topProducts,
		RecentOrders: recentOrders,
	}, nil
}
