package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tai160903/viet-coffee-server/internal/dashboard"
)

type mockDashboardRepository struct {
	salesSeriesFunc  func(ctx context.Context, period dashboard.Period) (dashboard.SalesSeries, error)
	statsFunc        func(ctx context.Context, since time.Time) (dashboard.Stats, error)
	topProductsFunc  func(ctx context.Context, limit int) ([]dashboard.TopProduct, error)
	recentOrdersFunc func(ctx context.Context, limit int) ([]dashboard.RecentOrder, error)
}

func (m *mockDashboardRepository) SalesSeries(ctx context.Context, period dashboard.Period) (dashboard.SalesSeries, error) {
	return m.salesSeriesFunc(ctx, period)
}

func (m *mockDashboardRepository) Stats(ctx context.Context, since time.Time) (dashboard.Stats, error) {
	return m.statsFunc(ctx, since)
}

func (m *mockDashboardRepository) TopProducts(ctx context.Context, limit int) ([]dashboard.TopProduct, error) {
	return m.topProductsFunc(ctx, limit)
}

func (m *mockDashboardRepository) RecentOrders(ctx context.Context, limit int) ([]dashboard.RecentOrder, error) {
	return m.recentOrdersFunc(ctx, limit)
}

func happyRepo() *mockDashboardRepository {
	return &mockDashboardRepository{
		salesSeriesFunc: func(ctx context.Context, period dashboard.Period) (dashboard.SalesSeries, error) {
			return dashboard.SalesSeries{
				Labels: []string{"Mon", "Tue"},
				Values: []decimal.Decimal{decimal.NewFromInt(120000), decimal.NewFromInt(95000)},
			}, nil
		},
		statsFunc: func(ctx context.Context, since time.Time) (dashboard.Stats, error) {
			return dashboard.Stats{Orders: 42}, nil
		},
		topProductsFunc: func(ctx context.Context, limit int) ([]dashboard.TopProduct, error) {
			return []dashboard.TopProduct{{Name: "Cà Phê Phin Truyền Thống", Sales: 18}}, nil
		},
		recentOrdersFunc: func(ctx context.Context, limit int) ([]dashboard.RecentOrder, error) {
			return []dashboard.RecentOrder{{Code: "ORD-5123"}}, nil
		},
	}
}

func TestService_Overview(t *testing.T) {
	var gotPeriod dashboard.Period
	var gotTopLimit, gotRecentLimit int

	repo := happyRepo()
	inner := repo.salesSeriesFunc
	repo.salesSeriesFunc = func(ctx context.Context, period dashboard.Period) (dashboard.SalesSeries, error) {
		gotPeriod = period
		return inner(ctx, period)
	}
	innerTop := repo.topProductsFunc
	repo.topProductsFunc = func(ctx context.Context, limit int) ([]dashboard.TopProduct, error) {
		gotTopLimit = limit
		return innerTop(ctx, limit)
	}
	innerRecent := repo.recentOrdersFunc
	repo.recentOrdersFunc = func(ctx context.Context, limit int) ([]dashboard.RecentOrder, error) {
		gotRecentLimit = limit
		return innerRecent(ctx, limit)
	}

	svc := dashboard.NewService(repo)

	overview, err := svc.Overview(context.Background(), dashboard.PeriodMonth)
	require.NoError(t, err)

	assert.Equal(t, dashboard.PeriodMonth, overview.Period)
	assert.Equal(t, dashboard.PeriodMonth, gotPeriod)
	assert.Equal(t, 5, gotTopLimit)
	assert.Equal(t, 5, gotRecentLimit)
	assert.Len(t, overview.Sales.Labels, 2)
	assert.Equal(t, 42, overview.Stats.Orders)
	require.Len(t, overview.RecentOrders, 1)
	assert.Equal(t, "ORD-5123", overview.RecentOrders[0].Code)
}

func TestService_Overview_UnknownPeriodDefaultsToWeek(t *testing.T) {
	var gotPeriod dashboard.Period
	repo := happyRepo()
	inner := repo.salesSeriesFunc
	repo.salesSeriesFunc = func(ctx context.Context, period dashboard.Period) (dashboard.SalesSeries, error) {
		gotPeriod = period
		return inner(ctx, period)
	}

	svc := dashboard.NewService(repo)

	overview, err := svc.Overview(context.Background(), dashboard.Period("decade"))
	require.NoError(t, err)

	assert.Equal(t, dashboard.PeriodWeek, overview.Period)
	assert.Equal(t, dashboard.PeriodWeek, gotPeriod)
}

func TestService_Overview_RepositoryFailure(t *testing.T) {
	repo := happyRepo()
	repo.statsFunc = func(ctx context.Context, since time.Time) (dashboard.Stats, error) {
		return dashboard.Stats{}, errors.New("db down")
	}

	svc := dashboard.NewService(repo)

	_, err := svc.Overview(context.Background(), dashboard.PeriodWeek)
	assert.Error(t, err)
}
