package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	SalesSeries(ctx context.Context, period Period) (SalesSeries, error)
	Stats(ctx context.Context, since time.Time) (Stats, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// seriesSpec maps a period onto its bucket truncation, lookback window and
// label rendering.
type seriesSpec struct {
	trunc    string
	lookback string
	label    string
}

var seriesSpecs = map[Period]seriesSpec{
	PeriodWeek:  {trunc: "day", lookback: "7 days", label: "Dy"},
	PeriodMonth: {trunc: "week", lookback: "1 month", label: `"W"W`},
	PeriodYear:  {trunc: "month", lookback: "1 year", label: "Mon"},
}

func (r *postgresRepository) SalesSeries(ctx context.Context, period Period) (SalesSeries, error) {
	spec, ok := seriesSpecs[period]
	if !ok {
		spec = seriesSpecs[PeriodWeek]
	}

	query := fmt.Sprintf(`
		SELECT to_char(date_trunc('%[1]s', order_date), '%[2]s') AS label,
			COALESCE(SUM(total), 0) AS value
		FROM orders
		WHERE order_date >= now() - interval '%[3]s'
		GROUP BY date_trunc('%[1]s', order_date)
		ORDER BY date_trunc('%[1]s', order_date)
	`, spec.trunc, spec.label, spec.lookback)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return SalesSeries{}, fmt.Errorf("repository: failed to query sales series: %w", err)
	}
	defer rows.Close()

	series := SalesSeries{Labels: []string{}, Values: []decimal.Decimal{}}
	for rows.Next() {
		var label string
		var value decimal.Decimal
		if err := rows.Scan(&label, &value); err != nil {
			return SalesSeries{}, fmt.Errorf("repository: failed to scan sales bucket: %w", err)
		}
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, value)
	}
	if err = rows.Err(); err != nil {
		return SalesSeries{}, fmt.Errorf("repository: error iterating sales buckets: %w", err)
	}

	return series, nil
}

func (r *postgresRepository) Stats(ctx context.Context, since time.Time) (Stats, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*), COUNT(DISTINCT email)
		FROM orders
		WHERE order_date >= $1
	`

	var stats Stats
	if err := r.db.QueryRow(ctx, query, since).Scan(&stats.Revenue, &stats.Orders, &stats.Customers); err != nil {
		return Stats{}, fmt.Errorf("repository: failed to query stats: %w", err)
	}

	return stats, nil
}

func (r *postgresRepository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	query := `
		SELECT name,
			SUM(quantity) AS sales,
			(100 * SUM(quantity) / GREATEST(SUM(SUM(quantity)) OVER (), 1))::int AS percent
		FROM order_items
		GROUP BY name
		ORDER BY sales DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query top products: %w", err)
	}
	defer rows.Close()

	products := make([]TopProduct, 0, limit)
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.Name, &p.Sales, &p.Percent); err != nil {
			return nil, fmt.Errorf("repository: failed to scan top product: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating top products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	query := `
		SELECT o.code, o.customer, COALESCE(i.name, ''), o.order_date, o.total, o.status
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT name FROM order_items WHERE order_id = o.id ORDER BY unit_price DESC LIMIT 1
		) i ON true
		ORDER BY o.order_date DESC, o.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query recent orders: %w", err)
	}
	defer rows.Close()

	orders := make([]RecentOrder, 0, limit)
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.Code, &o.Customer, &o.Product, &o.Date, &o.Amount, &o.Status); err != nil {
			return nil, fmt.Errorf("repository: failed to scan recent order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating recent orders: %w", err)
	}

	return orders, nil
}
