package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Product) (err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
		}
	}()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	queryProduct := `
		INSERT INTO products (id, name, name_en, description, long_description, base_price,
			images, rating, reviews, prep_time, category, popular, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.Exec(ctx, queryProduct,
		p.ID, p.Name, p.NameEn, p.Description, p.LongDescription, p.BasePrice,
		p.Images, p.Rating, p.Reviews, p.PrepTime, p.Category, p.Popular,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert product %s: %w", p.ID, err)
	}

	querySize := `
		INSERT INTO product_sizes (product_id, id, name, name_en, volume, surcharge)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, size := range p.Sizes {
		if _, err = tx.Exec(ctx, querySize, p.ID, size.ID, size.Name, size.NameEn, size.Volume, size.Surcharge); err != nil {
			return fmt.Errorf("repository: failed to insert size %s for product %s: %w", size.ID, p.ID, err)
		}
	}

	queryTemperature := `
		INSERT INTO product_temperatures (product_id, id, name, name_en)
		VALUES ($1, $2, $3, $4)
	`
	for _, t := range p.Temperatures {
		if _, err = tx.Exec(ctx, queryTemperature, p.ID, t.ID, t.Name, t.NameEn); err != nil {
			return fmt.Errorf("repository: failed to insert temperature %s for product %s: %w", t.ID, p.ID, err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, name, name_en, description, long_description, base_price,
			images, rating, reviews, prep_time, category, popular, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.NameEn, &p.Description, &p.LongDescription, &p.BasePrice,
		&p.Images, &p.Rating, &p.Reviews, &p.PrepTime, &p.Category, &p.Popular,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}

		return nil, fmt.Errorf("repository: failed to select product %s: %w", id, err)
	}

	if err := r.loadVariants(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, name_en, description, long_description, base_price,
			images, rating, reviews, prep_time, category, popular, created_at, updated_at
		FROM products
		ORDER BY name_en
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.NameEn, &p.Description, &p.LongDescription, &p.BasePrice,
			&p.Images, &p.Rating, &p.Reviews, &p.PrepTime, &p.Category, &p.Popular,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	for i := range products {
		if err := r.loadVariants(ctx, &products[i]); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (r *postgresRepository) loadVariants(ctx context.Context, p *Product) error {
	sizeRows, err := r.db.Query(ctx,
		`SELECT id, name, name_en, volume, surcharge FROM product_sizes WHERE product_id = $1 ORDER BY surcharge`, p.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to query sizes for product %s: %w", p.ID, err)
	}
	defer sizeRows.Close()

	p.Sizes = make([]SizeVariant, 0)
	for sizeRows.Next() {
		var size SizeVariant
		if err := sizeRows.Scan(&size.ID, &size.Name, &size.NameEn, &size.Volume, &size.Surcharge); err != nil {
			return fmt.Errorf("repository: failed to scan size for product %s: %w", p.ID, err)
		}
		p.Sizes = append(p.Sizes, size)
	}
	if err = sizeRows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating sizes for product %s: %w", p.ID, err)
	}

	tempRows, err := r.db.Query(ctx,
		`SELECT id, name, name_en FROM product_temperatures WHERE product_id = $1 ORDER BY id`, p.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to query temperatures for product %s: %w", p.ID, err)
	}
	defer tempRows.Close()

	p.Temperatures = make([]TemperatureVariant, 0)
	for tempRows.Next() {
		var t TemperatureVariant
		if err := tempRows.Scan(&t.ID, &t.Name, &t.NameEn); err != nil {
			return fmt.Errorf("repository: failed to scan temperature for product %s: %w", p.ID, err)
		}
		p.Temperatures = append(p.Temperatures, t)
	}
	if err = tempRows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating temperatures for product %s: %w", p.ID, err)
	}

	return nil
}
