package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByCode(ctx context.Context, code string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, code string, newStatus Status) error
	NextCode(ctx context.Context) (string, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, code, customer, email, phone, order_date, order_time, pickup_time,
		total, status, payment_method, payment_status, payment_last4, payment_payer_email,
		created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, orderInput *Order) (err error) {
	if orderInput.ID == uuid.Nil {
		genID, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order ID: %w", genErr)
		}
		orderInput.ID = genID
	}

	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Str("order_code", orderInput.Code).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Str("order_code", orderInput.Code).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	now := time.Now().UTC()
	orderInput.CreatedAt = now
	orderInput.UpdatedAt = now

	queryOrder := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.Exec(ctx, queryOrder,
		orderInput.ID,
		orderInput.Code,
		orderInput.Customer,
		orderInput.Email,
		orderInput.Phone,
		orderInput.Date,
		orderInput.TimeOfDay,
		orderInput.PickupTime,
		orderInput.Total,
		string(orderInput.Status),
		string(orderInput.Payment.Method),
		string(orderInput.Payment.Status),
		orderInput.Payment.Last4,
		orderInput.Payment.PayerEmail,
		orderInput.CreatedAt,
		orderInput.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (id, order_id, product_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range orderInput.Items {
		item := &orderInput.Items[i]

		itemID, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order item ID: %w", genErr)
		}
		item.ID = itemID
		item.OrderID = orderInput.ID

		_, err = tx.Exec(ctx, queryItem,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to insert order item for order %s: %w", orderInput.Code, err)
		}
	}

	return nil
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE code = $1`

	var o Order
	err := r.db.QueryRow(ctx, query, code).Scan(
		&o.ID,
		&o.Code,
		&o.Customer,
		&o.Email,
		&o.Phone,
		&o.Date,
		&o.TimeOfDay,
		&o.PickupTime,
		&o.Total,
		&o.Status,
		&o.Payment.Method,
		&o.Payment.Status,
		&o.Payment.Last4,
		&o.Payment.PayerEmail,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		return nil, fmt.Errorf("repository: failed to select order by code %s: %w", code, err)
	}

	items, err := r.itemsForOrders(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []LineItem{}
	}

	return &o, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	var orderIDs []uuid.UUID
	for rows.Next() {
		var o Order
		err := rows.Scan(
			&o.ID,
			&o.Code,
			&o.Customer,
			&o.Email,
			&o.Phone,
			&o.Date,
			&o.TimeOfDay,
			&o.PickupTime,
			&o.Total,
			&o.Status,
			&o.Payment.Method,
			&o.Payment.Status,
			&o.Payment.Last4,
			&o.Payment.PayerEmail,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		o.Items = []LineItem{}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []Order{}, nil
	}

	items, err := r.itemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if list, ok := items[orders[i].ID]; ok {
			orders[i].Items = list
		}
	}

	return orders, nil
}

func (r *postgresRepository) itemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]LineItem, error) {
	query := `
		SELECT id, order_id, product_id, name, unit_price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]LineItem)
	for rows.Next() {
		var item LineItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, code string, newStatus Status) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE code = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, string(newStatus), time.Now().UTC(), code)
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Str("new_status", string(newStatus)).Msg("repository: failed to update order status")
		return fmt.Errorf("repository: failed to update order status %s: %w", code, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Str("order_code", code).Str("new_status", string(newStatus)).Msg("repository: order not found for status update")
		return ErrOrderNotFound
	}

	return nil
}

// NextCode reserves the next human-readable order code from the database
// sequence, e.g. "ORD-5124".
func (r *postgresRepository) NextCode(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('order_code_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("repository: failed to reserve order code: %w", err)
	}

	return fmt.Sprintf("ORD-%d", n), nil
}
