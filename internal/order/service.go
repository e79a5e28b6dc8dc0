package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoItems                 = errors.New("order must contain at least one item")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type Service interface {
	CreateOrder(ctx context.Context, orderInput *Order) (*Order, error)
	GetOrderByCode(ctx context.Context, code string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, code string, newStatus Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOrder(ctx context.Context, orderInput *Order) (*Order, error) {
	if len(orderInput.Items) == 0 {
		log.Warn().Msg("service: attempt to create order with no items")
		return nil, ErrNoItems
	}

	if orderInput.Customer == "" {
		return nil, errors.New("service: customer name is required")
	}

	for i := range orderInput.Items {
		item := &orderInput.Items[i]

		if item.Quantity <= 0 {
			return nil, fmt.Errorf("service: order item quantity for product %s must be greater than zero", item.ProductID)
		}

		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("service: order item unit price for product %s cannot be negative", item.ProductID)
		}
	}

	if !orderInput.Status.Valid() {
		orderInput.Status = StatusProcessing
	}

	// The submitted total is not trusted: recompute from the line items so the
	// stored figure always covers them.
	orderInput.Total = orderInput.Subtotal()

	if orderInput.Code == "" {
		code, err := s.repo.NextCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("service: failed to assign order code: %w", err)
		}
		orderInput.Code = code
	}

	if err := s.repo.Create(ctx, orderInput); err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Str("order_code", orderInput.Code).Str("customer", orderInput.Customer).Msg("service: order created")

	return orderInput, nil
}

func (s *service) GetOrderByCode(ctx context.Context, code string) (*Order, error) {
	o, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Str("order_code", code).Msg("service: order not found")
			return nil, ErrOrderNotFound
		}

		log.Error().Err(err).Str("order_code", code).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}

	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *service) UpdateOrderStatus(ctx context.Context, code string, newStatus Status) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, newStatus)
	}

	current, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Str("order_code", code).Stringer("new_status", newStatus).Msg("service: order not found, cannot update status")
			return ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_code", code).Msg("service: failed to get order for status update")
		return fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if current.Status == newStatus {
		log.Info().Str("order_code", code).Stringer("status", newStatus).Msg("service: order status already set, no update needed")
		return nil
	}

	if !CanTransition(current.Status, newStatus) {
		log.Warn().
			Str("order_code", code).
			Stringer("current_status", current.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, current.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, code, newStatus); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Str("order_code", code).Stringer("new_status", newStatus).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Str("order_code", code).Stringer("old_status", current.Status).Stringer("new_status", newStatus).Msg("service: order status updated")

	return nil
}
