package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tai160903/viet-coffee-server/internal/order"
	"github.com/tai160903/viet-coffee-server/internal/pricing"
)

var ErrEmptyOrder = errors.New("checkout requires at least one item")

// Config carries the product-level pricing knobs. TaxRate and DiscountRate are
// independent named values because the storefront's two views apply them
// through two different, unreconciled formulas.
type Config struct {
	TaxRate      decimal.Decimal
	DiscountRate decimal.Decimal
	Limits       Limits
}

type Service struct {
	orders   order.Service
	validate *validator.Validate
	cfg      Config
}

func NewService(orders order.Service, cfg Config) *Service {
	return &Service{
		orders:   orders,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Limits exposes the draft bounds so callers construct drafts consistently.
func (s *Service) Limits() Limits {
	return s.cfg.Limits
}

// Summarize folds the drafts into a payment-view summary. The discount is
// DiscountRate of the subtotal; the payment view charges TotalAfterDiscount,
// the manager view displays TotalWithTax.
func (s *Service) Summarize(drafts []*Draft) pricing.Summary {
	subtotal := decimal.Zero
	for _, d := range drafts {
		subtotal = subtotal.Add(d.Total())
	}

	return pricing.Summary{
		Subtotal: subtotal,
		Discount: subtotal.Mul(s.cfg.DiscountRate).Round(0),
		TaxRate:  s.cfg.TaxRate,
	}
}

// Submission is one completed checkout: the composed drafts plus the payment
// form and pickup details.
type Submission struct {
	Drafts     []*Draft
	Form       PaymentForm
	PickupTime string
	OrderNotes string
}

// Submit validates the payment form and creates the order. Validation
// failures come back as the per-field message map and block submission
// without being an error; only infrastructure failures return err.
func (s *Service) Submit(ctx context.Context, sub Submission) (*order.Order, map[string]string, error) {
	if fieldErrors := Validate(s.validate, sub.Form); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	if len(sub.Drafts) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	items := make([]order.LineItem, 0, len(sub.Drafts))
	for _, d := range sub.Drafts {
		items = append(items, order.LineItem{
			ProductID: d.Product.ID,
			Name:      d.Product.Name,
			UnitPrice: d.UnitPrice(),
			Quantity:  d.Quantity,
		})
	}

	now := time.Now()
	o := &order.Order{
		Customer:   sub.Form.FullName,
		Email:      sub.Form.Email,
		Phone:      sub.Form.Phone,
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TimeOfDay:  now.Format("3:04 PM"),
		PickupTime: sub.PickupTime,
		Status:     order.StatusProcessing,
		Payment:    paymentFor(sub.Form),
		Items:      items,
	}

	created, err := s.orders.CreateOrder(ctx, o)
	if err != nil {
		log.Error().Err(err).Msg("checkout: failed to create order")
		return nil, nil, fmt.Errorf("checkout: failed to create order: %w", err)
	}

	log.Info().Str("order_code", created.Code).Str("method", sub.Form.Method).Msg("checkout: order submitted")

	return created, nil, nil
}

// paymentFor maps the form's method onto the order payment record. Cash is
// settled at pickup, so it stays pending; card and wallet payments are
// recorded as paid.
func paymentFor(form PaymentForm) order.Payment {
	switch form.Method {
	case MethodCard:
		return order.Payment{
			Method: order.MethodCreditCard,
			Status: order.PaymentPaid,
			Last4:  Last4(form.CardNumber),
		}
	case MethodEWallet:
		return order.Payment{
			Method:     order.MethodPayPal,
			Status:     order.PaymentPaid,
			PayerEmail: form.Email,
		}
	default:
		return order.Payment{
			Method: order.MethodCash,
			Status: order.PaymentPending,
		}
	}
}
