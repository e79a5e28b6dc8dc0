package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tai160903/viet-coffee-server/internal/checkout"
	"github.com/tai160903/viet-coffee-server/internal/order"
)

type mockOrderService struct {
	createOrderFunc func(ctx context.Context, o *order.Order) (*order.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, o *order.Order) (*order.Order, error) {
	return m.createOrderFunc(ctx, o)
}

func (m *mockOrderService) GetOrderByCode(ctx context.Context, code string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	return nil, nil
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, code string, newStatus order.Status) error {
	return nil
}

func newCheckoutService(orders order.Service, discountRate string) *checkout.Service {
	return checkout.NewService(orders, checkout.Config{
		TaxRate:      decimal.RequireFromString("0.08"),
		DiscountRate: decimal.RequireFromString(discountRate),
	})
}

func TestService_Summarize(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{}, "0.1")

	first := checkout.NewDraft(demoProduct(), checkout.Limits{})
	require.NoError(t, first.SelectSize("large"))
	first.SetQuantity(2)

	second := checkout.NewDraft(demoProduct(), checkout.Limits{})
	require.NoError(t, second.SelectSize("extra"))
	second.SetQuantity(3)

	summary := svc.Summarize([]*checkout.Draft{first, second})

	// 35.000*2 + 40.000*3.
	assert.True(t, vnd(190000).Equal(summary.Subtotal), "got %s", summary.Subtotal)
	assert.True(t, vnd(19000).Equal(summary.Discount), "got %s", summary.Discount)
	assert.True(t, vnd(171000).Equal(summary.TotalAfterDiscount()))
}

func TestService_Summarize_NoDrafts(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{}, "0")

	summary := svc.Summarize(nil)

	assert.True(t, decimal.Zero.Equal(summary.Subtotal))
	assert.True(t, decimal.Zero.Equal(summary.TotalAfterDiscount()))
}

func TestService_Submit_ValidationFailureBlocksWithoutError(t *testing.T) {
	called := false
	svc := newCheckoutService(&mockOrderService{
		createOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
			called = true
			return o, nil
		},
	}, "0")

	form := validCashForm()
	form.Email = "broken"

	created, fieldErrors, err := svc.Submit(context.Background(), checkout.Submission{
		Drafts: []*checkout.Draft{checkout.NewDraft(demoProduct(), checkout.Limits{})},
		Form:   form,
	})

	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Contains(t, fieldErrors, "email")
	assert.False(t, called)
}

func TestService_Submit_EmptyDrafts(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{}, "0")

	_, _, err := svc.Submit(context.Background(), checkout.Submission{Form: validCashForm()})

	assert.ErrorIs(t, err, checkout.ErrEmptyOrder)
}

func TestService_Submit_CashOrder(t *testing.T) {
	var submitted *order.Order
	svc := newCheckoutService(&mockOrderService{
		createOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
			submitted = o
			o.Code = "ORD-5124"
			return o, nil
		},
	}, "0")

	draft := checkout.NewDraft(demoProduct(), checkout.Limits{})
	require.NoError(t, draft.SelectSize("medium"))
	draft.SetQuantity(2)

	created, fieldErrors, err := svc.Submit(context.Background(), checkout.Submission{
		Drafts:     []*checkout.Draft{draft},
		Form:       validCashForm(),
		PickupTime: "10:30",
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	require.NotNil(t, created)

	assert.Equal(t, "ORD-5124", created.Code)
	assert.Equal(t, "Anh Nguyen", submitted.Customer)
	assert.Equal(t, "10:30", submitted.PickupTime)
	assert.Equal(t, order.StatusProcessing, submitted.Status)
	assert.Equal(t, order.MethodCash, submitted.Payment.Method)
	assert.Equal(t, order.PaymentPending, submitted.Payment.Status)

	require.Len(t, submitted.Items, 1)
	assert.Equal(t, 2, submitted.Items[0].Quantity)
	assert.True(t, vnd(30000).Equal(submitted.Items[0].UnitPrice))
}

func TestService_Submit_CardPaymentRecordsLast4(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{
		createOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
			return o, nil
		},
	}, "0")

	form := validCashForm()
	form.Method = checkout.MethodCard
	form.CardNumber = "4242 4242 4242 4242"
	form.ExpiryDate = "12/27"
	form.CVV = "123"

	created, fieldErrors, err := svc.Submit(context.Background(), checkout.Submission{
		Drafts: []*checkout.Draft{checkout.NewDraft(demoProduct(), checkout.Limits{})},
		Form:   form,
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.Equal(t, order.MethodCreditCard, created.Payment.Method)
	assert.Equal(t, order.PaymentPaid, created.Payment.Status)
	assert.Equal(t, "4242", created.Payment.Last4)
}

func TestService_Submit_EWalletRecordsPayerEmail(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{
		createOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
			return o, nil
		},
	}, "0")

	form := validCashForm()
	form.Method = checkout.MethodEWallet

	created, fieldErrors, err := svc.Submit(context.Background(), checkout.Submission{
		Drafts: []*checkout.Draft{checkout.NewDraft(demoProduct(), checkout.Limits{})},
		Form:   form,
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.Equal(t, order.MethodPayPal, created.Payment.Method)
	assert.Equal(t, "anh.nguyen@example.com", created.Payment.PayerEmail)
}

func TestService_Submit_InfrastructureFailure(t *testing.T) {
	svc := newCheckoutService(&mockOrderService{
		createOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
			return nil, errors.New("db down")
		},
	}, "0")

	_, fieldErrors, err := svc.Submit(context.Background(), checkout.Submission{
		Drafts: []*checkout.Draft{checkout.NewDraft(demoProduct(), checkout.Limits{})},
		Form:   validCashForm(),
	})

	require.Error(t, err)
	assert.Empty(t, fieldErrors)
}
