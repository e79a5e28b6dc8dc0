package order

import (
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DemoOrders returns the fixture set shown on the manager dashboard before a
// real backlog exists. Totals are in US dollars.
func DemoOrders() []Order {
	return []Order{
		{
			Code:       "ORD-5123",
			Customer:   "Anh Nguyen",
			Email:      "anh.nguyen@example.com",
			Phone:      "+1 (555) 123-4567",
			Date:       day(2025, time.June, 24),
			TimeOfDay:  "10:15 AM",
			PickupTime: "11:30 AM",
			Total:      usd("24.99"),
			Status:     StatusCompleted,
			Payment:    Payment{Method: MethodCreditCard, Status: PaymentPaid, Last4: "4242"},
			Items: []LineItem{
				{ProductID: "highlands-arabica-1kg", Name: "Highlands Arabica (1kg)", UnitPrice: usd("14.99"), Quantity: 1},
				{ProductID: "vietnamese-coffee-sampler", Name: "Vietnamese Coffee Sampler", UnitPrice: usd("9.99"), Quantity: 1},
			},
		},
		{
			Code:       "ORD-5122",
			Customer:   "Minh Tran",
			Email:      "minh.tran@example.com",
			Phone:      "+1 (555) 987-6543",
			Date:       day(2025, time.June, 23),
			TimeOfDay:  "2:30 PM",
			PickupTime: "4:00 PM",
			Total:      usd("35.50"),
			Status:     StatusProcessing,
			Payment:    Payment{Method: MethodPayPal, Status: PaymentPaid, PayerEmail: "minh.tran@example.com"},
			Items: []LineItem{
				{ProductID: "saigon-phin-filter-set", Name: "Saigon Phin Filter Set", UnitPrice: usd("19.99"), Quantity: 1},
				{ProductID: "robusta-dark-roast-500g", Name: "Robusta Dark Roast (500g)", UnitPrice: usd("8.99"), Quantity: 1},
				{ProductID: "ceramic-coffee-mug", Name: "Ceramic Coffee Mug", UnitPrice: usd("6.52"), Quantity: 1},
			},
		},
		{
			Code:       "ORD-5121",
			Customer:   "Linh Pham",
			Email:      "linh.pham@example.com",
			Phone:      "+1 (555) 456-7890",
			Date:       day(2025, time.June, 23),
			TimeOfDay:  "11:45 AM",
			PickupTime: "1:15 PM",
			Total:      usd("49.99"),
			Status:     StatusCompleted,
			Payment:    Payment{Method: MethodCreditCard, Status: PaymentPaid, Last4: "1234"},
			Items: []LineItem{
				{ProductID: "classic-coffee-bundle", Name: "Classic Coffee Bundle", UnitPrice: usd("49.99"), Quantity: 1},
			},
		},
		{
			Code:       "ORD-5120",
			Customer:   "Hoa Le",
			Email:      "hoa.le@example.com",
			Phone:      "+1 (555) 789-0123",
			Date:       day(2025, time.June, 22),
			TimeOfDay:  "9:20 AM",
			PickupTime: "10:45 AM",
			Total:      usd("32.99"),
			Status:     StatusShipped,
			Payment:    Payment{Method: MethodCash, Status: PaymentPending},
			Items: []LineItem{
				{ProductID: "vietnamese-coffee-sampler", Name: "Vietnamese Coffee Sampler", UnitPrice: usd("32.99"), Quantity: 1},
			},
		},
		{
			Code:       "ORD-5119",
			Customer:   "Tuan Vu",
			Email:      "tuan.vu@example.com",
			Phone:      "+1 (555) 234-5678",
			Date:       day(2025, time.June, 22),
			TimeOfDay:  "3:15 PM",
			PickupTime: "5:00 PM",
			Total:      usd("39.98"),
			Status:     StatusCompleted,
			Payment:    Payment{Method: MethodCreditCard, Status: PaymentPaid, Last4: "5678"},
			Items: []LineItem{
				{ProductID: "robusta-dark-roast-2kg", Name: "Robusta Dark Roast (2kg)", UnitPrice: usd("39.98"), Quantity: 1},
			},
		},
	}
}
