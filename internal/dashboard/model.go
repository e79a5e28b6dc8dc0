package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tai160903/viet-coffee-server/internal/order"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Valid reports whether p is a selectable reporting period.
func (p Period) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}

	return false
}

// SalesSeries is one chart line: labels and values index-aligned.
type SalesSeries struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// Stats are the dashboard's top cards.
type Stats struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int             `json:"orders"`
	Customers int             `json:"customers"`
}

type TopProduct struct {
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Percent int    `json:"percent"`
}

type RecentOrder struct {
	Code     string          `json:"id"`
	Customer string          `json:"customer"`
	Product  string          `json:"product"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Status   order.Status    `json:"status"`
}

// Overview is the full dashboard payload for one period.
type Overview struct {
	Period       Period        `json:"period"`
	Sales        SalesSeries   `json:"sales"`
	Stats        Stats         `json:"stats"`
	TopProducts  []TopProduct  `json:"top_products"`
	RecentOrders []RecentOrder `json:"recent_orders"`
}
