// Package checkout holds the page-local order draft a customer composes on a
// product page and the payment flow that turns drafts into orders. Drafts are
// ephemeral: they live only as long as the page that owns them.
package checkout

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tai160903/viet-coffee-server/internal/pricing"
	"github.com/tai160903/viet-coffee-server/internal/product"
)

var (
	ErrUnknownSize        = errors.New("unknown size variant")
	ErrUnknownTemperature = errors.New("unknown temperature variant")
)

// Limits bounds what a single draft may hold. MaxQuantity 0 means unlimited,
// which is the storefront's observed behavior.
type Limits struct {
	MaxQuantity int
	NoteLimit   int
}

// Draft is one product being composed into an order line.
type Draft struct {
	Product       product.Product
	SizeID        string
	TemperatureID string
	Notes         string
	Quantity      int

	limits Limits
}

// NewDraft starts a draft at quantity 1 with the product's first size and
// temperature preselected.
func NewDraft(p product.Product, limits Limits) *Draft {
	d := &Draft{
		Product:  p,
		Quantity: 1,
		limits:   limits,
	}
	if len(p.Sizes) > 0 {
		d.SizeID = p.Sizes[0].ID
	}
	if len(p.Temperatures) > 0 {
		d.TemperatureID = p.Temperatures[0].ID
	}

	return d
}

// SelectSize picks a size variant. The pricing lookup would tolerate an
// unknown id (zero surcharge), but the selector rejects it so the UI cannot
// offer a size the product does not have.
func (d *Draft) SelectSize(id string) error {
	if !d.Product.HasSize(id) {
		return ErrUnknownSize
	}
	d.SizeID = id

	return nil
}

func (d *Draft) SelectTemperature(id string) error {
	if !d.Product.HasTemperature(id) {
		return ErrUnknownTemperature
	}
	d.TemperatureID = id

	return nil
}

// SetNotes stores free-text preparation notes, truncated to the note limit.
func (d *Draft) SetNotes(notes string) {
	if d.limits.NoteLimit > 0 && len(notes) > d.limits.NoteLimit {
		notes = notes[:d.limits.NoteLimit]
	}
	d.Notes = notes
}

func (d *Draft) Increment() {
	d.Quantity = pricing.Increment(d.Quantity, d.limits.MaxQuantity)
}

// Decrement lowers the quantity, never below 1.
func (d *Draft) Decrement() {
	d.Quantity = pricing.Decrement(d.Quantity)
}

// SetQuantity clamps an arbitrary quantity into range.
func (d *Draft) SetQuantity(q int) {
	d.Quantity = pricing.ClampQuantity(q, d.limits.MaxQuantity)
}

// UnitPrice is the base price plus the surcharge of the selected size.
func (d *Draft) UnitPrice() decimal.Decimal {
	return pricing.LineTotal(d.Product.BasePrice, d.Product.SurchargeTable(), d.SizeID, 1)
}

// Total is (basePrice + surcharge) * quantity.
func (d *Draft) Total() decimal.Decimal {
	return pricing.LineTotal(d.Product.BasePrice, d.Product.SurchargeTable(), d.SizeID, d.Quantity)
}
