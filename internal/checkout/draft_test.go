package checkout_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tai160903/viet-coffee-server/internal/checkout"
	"github.com/tai160903/viet-coffee-server/internal/product"
)

func vnd(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func demoProduct() product.Product {
	return product.Demo("phin-sua-da")
}

func TestNewDraft_Defaults(t *testing.T) {
	p := demoProduct()
	d := checkout.NewDraft(p, checkout.Limits{})

	assert.Equal(t, 1, d.Quantity)
	require.NotEmpty(t, p.Sizes)
	assert.Equal(t, p.Sizes[0].ID, d.SizeID)
	require.NotEmpty(t, p.Temperatures)
	assert.Equal(t, p.Temperatures[0].ID, d.TemperatureID)
}

func TestDraft_SelectSize(t *testing.T) {
	d := checkout.NewDraft(demoProduct(), checkout.Limits{})

	require.NoError(t, d.SelectSize("medium"))
	assert.Equal(t, "medium", d.SizeID)

	err := d.SelectSize("venti")
	assert.ErrorIs(t, err, checkout.ErrUnknownSize)
	assert.Equal(t, "medium", d.SizeID)
}

func TestDraft_SelectTemperature(t *testing.T) {
	d := checkout.NewDraft(demoProduct(), checkout.Limits{})

	require.NoError(t, d.SelectTemperature("hot"))
	assert.Equal(t, "hot", d.TemperatureID)

	err := d.SelectTemperature("lukewarm")
	assert.ErrorIs(t, err, checkout.ErrUnknownTemperature)
	assert.Equal(t, "hot", d.TemperatureID)
}

func TestDraft_QuantityBounds(t *testing.T) {
	d := checkout.NewDraft(demoProduct(), checkout.Limits{})

	d.Decrement()
	assert.Equal(t, 1, d.Quantity, "quantity never drops below 1")

	d.Increment()
	d.Increment()
	assert.Equal(t, 3, d.Quantity)

	d.SetQuantity(-5)
	assert.Equal(t, 1, d.Quantity)
}

func TestDraft_QuantityCap(t *testing.T) {
	d := checkout.NewDraft(demoProduct(), checkout.Limits{MaxQuantity: 3})

	d.SetQuantity(10)
	assert.Equal(t, 3, d.Quantity)

	d.Increment()
	assert.Equal(t, 3, d.Quantity)
}

func TestDraft_SetNotesTruncates(t *testing.T) {
	d := checkout.NewDraft(demoProduct(), checkout.Limits{NoteLimit: 10})

	d.SetNotes(strings.Repeat("x", 25))
	assert.Len(t, d.Notes, 10)

	d.SetNotes("less sugar")
	assert.Equal(t, "less sugar", d.Notes)
}

func TestDraft_Totals(t *testing.T) {
	p := demoProduct()
	d := checkout.NewDraft(p, checkout.Limits{})

	require.NoError(t, d.SelectSize("medium"))
	d.SetQuantity(2)

	// base 25.000 + medium surcharge 5.000, times two.
	assert.True(t, vnd(30000).Equal(d.UnitPrice()), "got %s", d.UnitPrice())
	assert.True(t, vnd(60000).Equal(d.Total()), "got %s", d.Total())
}

func TestDraft_TotalScalesWithSize(t *testing.T) {
	tests := []struct {
		sizeID string
		want   decimal.Decimal
	}{
		{sizeID: "small", want: vnd(25000)},
		{sizeID: "medium", want: vnd(30000)},
		{sizeID: "large", want: vnd(35000)},
		{sizeID: "extra", want: vnd(40000)},
	}

	for _, tt := range tests {
		t.Run(tt.sizeID, func(t *testing.T) {
			d := checkout.NewDraft(demoProduct(), checkout.Limits{})
			require.NoError(t, d.SelectSize(tt.sizeID))
			assert.True(t, tt.want.Equal(d.Total()), "want %s, got %s", tt.want, d.Total())
		})
	}
}
