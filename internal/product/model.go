package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// SizeVariant is one selectable cup size. Surcharge is the additive price
// delta over the product's base price, zero for the default size.
type SizeVariant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	NameEn    string          `json:"name_en"`
	Volume    string          `json:"volume"`
	Surcharge decimal.Decimal `json:"price"`
}

// TemperatureVariant is a serving temperature option.
type TemperatureVariant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

type Product struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	NameEn          string               `json:"name_en"`
	Description     string               `json:"description"`
	LongDescription string               `json:"long_description,omitempty"`
	BasePrice       decimal.Decimal      `json:"base_price"`
	Images          []string             `json:"images"`
	Rating          float64              `json:"rating"`
	Reviews         int                  `json:"reviews"`
	PrepTime        string               `json:"prep_time"`
	Category        string               `json:"category"`
	Popular         bool                 `json:"popular"`
	Sizes           []SizeVariant        `json:"sizes"`
	Temperatures    []TemperatureVariant `json:"temperatures"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// SurchargeTable maps size id to surcharge for the pricing engine.
func (p Product) SurchargeTable() map[string]decimal.Decimal {
	table := make(map[string]decimal.Decimal, len(p.Sizes))
	for _, size := range p.Sizes {
		table[size.ID] = size.Surcharge
	}

	return table
}

// HasSize reports whether the product offers the given size id.
func (p Product) HasSize(id string) bool {
	for _, size := range p.Sizes {
		if size.ID == id {
			return true
		}
	}

	return false
}

// HasTemperature reports whether the product offers the given temperature id.
func (p Product) HasTemperature(id string) bool {
	for _, t := range p.Temperatures {
		if t.ID == id {
			return true
		}
	}

	return false
}
