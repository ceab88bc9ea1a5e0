package domain

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceKind tags which shape a Price has.
type PriceKind int

const (
	PriceKindUnset PriceKind = iota
	PriceKindExact
	PriceKindRange
)

// Price is either an exact amount, a min/max range, or unset.
// Amounts are whole currency units (Rupiah has no minor unit in practice).
type Price struct {
	kind   PriceKind
	amount float64
	min    float64
	max    float64
}

// PriceUnset returns a Price with no amount.
func PriceUnset() Price {
	return Price{kind: PriceKindUnset}
}

// PriceExact returns a single-amount Price.
func PriceExact(amount float64) Price {
	return Price{kind: PriceKindExact, amount: amount}
}

// PriceRange returns a min/max Price.
func PriceRange(min, max float64) Price {
	return Price{kind: PriceKindRange, min: min, max: max}
}

// ResolvePrice turns the stored price / priceMin / priceMax trio into a Price.
// An exact price wins; a range needs both bounds.
func ResolvePrice(price, priceMin, priceMax *float64) Price {
	switch {
	case price != nil:
		return PriceExact(*price)
	case priceMin != nil && priceMax != nil:
		return PriceRange(*priceMin, *priceMax)
	default:
		return PriceUnset()
	}
}

func (p Price) Kind() PriceKind { return p.kind }

// Amount returns the exact amount and whether the price is exact.
func (p Price) Amount() (float64, bool) {
	return p.amount, p.kind == PriceKindExact
}

// Bounds returns the range bounds and whether the price is a range.
func (p Price) Bounds() (min, max float64, ok bool) {
	return p.min, p.max, p.kind == PriceKindRange
}

var rupiah = message.NewPrinter(language.Indonesian)

// Format renders the price in Indonesian Rupiah without fraction digits,
// e.g. "Rp 25.000", "Rp 10.000 - Rp 20.000" or "N/A".
func (p Price) Format() string {
	switch p.kind {
	case PriceKindExact:
		return formatRupiah(p.amount)
	case PriceKindRange:
		return formatRupiah(p.min) + " - " + formatRupiah(p.max)
	default:
		return "N/A"
	}
}

func formatRupiah(v float64) string {
	return rupiah.Sprintf("Rp %d", int64(math.Round(v)))
}
