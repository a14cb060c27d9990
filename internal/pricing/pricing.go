// Package pricing computes cart totals. Everything here is a pure function
// of the cart line items and the active promo discount; money stays in
// decimals internally and is rounded only at presentation and transmission
// boundaries.
package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrcoder-akp/hotelstay-client/internal/domain"
	"github.com/mrcoder-akp/hotelstay-client/pkg/errors"
)

// taxRate is the fixed 18% GST applied to the subtotal
var taxRate = decimal.NewFromFloat(0.18)

// promoCodes maps promo codes to their discount percentage
var promoCodes = map[string]int64{
	"SAVE10":    10,
	"SAVE20":    20,
	"WELCOME15": 15,
}

// LookupPromo resolves a promo code to its discount percentage,
// case-insensitively. Unknown codes return 0 and a validation error so the
// caller resets any previously applied discount instead of silently keeping
// it.
func LookupPromo(code string) (int64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if pct, ok := promoCodes[normalized]; ok {
		return pct, nil
	}
	return 0, &errors.ErrValidation{Message: "invalid promo code", Fields: map[string]string{"promoCode": code}}
}

// Nights returns the number of chargeable nights for a stay, the ceiling of
// the span in days. Equal, reversed, or malformed dates clamp to 1 so a bad
// date range can never produce zero or negative pricing.
func Nights(checkIn, checkOut time.Time) int {
	span := checkOut.Sub(checkIn)
	nights := int(math.Ceil(span.Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

// Breakdown is the tax/discount-adjusted price of a cart. Derived and never
// stored; recompute it on every cart or promo change.
type Breakdown struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineTotal is the chargeable amount for one cart item: the server-supplied
// line total when present, otherwise price per night times nights.
func LineTotal(item domain.CartItem) decimal.Decimal {
	if item.TotalPrice > 0 {
		return decimal.NewFromFloat(item.TotalPrice)
	}
	nights := item.Nights
	if nights < 1 {
		nights = Nights(item.CheckInDate, item.CheckOutDate)
	}
	return decimal.NewFromFloat(item.PricePerNight).Mul(decimal.NewFromInt(int64(nights)))
}

// ComputeTotals derives the price breakdown for a cart and a discount
// percentage. grandTotal = subtotal + tax - discount, exactly.
func ComputeTotals(items []domain.CartItem, discountPercent int64) Breakdown {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	tax := subtotal.Mul(taxRate)
	discount := subtotal.Mul(decimal.NewFromInt(discountPercent)).Div(decimal.NewFromInt(100))
	return Breakdown{
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   discount,
		GrandTotal: subtotal.Add(tax).Sub(discount),
	}
}

// GrandTotalMinorUnits rounds the grand total to the smallest currency unit
// for the payment gateway
func (b Breakdown) GrandTotalMinorUnits() int64 {
	return b.GrandTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Rounded returns the breakdown as two-decimal floats for the wire
func (b Breakdown) Rounded() (subtotal, tax, discount, grandTotal float64) {
	subtotal = b.Subtotal.Round(2).InexactFloat64()
	tax = b.Tax.Round(2).InexactFloat64()
	discount = b.Discount.Round(2).InexactFloat64()
	grandTotal = b.GrandTotal.Round(2).InexactFloat64()
	return
}
