package domain

import "github.com/shopspring/decimal"

var (
	convenienceFeeRate = decimal.NewFromFloat(0.02)
	convenienceFeeMin  = decimal.NewFromInt(20)
	taxRate            = decimal.NewFromFloat(0.18)
)

// PromoRule computes a discount from the order subtotal. Rules are a
// stand-in table and deliberately pluggable.
type PromoRule func(subtotal decimal.Decimal) decimal.Decimal

// DefaultPromoRules holds the currently active promo codes.
var DefaultPromoRules = map[string]PromoRule{
	"SAVE10": func(subtotal decimal.Decimal) decimal.Decimal {
		return subtotal.Mul(decimal.NewFromFloat(0.10))
	},
	"FIRST50": func(decimal.Decimal) decimal.Decimal {
		return decimal.NewFromInt(50)
	},
}

type PriceBreakdown struct {
	Subtotal       decimal.Decimal
	ConvenienceFee decimal.Decimal
	Taxes          decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	PromoCode      string
	TicketCount    int
}

// CalculatePricing derives the full price breakdown for a seat set. Each
// seat's own price wins over the show's base price. The convenience fee is
// 2% of the subtotal with a flat minimum of 20; taxes are 18% on the
// subtotal alone. An unknown promo code yields a zero discount. The grand
// total never goes below zero. All figures are rounded to 2 fractional
// digits.
func CalculatePricing(show *Show, seats []Seat, promoCode string) PriceBreakdown {
	subtotal := decimal.Zero
	for _, seat := range seats {
		subtotal = subtotal.Add(seat.EffectivePrice(show.BasePrice))
	}

	fee := subtotal.Mul(convenienceFeeRate)
	if fee.LessThan(convenienceFeeMin) {
		fee = convenienceFeeMin
	}

	taxes := subtotal.Mul(taxRate)

	discount := decimal.Zero
	if rule, ok := DefaultPromoRules[promoCode]; ok {
		discount = rule(subtotal)
	}

	total := subtotal.Add(fee).Add(taxes).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return PriceBreakdown{
		Subtotal:       subtotal.Round(2),
		ConvenienceFee: fee.Round(2),
		Taxes:          taxes.Round(2),
		Discount:       discount.Round(2),
		Total:          total.Round(2),
		PromoCode:      promoCode,
		TicketCount:    len(seats),
	}
}
