// Package pricing provides the cart pricing engine: group discounts, the
// premium surcharge and the tiered special discount.
package pricing

import "github.com/shopspring/decimal"

// Tier is one special-discount step: totals strictly above Over get Discount off.
type Tier struct {
	Over     decimal.Decimal
	Discount decimal.Decimal
}

// Rules holds the pricing constants (value type).
type Rules struct {
	GroupDiscountRate    decimal.Decimal // Fraction taken off a plan's subtotal
	GroupMinItems        int             // Items of one plan needed for the group discount
	PremiumSurchargeRate decimal.Decimal // Fraction added when any premium feature is bought
	SpecialTiers         []Tier          // Evaluated highest threshold first
}

// DefaultRules returns the standard storefront rules.
func DefaultRules() Rules {
	return Rules{
		GroupDiscountRate:    decimal.RequireFromString("0.10"),
		GroupMinItems:        2,
		PremiumSurchargeRate: decimal.RequireFromString("0.15"),
		SpecialTiers: []Tier{
			{Over: decimal.NewFromInt(400), Discount: decimal.NewFromInt(50)},
			{Over: decimal.NewFromInt(200), Discount: decimal.NewFromInt(20)},
		},
	}
}

// SpecialDiscountFor returns the flat discount earned by total.
// This is a PURE function.
func (r Rules) SpecialDiscountFor(total decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	var bestOver *decimal.Decimal
	for i := range r.SpecialTiers {
		t := r.SpecialTiers[i]
		if !total.GreaterThan(t.Over) {
			continue
		}
		if bestOver == nil || t.Over.GreaterThan(*bestOver) {
			best, bestOver = t.Discount, &r.SpecialTiers[i].Over
		}
	}
	return best
}

// ApplySpecialDiscount subtracts the earned discount from total, floored at zero.
// It returns the discounted total and the discount amount.
// This is a PURE function.
func (r Rules) ApplySpecialDiscount(total decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	discount := r.SpecialDiscountFor(total)
	return decimal.Max(decimal.Zero, total.Sub(discount)), discount
}
