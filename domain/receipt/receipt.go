// Package receipt renders catalog listings and purchase summaries as text.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/artpar/gymprice/domain/catalog"
	"github.com/artpar/gymprice/domain/membership"
	"github.com/artpar/gymprice/domain/pricing"
	"github.com/shopspring/decimal"
)

const rule = "=================================================="

// GroupDiscountNotice is shown when the cart holds several items of one plan.
const GroupDiscountNotice = "Buy memberships with friends and get a group discount of 10%"

// FormatAmount formats a decimal amount as dollars with two decimals and
// thousands separators ("$1,234.50").
// This is a PURE function.
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// WriteCatalog lists plans, ordinary features and premium features.
func WriteCatalog(w io.Writer, c catalog.Catalog) error {
	var b strings.Builder
	b.WriteString("\n--- GYM MEMBERSHIP PLANS ---\n")
	for _, p := range c.Plans {
		fmt.Fprintf(&b, "===== %s Plan =====\n", p.Name)
		fmt.Fprintf(&b, "Benefits: %s\n", p.Benefits)
		fmt.Fprintf(&b, "Cost: %s\n", FormatAmount(p.Cost))
	}

	b.WriteString("\n--- ADDITIONAL FEATURES ---\n")
	for _, f := range c.OrdinaryFeatures {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, FormatAmount(f.Price))
	}

	b.WriteString("\n--- PREMIUM MEMBERSHIP FEATURES (15% surcharge applied) ---\n")
	for _, f := range c.PremiumFeatures {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, FormatAmount(f.Price))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is everything a purchase summary shows.
type Summary struct {
	QuoteID string
	Items   []membership.Item
	Counts  []pricing.PlanCount
	Result  pricing.Result
}

// HasGroupPurchase reports whether any plan was bought more than once.
func (s Summary) HasGroupPurchase() bool {
	for _, c := range s.Counts {
		if c.Count > 1 {
			return true
		}
	}
	return false
}

// WriteSummary renders the purchase summary.
func WriteSummary(w io.Writer, s Summary) error {
	var b strings.Builder
	res := s.Result

	b.WriteString("\n" + rule + "\n")
	b.WriteString("=== PURCHASE SUMMARY ===\n")
	if s.QuoteID != "" {
		fmt.Fprintf(&b, "Quote: %s\n", s.QuoteID)
	}
	b.WriteString(rule + "\n")

	b.WriteString("\nSelected memberships:\n")
	for i, it := range s.Items {
		fmt.Fprintf(&b, "\n  %d. Plan: %s\n", i+1, it.PlanName)
		if len(it.OrdinaryFeatures) > 0 {
			fmt.Fprintf(&b, "     Additional features: %s\n", strings.Join(it.OrdinaryFeatures, ", "))
		}
		if len(it.PremiumFeatures) > 0 {
			fmt.Fprintf(&b, "     Premium features: %s\n", strings.Join(it.PremiumFeatures, ", "))
		}
	}

	b.WriteString("\nCost breakdown:\n")
	for _, pa := range res.Subtotals {
		if pa.Amount.IsPositive() {
			fmt.Fprintf(&b, "  %s: %s\n", pa.Plan, FormatAmount(pa.Amount))
		}
	}
	for _, gd := range res.GroupDiscounts {
		fmt.Fprintf(&b, "  Group discount (%s): -%s\n", gd.Plan, FormatAmount(gd.Amount))
	}

	if !res.Surcharge.IsZero() || !res.SpecialDiscount.IsZero() {
		fmt.Fprintf(&b, "\n  Subtotal: %s\n", FormatAmount(res.Subtotal))
		if !res.Surcharge.IsZero() {
			fmt.Fprintf(&b, "  Premium surcharge (15%%): +%s\n", FormatAmount(res.Surcharge))
			for _, part := range res.SurchargeBreakdown {
				fmt.Fprintf(&b, "    %s: +%s\n", part.Plan, FormatAmount(part.Amount))
			}
		}
		if !res.SpecialDiscount.IsZero() {
			fmt.Fprintf(&b, "  Special discount: -%s\n", FormatAmount(res.SpecialDiscount))
		}
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "  TOTAL DUE: %s\n", FormatAmount(res.Total))
	b.WriteString(rule + "\n")

	if s.HasGroupPurchase() {
		b.WriteString("\n" + GroupDiscountNotice + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
