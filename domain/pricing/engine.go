package pricing

import (
	"github.com/artpar/gymprice/domain/membership"
	"github.com/shopspring/decimal"
)

// PlanCount is the number of cart items sharing a plan name.
type PlanCount struct {
	Plan  string
	Count int
}

// PlanAmount is an amount attributed to a plan.
type PlanAmount struct {
	Plan   string
	Amount decimal.Decimal
}

// Subtotals holds per-plan amounts in catalog order.
type Subtotals []PlanAmount

// Get returns the amount for plan, or zero.
func (s Subtotals) Get(plan string) decimal.Decimal {
	for _, pa := range s {
		if pa.Plan == plan {
			return pa.Amount
		}
	}
	return decimal.Zero
}

// Sum adds up all amounts.
func (s Subtotals) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, pa := range s {
		total = total.Add(pa.Amount)
	}
	return total
}

// Result is the outcome of pricing one cart (value type).
type Result struct {
	Subtotals          Subtotals       // Per plan, after group discount
	GroupDiscounts     []PlanAmount    // Amount taken off each discounted plan
	Subtotal           decimal.Decimal // Sum of Subtotals
	Surcharge          decimal.Decimal // Premium surcharge on Subtotal
	SurchargeBreakdown []PlanAmount    // Surcharge split across plans; sums to Surcharge
	SpecialDiscount    decimal.Decimal // Tiered flat discount on Subtotal+Surcharge
	Total              decimal.Decimal // Payable amount, never negative
}

// Engine prices one cart. Results are returned, never stored, so repeated
// calls on the same engine give the same answer.
type Engine struct {
	pricer membership.Pricer
	rules  Rules
	items  []membership.Item
}

// New creates an engine over a copy of items.
func New(pricer membership.Pricer, rules Rules, items []membership.Item) *Engine {
	return &Engine{
		pricer: pricer,
		rules:  rules,
		items:  append([]membership.Item(nil), items...),
	}
}

// Items returns the cart in insertion order.
func (e *Engine) Items() []membership.Item {
	return append([]membership.Item(nil), e.items...)
}

// CountByPlan counts items per plan name in first-seen order.
func (e *Engine) CountByPlan() []PlanCount {
	var counts []PlanCount
	index := make(map[string]int)
	for _, it := range e.items {
		if i, ok := index[it.PlanName]; ok {
			counts[i].Count++
			continue
		}
		index[it.PlanName] = len(counts)
		counts = append(counts, PlanCount{Plan: it.PlanName, Count: 1})
	}
	return counts
}

// GroupDiscountEligiblePlans returns plans with at least GroupMinItems items.
// This is a PURE function.
func (r Rules) GroupDiscountEligiblePlans(counts []PlanCount) []string {
	var plans []string
	for _, c := range counts {
		if c.Count >= r.GroupMinItems {
			plans = append(plans, c.Plan)
		}
	}
	return plans
}

// CalculateCosts returns per-plan subtotals after the group discount.
// Every catalog plan has an entry; items whose plan is not in the catalog
// are left out under PolicyTreatAsZero.
func (e *Engine) CalculateCosts() (Subtotals, error) {
	subtotals, _, err := e.calculate()
	return subtotals, err
}

func (e *Engine) calculate() (Subtotals, []PlanAmount, error) {
	names := e.pricer.Catalog.PlanNames()
	subtotals := make(Subtotals, len(names))
	index := make(map[string]int, len(names))
	for i, n := range names {
		subtotals[i] = PlanAmount{Plan: n, Amount: decimal.Zero}
		index[n] = i
	}

	for _, it := range e.items {
		cost, err := e.pricer.TotalCost(it)
		if err != nil {
			return nil, nil, err
		}
		if i, ok := index[it.PlanName]; ok {
			subtotals[i].Amount = subtotals[i].Amount.Add(cost)
		}
	}

	var discounts []PlanAmount
	for _, plan := range e.rules.GroupDiscountEligiblePlans(e.CountByPlan()) {
		i, ok := index[plan]
		if !ok {
			continue
		}
		off := subtotals[i].Amount.Mul(e.rules.GroupDiscountRate)
		subtotals[i].Amount = subtotals[i].Amount.Sub(off)
		discounts = append(discounts, PlanAmount{Plan: plan, Amount: off})
	}
	return subtotals, discounts, nil
}

// HasPremiumFeatures reports whether any item carries a feature listed in the
// catalog's premium table.
func (e *Engine) HasPremiumFeatures() bool {
	for _, it := range e.items {
		for _, name := range it.PremiumFeatures {
			if e.pricer.Catalog.IsPremium(name) {
				return true
			}
		}
	}
	return false
}

// SumCosts totals subtotals, then applies the premium surcharge and the
// special discount, in that order.
func (e *Engine) SumCosts(subtotals Subtotals) Result {
	total := subtotals.Sum()
	res := Result{
		Subtotals:       subtotals,
		Subtotal:        total,
		Surcharge:       decimal.Zero,
		SpecialDiscount: decimal.Zero,
	}

	if e.HasPremiumFeatures() {
		res.Surcharge = total.Mul(e.rules.PremiumSurchargeRate)
		res.SurchargeBreakdown = SplitSurcharge(res.Surcharge, subtotals)
		total = total.Add(res.Surcharge)
	}

	res.Total, res.SpecialDiscount = e.rules.ApplySpecialDiscount(total)
	return res
}

// Quote runs CalculateCosts and SumCosts and records group discount amounts.
func (e *Engine) Quote() (Result, error) {
	subtotals, discounts, err := e.calculate()
	if err != nil {
		return Result{}, err
	}
	res := e.SumCosts(subtotals)
	res.GroupDiscounts = discounts
	return res, nil
}

// SplitSurcharge spreads surcharge across plans in proportion to their
// subtotals, rounded to cents. The rounding residual goes to the first plan
// with a nonzero subtotal so the parts add up to surcharge exactly.
// This is a PURE function.
func SplitSurcharge(surcharge decimal.Decimal, subtotals Subtotals) []PlanAmount {
	total := subtotals.Sum()
	if total.IsZero() {
		return nil
	}

	var parts []PlanAmount
	allocated := decimal.Zero
	for _, pa := range subtotals {
		if pa.Amount.IsZero() {
			continue
		}
		share := surcharge.Mul(pa.Amount).Div(total).Round(2)
		parts = append(parts, PlanAmount{Plan: pa.Plan, Amount: share})
		allocated = allocated.Add(share)
	}

	if residual := surcharge.Sub(allocated); len(parts) > 0 && !residual.IsZero() {
		parts[0].Amount = parts[0].Amount.Add(residual)
	}
	return parts
}
