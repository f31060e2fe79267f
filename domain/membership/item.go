// Package membership provides the purchased-plan value type and its costing.
package membership

import (
	"errors"
	"fmt"

	"github.com/artpar/gymprice/domain/catalog"
	"github.com/shopspring/decimal"
)

// Errors returned under PolicyReject.
var (
	ErrUnknownPlan    = errors.New("unknown plan")
	ErrUnknownFeature = errors.New("unknown feature")
)

// UnknownNamePolicy decides how names missing from the catalog are priced.
type UnknownNamePolicy string

const (
	PolicyTreatAsZero UnknownNamePolicy = "treat_as_zero" // Price unknown names at zero
	PolicyReject      UnknownNamePolicy = "reject"        // Fail on the first unknown name
)

// Valid reports whether p is a known policy.
func (p UnknownNamePolicy) Valid() bool {
	return p == PolicyTreatAsZero || p == PolicyReject
}

// miss resolves a failed lookup according to the policy.
func (p UnknownNamePolicy) miss(err error, name string) (decimal.Decimal, error) {
	if p == PolicyReject {
		return decimal.Zero, fmt.Errorf("%w: %q", err, name)
	}
	return decimal.Zero, nil
}

// Item is one purchased plan with its selected features (immutable value type).
// Feature lists are sequences: duplicates are priced once per occurrence.
type Item struct {
	PlanName         string
	OrdinaryFeatures []string
	PremiumFeatures  []string
}

// NewItem creates an item, copying the feature slices.
func NewItem(plan string, ordinary, premium []string) Item {
	return Item{
		PlanName:         plan,
		OrdinaryFeatures: append([]string(nil), ordinary...),
		PremiumFeatures:  append([]string(nil), premium...),
	}
}

// Pricer prices items against a catalog.
type Pricer struct {
	Catalog catalog.Catalog
	Policy  UnknownNamePolicy
}

// NewPricer creates a pricer. An empty policy means PolicyTreatAsZero.
func NewPricer(c catalog.Catalog, policy UnknownNamePolicy) Pricer {
	if policy == "" {
		policy = PolicyTreatAsZero
	}
	return Pricer{Catalog: c, Policy: policy}
}

// PlanCost returns the base cost of the item's plan.
func (p Pricer) PlanCost(it Item) (decimal.Decimal, error) {
	plan, ok := p.Catalog.FindPlan(it.PlanName)
	if !ok {
		return p.Policy.miss(ErrUnknownPlan, it.PlanName)
	}
	return plan.Cost, nil
}

// FeatureCost returns the price of a feature, ordinary table first.
func (p Pricer) FeatureCost(name string) (decimal.Decimal, error) {
	price, ok := p.Catalog.FeaturePrice(name)
	if !ok {
		return p.Policy.miss(ErrUnknownFeature, name)
	}
	return price, nil
}

// FeaturesCost sums ordinary then premium feature prices without deduplication.
func (p Pricer) FeaturesCost(it Item) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, names := range [][]string{it.OrdinaryFeatures, it.PremiumFeatures} {
		for _, name := range names {
			cost, err := p.FeatureCost(name)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(cost)
		}
	}
	return total, nil
}

// TotalCost returns plan cost plus features cost.
func (p Pricer) TotalCost(it Item) (decimal.Decimal, error) {
	plan, err := p.PlanCost(it)
	if err != nil {
		return decimal.Zero, err
	}
	features, err := p.FeaturesCost(it)
	if err != nil {
		return decimal.Zero, err
	}
	return plan.Add(features), nil
}
