// Package catalog provides the membership catalog value type and pure lookups.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors returned by Validate.
var (
	ErrEmptyName          = errors.New("catalog: empty name")
	ErrNegativeCost       = errors.New("catalog: negative cost")
	ErrDuplicateName      = errors.New("catalog: duplicate name")
	ErrOverlappingFeature = errors.New("catalog: feature is both ordinary and premium")
)

// Plan is a membership tier (immutable value type).
type Plan struct {
	Name     string
	Benefits string
	Cost     decimal.Decimal
}

// Feature is an add-on with a fixed price (immutable value type).
type Feature struct {
	Name  string
	Price decimal.Decimal
}

// Catalog is the read-only reference data the pricing engine works from.
// Slices keep declaration order, which drives display and subtotal order.
type Catalog struct {
	Plans            []Plan
	OrdinaryFeatures []Feature
	PremiumFeatures  []Feature

	// Availability toggles. A name missing from the map is available.
	PlanAvailable    map[string]bool
	FeatureAvailable map[string]bool
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Plans: []Plan{
			{Name: "Basic", Benefits: "Access to standard gym equipment and locker room.", Cost: decimal.NewFromInt(25)},
			{Name: "Premium", Benefits: "Includes Basic + Sauna access and free towel service.", Cost: decimal.NewFromInt(30)},
			{Name: "Student", Benefits: "Access to standard gym equipment and locker room + early hours access.", Cost: decimal.NewFromInt(20)},
			{Name: "Family", Benefits: "Access for up to 4 family members + Pool access.", Cost: decimal.NewFromInt(40)},
		},
		OrdinaryFeatures: []Feature{
			{Name: "Personal Training", Price: decimal.NewFromInt(30)},
			{Name: "Group Classes", Price: decimal.NewFromInt(20)},
			{Name: "Access to Pool", Price: decimal.NewFromInt(15)},
			{Name: "Specialized Program", Price: decimal.NewFromInt(40)},
		},
		PremiumFeatures: []Feature{
			{Name: "Exclusive Gym Facilities", Price: decimal.NewFromInt(100)},
			{Name: "Specialized Training Programs", Price: decimal.NewFromInt(80)},
		},
	}
}

// WithPlans returns a copy of c with the plan table replaced.
func (c Catalog) WithPlans(plans []Plan) Catalog {
	c.Plans = append([]Plan(nil), plans...)
	return c
}

// WithOrdinaryFeatures returns a copy of c with the ordinary feature table replaced.
func (c Catalog) WithOrdinaryFeatures(features []Feature) Catalog {
	c.OrdinaryFeatures = append([]Feature(nil), features...)
	return c
}

// WithPremiumFeatures returns a copy of c with the premium feature table replaced.
func (c Catalog) WithPremiumFeatures(features []Feature) Catalog {
	c.PremiumFeatures = append([]Feature(nil), features...)
	return c
}

// WithAvailability returns a copy of c with the availability maps replaced.
func (c Catalog) WithAvailability(plans, features map[string]bool) Catalog {
	c.PlanAvailable = copyFlags(plans)
	c.FeatureAvailable = copyFlags(features)
	return c
}

func copyFlags(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// FindPlan finds a plan by exact name.
func (c Catalog) FindPlan(name string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// HasPlan reports whether name is a known plan.
func (c Catalog) HasPlan(name string) bool {
	_, ok := c.FindPlan(name)
	return ok
}

// PlanNames returns plan names in catalog order.
func (c Catalog) PlanNames() []string {
	names := make([]string, len(c.Plans))
	for i, p := range c.Plans {
		names[i] = p.Name
	}
	return names
}

// PlanCost returns the base cost of a plan, or zero when the plan is unknown.
func (c Catalog) PlanCost(name string) decimal.Decimal {
	if p, ok := c.FindPlan(name); ok {
		return p.Cost
	}
	return decimal.Zero
}

// OrdinaryPrice looks up an ordinary feature price.
func (c Catalog) OrdinaryPrice(name string) (decimal.Decimal, bool) {
	return findFeature(c.OrdinaryFeatures, name)
}

// PremiumPrice looks up a premium feature price.
func (c Catalog) PremiumPrice(name string) (decimal.Decimal, bool) {
	return findFeature(c.PremiumFeatures, name)
}

// FeaturePrice looks up a feature, ordinary table first, then premium.
func (c Catalog) FeaturePrice(name string) (decimal.Decimal, bool) {
	if p, ok := c.OrdinaryPrice(name); ok {
		return p, true
	}
	return c.PremiumPrice(name)
}

// IsOrdinary reports whether name is an ordinary feature.
func (c Catalog) IsOrdinary(name string) bool {
	_, ok := c.OrdinaryPrice(name)
	return ok
}

// IsPremium reports whether name is a premium feature.
func (c Catalog) IsPremium(name string) bool {
	_, ok := c.PremiumPrice(name)
	return ok
}

func findFeature(features []Feature, name string) (decimal.Decimal, bool) {
	for _, f := range features {
		if f.Name == name {
			return f.Price, true
		}
	}
	return decimal.Zero, false
}

// Validate checks the catalog invariants: non-empty unique names, costs >= 0,
// and disjoint ordinary/premium feature sets.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Plans))
	for i, p := range c.Plans {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("plans[%d]: %w", i, ErrEmptyName)
		}
		if seen[p.Name] {
			return fmt.Errorf("plan %q: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = true
		if p.Cost.IsNegative() {
			return fmt.Errorf("plan %q: %w", p.Name, ErrNegativeCost)
		}
	}

	ordinary, err := validateFeatures("ordinary_features", c.OrdinaryFeatures)
	if err != nil {
		return err
	}
	premium, err := validateFeatures("premium_features", c.PremiumFeatures)
	if err != nil {
		return err
	}
	for name := range premium {
		if ordinary[name] {
			return fmt.Errorf("feature %q: %w", name, ErrOverlappingFeature)
		}
	}
	return nil
}

func validateFeatures(table string, features []Feature) (map[string]bool, error) {
	seen := make(map[string]bool, len(features))
	for i, f := range features {
		if strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("%s[%d]: %w", table, i, ErrEmptyName)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%s %q: %w", table, f.Name, ErrDuplicateName)
		}
		seen[f.Name] = true
		if f.Price.IsNegative() {
			return nil, fmt.Errorf("%s %q: %w", table, f.Name, ErrNegativeCost)
		}
	}
	return seen, nil
}
