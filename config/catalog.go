package config

import (
	"fmt"

	"github.com/artpar/gymprice/domain/catalog"
	"github.com/shopspring/decimal"
)

// LoadCatalogOverride builds a new catalog from base with the configured
// tables swapped in. Tables absent from cc keep their base values, along with
// their availability flags. base is never modified.
func LoadCatalogOverride(cc CatalogConfig, base catalog.Catalog) (catalog.Catalog, error) {
	out := base
	planFlags := make(map[string]bool)
	featureFlags := make(map[string]bool)

	if len(cc.Plans) > 0 {
		plans := make([]catalog.Plan, len(cc.Plans))
		for i, pc := range cc.Plans {
			name := catalog.NormalizePlanName(pc.Name)
			plans[i] = catalog.Plan{
				Name:     name,
				Benefits: pc.Benefits,
				Cost:     decimal.NewFromFloat(pc.Cost),
			}
			if pc.Available != nil {
				planFlags[name] = *pc.Available
			}
		}
		out = out.WithPlans(plans)
	} else {
		for _, p := range base.Plans {
			if v, ok := base.PlanAvailable[p.Name]; ok {
				planFlags[p.Name] = v
			}
		}
	}

	if len(cc.OrdinaryFeatures) > 0 {
		out = out.WithOrdinaryFeatures(features(cc.OrdinaryFeatures, featureFlags))
	} else {
		keepFlags(base.OrdinaryFeatures, base.FeatureAvailable, featureFlags)
	}

	if len(cc.PremiumFeatures) > 0 {
		out = out.WithPremiumFeatures(features(cc.PremiumFeatures, featureFlags))
	} else {
		keepFlags(base.PremiumFeatures, base.FeatureAvailable, featureFlags)
	}

	out = out.WithAvailability(planFlags, featureFlags)
	if err := out.Validate(); err != nil {
		return base, fmt.Errorf("catalog override: %w", err)
	}
	return out, nil
}

func features(fcs []FeatureConfig, flags map[string]bool) []catalog.Feature {
	out := make([]catalog.Feature, len(fcs))
	for i, fc := range fcs {
		out[i] = catalog.Feature{Name: fc.Name, Price: decimal.NewFromFloat(fc.Price)}
		if fc.Available != nil {
			flags[fc.Name] = *fc.Available
		}
	}
	return out
}

func keepFlags(fs []catalog.Feature, from, to map[string]bool) {
	for _, f := range fs {
		if v, ok := from[f.Name]; ok {
			to[f.Name] = v
		}
	}
}
