package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Availability reasons reported by CheckPlanAvailability and CheckFeatureAvailability.
const (
	ReasonEmptyPlan          = "empty plan name"
	ReasonPlanUnavailable    = "plan is marked unavailable"
	ReasonPlanMissing        = "plan does not exist"
	ReasonEmptyFeature       = "empty feature name"
	ReasonFeatureUnavailable = "feature is marked unavailable"
	ReasonFeatureMissing     = "feature does not exist"
)

// NormalizePlanName trims the input and capitalizes it: first letter upper,
// the rest lower ("  pREMIUM " -> "Premium").
func NormalizePlanName(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ValidatePlan normalizes input and returns the catalog plan name it refers to.
func (c Catalog) ValidatePlan(input string) (string, bool) {
	name := NormalizePlanName(input)
	if name == "" || !c.HasPlan(name) {
		return "", false
	}
	return name, true
}

// SelectFeatures matches raw feature inputs case-insensitively against both
// feature tables. Matches are returned under their canonical name; blank inputs
// are skipped and anything else lands in invalid, trimmed.
func (c Catalog) SelectFeatures(inputs []string) (valid, invalid []string) {
	index := make(map[string]string, len(c.OrdinaryFeatures)+len(c.PremiumFeatures))
	for _, f := range c.OrdinaryFeatures {
		index[strings.ToLower(f.Name)] = f.Name
	}
	for _, f := range c.PremiumFeatures {
		index[strings.ToLower(f.Name)] = f.Name
	}

	for _, in := range inputs {
		trimmed := strings.TrimSpace(in)
		if trimmed == "" {
			continue
		}
		if name, ok := index[strings.ToLower(trimmed)]; ok {
			valid = append(valid, name)
			continue
		}
		invalid = append(invalid, trimmed)
	}
	return valid, invalid
}

// SplitFeatures partitions canonical feature names into ordinary and premium.
// Unknown names are dropped.
func (c Catalog) SplitFeatures(names []string) (ordinary, premium []string) {
	for _, n := range names {
		switch {
		case c.IsOrdinary(n):
			ordinary = append(ordinary, n)
		case c.IsPremium(n):
			premium = append(premium, n)
		}
	}
	return ordinary, premium
}

// CheckPlanAvailability reports whether a plan can be sold, with a reason when not.
func (c Catalog) CheckPlanAvailability(name string) (bool, string) {
	if name == "" {
		return false, ReasonEmptyPlan
	}
	if !c.HasPlan(name) {
		return false, ReasonPlanMissing
	}
	if available, ok := c.PlanAvailable[name]; ok && !available {
		return false, ReasonPlanUnavailable
	}
	return true, ""
}

// CheckFeatureAvailability reports whether a feature can be sold, with a reason when not.
func (c Catalog) CheckFeatureAvailability(name string) (bool, string) {
	if name == "" {
		return false, ReasonEmptyFeature
	}
	if !c.IsOrdinary(name) && !c.IsPremium(name) {
		return false, ReasonFeatureMissing
	}
	if available, ok := c.FeatureAvailable[name]; ok && !available {
		return false, ReasonFeatureUnavailable
	}
	return true, ""
}
