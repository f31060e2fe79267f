package catalog_test

import (
	"strings"
	"testing"

	"github.com/artpar/gymprice/domain/catalog"
)

func TestNormalizePlanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Basic", "Basic"},
		{"basic", "Basic"},
		{"  premium ", "Premium"},
		{"FAMILY", "Family"},
		{"sTuDeNt", "Student"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := catalog.NormalizePlanName(tt.in); got != tt.want {
				t.Errorf("NormalizePlanName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidatePlan(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Basic", "Basic", true},
		{"basic", "Basic", true},
		{"  premium ", "Premium", true},
		{"", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := c.ValidatePlan(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ValidatePlan(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSelectFeatures(t *testing.T) {
	c := catalog.Default()

	valid, invalid := c.SelectFeatures([]string{"Personal Training", "unknown", "  access to pool  ", "", "EXCLUSIVE GYM FACILITIES"})

	want := []string{"Personal Training", "Access to Pool", "Exclusive Gym Facilities"}
	if strings.Join(valid, "|") != strings.Join(want, "|") {
		t.Errorf("valid = %v, want %v", valid, want)
	}
	if len(invalid) != 1 || invalid[0] != "unknown" {
		t.Errorf("invalid = %v, want [unknown]", invalid)
	}
}

func TestSelectFeatures_KeepsDuplicates(t *testing.T) {
	c := catalog.Default()

	valid, _ := c.SelectFeatures([]string{"group classes", "Group Classes"})
	if len(valid) != 2 {
		t.Errorf("valid = %v, want both occurrences", valid)
	}
}

func TestSplitFeatures(t *testing.T) {
	c := catalog.Default()

	ordinary, premium := c.SplitFeatures([]string{"Group Classes", "Exclusive Gym Facilities", "Nope", "Access to Pool"})

	if strings.Join(ordinary, "|") != "Group Classes|Access to Pool" {
		t.Errorf("ordinary = %v", ordinary)
	}
	if strings.Join(premium, "|") != "Exclusive Gym Facilities" {
		t.Errorf("premium = %v", premium)
	}
}

func TestCheckPlanAvailability(t *testing.T) {
	c := catalog.Default().WithAvailability(map[string]bool{"Premium": false, "Basic": true}, nil)

	tests := []struct {
		plan       string
		wantOK     bool
		wantReason string
	}{
		{"Basic", true, ""},
		{"Student", true, ""},
		{"Premium", false, catalog.ReasonPlanUnavailable},
		{"Gold", false, catalog.ReasonPlanMissing},
		{"", false, catalog.ReasonEmptyPlan},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			ok, reason := c.CheckPlanAvailability(tt.plan)
			if ok != tt.wantOK || reason != tt.wantReason {
				t.Errorf("CheckPlanAvailability(%q) = %v, %q; want %v, %q", tt.plan, ok, reason, tt.wantOK, tt.wantReason)
			}
		})
	}
}

func TestCheckFeatureAvailability(t *testing.T) {
	c := catalog.Default().WithAvailability(nil, map[string]bool{"Access to Pool": false})

	tests := []struct {
		feature    string
		wantOK     bool
		wantReason string
	}{
		{"Group Classes", true, ""},
		{"Exclusive Gym Facilities", true, ""},
		{"Access to Pool", false, catalog.ReasonFeatureUnavailable},
		{"Sauna", false, catalog.ReasonFeatureMissing},
		{"", false, catalog.ReasonEmptyFeature},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			ok, reason := c.CheckFeatureAvailability(tt.feature)
			if ok != tt.wantOK || reason != tt.wantReason {
				t.Errorf("CheckFeatureAvailability(%q) = %v, %q; want %v, %q", tt.feature, ok, reason, tt.wantOK, tt.wantReason)
			}
		})
	}
}
