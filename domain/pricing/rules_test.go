package pricing_test

import (
	"testing"

	"github.com/artpar/gymprice/domain/pricing"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplySpecialDiscount_Boundaries(t *testing.T) {
	r := pricing.DefaultRules()

	tests := []struct {
		total        string
		want         string
		wantDiscount string
	}{
		{"0", "0", "0"},
		{"143.75", "143.75", "0"},
		{"200", "200", "0"},
		{"200.01", "180.01", "20"},
		{"250", "230", "20"},
		{"400", "380", "20"},
		{"400.01", "350.01", "50"},
		{"450", "400", "50"},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			got, discount := r.ApplySpecialDiscount(dec(tt.total))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ApplySpecialDiscount(%s) = %s, want %s", tt.total, got, tt.want)
			}
			if !discount.Equal(dec(tt.wantDiscount)) {
				t.Errorf("discount = %s, want %s", discount, tt.wantDiscount)
			}
		})
	}
}

func TestApplySpecialDiscount_FloorAtZero(t *testing.T) {
	r := pricing.Rules{
		SpecialTiers: []pricing.Tier{{Over: dec("10"), Discount: dec("50")}},
	}

	got, discount := r.ApplySpecialDiscount(dec("30"))
	if !got.IsZero() {
		t.Errorf("ApplySpecialDiscount(30) = %s, want 0", got)
	}
	if !discount.Equal(dec("50")) {
		t.Errorf("discount = %s, want 50", discount)
	}

	// Negative totals from degenerate catalogs are clamped as well.
	got, _ = r.ApplySpecialDiscount(dec("-5"))
	if !got.IsZero() {
		t.Errorf("ApplySpecialDiscount(-5) = %s, want 0", got)
	}
}

func TestSpecialDiscountFor_TierOrderIndependent(t *testing.T) {
	r := pricing.Rules{
		SpecialTiers: []pricing.Tier{
			{Over: dec("200"), Discount: dec("20")},
			{Over: dec("400"), Discount: dec("50")},
		},
	}

	if got := r.SpecialDiscountFor(dec("500")); !got.Equal(dec("50")) {
		t.Errorf("SpecialDiscountFor(500) = %s, want 50", got)
	}
	if got := r.SpecialDiscountFor(dec("300")); !got.Equal(dec("20")) {
		t.Errorf("SpecialDiscountFor(300) = %s, want 20", got)
	}
}

func TestGroupDiscountEligiblePlans(t *testing.T) {
	r := pricing.DefaultRules()

	counts := []pricing.PlanCount{
		{Plan: "Basic", Count: 2},
		{Plan: "Student", Count: 1},
		{Plan: "Family", Count: 3},
	}

	got := r.GroupDiscountEligiblePlans(counts)
	if len(got) != 2 || got[0] != "Basic" || got[1] != "Family" {
		t.Errorf("GroupDiscountEligiblePlans = %v, want [Basic Family]", got)
	}

	if got := r.GroupDiscountEligiblePlans(nil); len(got) != 0 {
		t.Errorf("GroupDiscountEligiblePlans(nil) = %v, want empty", got)
	}
}
