package main

import (
	"encoding/json"
	"fmt"

	"github.com/artpar/gymprice/app"
	"github.com/artpar/gymprice/domain/pricing"
	"github.com/artpar/gymprice/domain/receipt"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a cart of memberships",
	Long: `Price a cart of memberships.

Each --item is a plan name, optionally followed by "=" and a comma separated
list of features. Plan and feature names are case-insensitive. Unknown
features are reported and ignored; an unknown plan is an error.

Examples:
  gymprice quote --item basic
  gymprice quote --item "Family=Specialized Training Programs" --item "family=Specialized Training Programs"
  gymprice quote --item "student=Group Classes,Access to Pool" --json`,
	RunE: runQuote,
}

var (
	quoteItems []string
	quoteJSON  bool
)

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringArrayVarP(&quoteItems, "item", "i", nil, `membership as plan[=feature,feature...] (repeatable)`)
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "print the quote as JSON")
	quoteCmd.MarkFlagRequired("item")
}

func runQuote(cmd *cobra.Command, args []string) error {
	sels := make([]app.Selection, 0, len(quoteItems))
	for _, raw := range quoteItems {
		sel, err := app.ParseSelection(raw)
		if err != nil {
			return err
		}
		sels = append(sels, sel)
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.Quotes.Quote(cmd.Context(), sels)
	if err != nil {
		return fmt.Errorf("quote: %w", err)
	}

	out := cmd.OutOrStdout()
	if quoteJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newQuoteView(q))
	}

	for _, line := range q.Lines {
		for _, inv := range line.Invalid {
			fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: feature %q ignored for %s: %s\n", inv.Input, line.Item.PlanName, inv.Reason)
		}
	}
	return receipt.WriteSummary(out, receipt.Summary{
		QuoteID: q.ID,
		Items:   q.Items(),
		Counts:  q.Counts,
		Result:  q.Result,
	})
}

// quoteView is the JSON shape of a quote. Amounts are strings with two decimals.
type quoteView struct {
	ID                 string            `json:"id"`
	Items              []itemView        `json:"items"`
	Subtotals          map[string]string `json:"subtotals"`
	GroupDiscounts     map[string]string `json:"group_discounts,omitempty"`
	Subtotal           string            `json:"subtotal"`
	Surcharge          string            `json:"premium_surcharge"`
	SurchargeBreakdown map[string]string `json:"premium_surcharge_breakdown,omitempty"`
	SpecialDiscount    string            `json:"special_discount"`
	Total              string            `json:"total"`
}

type itemView struct {
	Plan             string   `json:"plan"`
	OrdinaryFeatures []string `json:"ordinary_features,omitempty"`
	PremiumFeatures  []string `json:"premium_features,omitempty"`
	Ignored          []string `json:"ignored_features,omitempty"`
}

func newQuoteView(q app.Quote) quoteView {
	res := q.Result
	v := quoteView{
		ID:                 q.ID,
		Subtotals:          amounts(res.Subtotals),
		GroupDiscounts:     amounts(res.GroupDiscounts),
		Subtotal:           res.Subtotal.StringFixed(2),
		Surcharge:          res.Surcharge.StringFixed(2),
		SurchargeBreakdown: amounts(res.SurchargeBreakdown),
		SpecialDiscount:    res.SpecialDiscount.StringFixed(2),
		Total:              res.Total.StringFixed(2),
	}
	for _, line := range q.Lines {
		iv := itemView{
			Plan:             line.Item.PlanName,
			OrdinaryFeatures: line.Item.OrdinaryFeatures,
			PremiumFeatures:  line.Item.PremiumFeatures,
		}
		for _, inv := range line.Invalid {
			iv.Ignored = append(iv.Ignored, inv.Input)
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

func amounts(pas []pricing.PlanAmount) map[string]string {
	if len(pas) == 0 {
		return nil
	}
	m := make(map[string]string, len(pas))
	for _, pa := range pas {
		m[pa.Plan] = pa.Amount.StringFixed(2)
	}
	return m
}
