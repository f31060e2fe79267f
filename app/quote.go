// Package app contains the QuoteService that turns raw selections into priced carts.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artpar/gymprice/domain/catalog"
	"github.com/artpar/gymprice/domain/membership"
	"github.com/artpar/gymprice/domain/pricing"
	"github.com/artpar/gymprice/ports"
	"github.com/rs/zerolog"
)

// Errors returned by QuoteService.
var (
	ErrEmptyCart        = errors.New("no membership selected")
	ErrInvalidPlan      = errors.New("invalid plan")
	ErrPlanUnavailable  = errors.New("plan unavailable")
	ErrInvalidSelection = errors.New("invalid selection")
)

// Selection is one raw plan choice as typed by the user.
type Selection struct {
	Plan     string
	Features []string
}

// ParseSelection parses "plan=feature,feature" (the feature part is optional).
func ParseSelection(s string) (Selection, error) {
	plan, feats, _ := strings.Cut(s, "=")
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return Selection{}, fmt.Errorf("%w: %q has no plan", ErrInvalidSelection, s)
	}

	sel := Selection{Plan: plan}
	if strings.TrimSpace(feats) != "" {
		sel.Features = strings.Split(feats, ",")
	}
	return sel, nil
}

// Line is a validated selection turned into an item, plus the feature inputs
// that did not match the catalog and were dropped.
type Line struct {
	Item    membership.Item
	Invalid []InvalidFeature
}

// InvalidFeature is a dropped feature input and why it was dropped.
type InvalidFeature struct {
	Input  string
	Reason string
}

// Quote is a priced cart.
type Quote struct {
	ID     string
	Lines  []Line
	Counts []pricing.PlanCount
	Result pricing.Result
}

// Items returns the quoted items in order.
func (q Quote) Items() []membership.Item {
	items := make([]membership.Item, len(q.Lines))
	for i, l := range q.Lines {
		items[i] = l.Item
	}
	return items
}

// QuoteService prices carts against a fixed catalog.
type QuoteService struct {
	catalog  catalog.Catalog
	policy   membership.UnknownNamePolicy
	rules    pricing.Rules
	ids      ports.IDGenerator
	observer ports.QuoteObserver
	logger   zerolog.Logger
}

// NewQuoteService creates a new quote service. observer may be nil.
func NewQuoteService(
	c catalog.Catalog,
	policy membership.UnknownNamePolicy,
	rules pricing.Rules,
	ids ports.IDGenerator,
	observer ports.QuoteObserver,
	logger zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		catalog:  c,
		policy:   policy,
		rules:    rules,
		ids:      ids,
		observer: observer,
		logger:   logger,
	}
}

// Catalog returns the catalog the service prices against.
func (s *QuoteService) Catalog() catalog.Catalog {
	return s.catalog
}

// BuildLine validates one selection. The plan must exist and be available;
// unknown or unavailable features are dropped and reported.
func (s *QuoteService) BuildLine(sel Selection) (Line, error) {
	plan, ok := s.catalog.ValidatePlan(sel.Plan)
	if !ok {
		return Line{}, fmt.Errorf("%w: %q", ErrInvalidPlan, strings.TrimSpace(sel.Plan))
	}
	if available, reason := s.catalog.CheckPlanAvailability(plan); !available {
		return Line{}, fmt.Errorf("%w: %q: %s", ErrPlanUnavailable, plan, reason)
	}

	matched, unknown := s.catalog.SelectFeatures(sel.Features)

	var line Line
	for _, in := range unknown {
		_, reason := s.catalog.CheckFeatureAvailability(in)
		line.Invalid = append(line.Invalid, InvalidFeature{Input: in, Reason: reason})
	}

	var usable []string
	for _, name := range matched {
		if available, reason := s.catalog.CheckFeatureAvailability(name); !available {
			line.Invalid = append(line.Invalid, InvalidFeature{Input: name, Reason: reason})
			continue
		}
		usable = append(usable, name)
	}

	ordinary, premium := s.catalog.SplitFeatures(usable)
	line.Item = membership.NewItem(plan, ordinary, premium)
	return line, nil
}

// Quote validates selections and prices them as one cart.
func (s *QuoteService) Quote(ctx context.Context, sels []Selection) (Quote, error) {
	if len(sels) == 0 {
		return Quote{}, ErrEmptyCart
	}

	lines := make([]Line, 0, len(sels))
	for i, sel := range sels {
		line, err := s.BuildLine(sel)
		if err != nil {
			return Quote{}, fmt.Errorf("selection %d: %w", i+1, err)
		}
		for _, inv := range line.Invalid {
			s.logger.Warn().
				Str("plan", line.Item.PlanName).
				Str("feature", inv.Input).
				Str("reason", inv.Reason).
				Msg("feature ignored")
		}
		lines = append(lines, line)
	}

	return s.price(ctx, lines)
}

// QuoteItems prices already-validated items as one cart.
func (s *QuoteService) QuoteItems(ctx context.Context, items []membership.Item) (Quote, error) {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Item: it}
	}
	return s.price(ctx, lines)
}

func (s *QuoteService) price(ctx context.Context, lines []Line) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}

	q := Quote{ID: s.ids.New(), Lines: lines}
	engine := pricing.New(membership.NewPricer(s.catalog, s.policy), s.rules, q.Items())

	res, err := engine.Quote()
	if err != nil {
		s.logger.Error().Err(err).Str("quote_id", q.ID).Msg("pricing failed")
		return Quote{}, fmt.Errorf("price cart: %w", err)
	}
	q.Result = res
	q.Counts = engine.CountByPlan()
	premium := engine.HasPremiumFeatures()

	s.logger.Debug().
		Str("quote_id", q.ID).
		Str("subtotal", res.Subtotal.StringFixed(2)).
		Str("surcharge", res.Surcharge.StringFixed(2)).
		Str("special_discount", res.SpecialDiscount.StringFixed(2)).
		Int("group_discounted_plans", len(res.GroupDiscounts)).
		Msg("cart priced")
	s.logger.Info().
		Str("quote_id", q.ID).
		Int("items", len(lines)).
		Bool("premium", premium).
		Str("total", res.Total.StringFixed(2)).
		Msg("quote computed")

	if s.observer != nil {
		s.observer.ObserveQuote(len(lines), premium, res)
	}
	return q, nil
}
