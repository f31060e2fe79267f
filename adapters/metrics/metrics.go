// Package metrics provides Prometheus metrics collection for gymprice.
package metrics

import (
	"fmt"

	"github.com/artpar/gymprice/domain/pricing"
	"github.com/artpar/gymprice/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for gymprice.
type Collector struct {
	gatherer prometheus.Gatherer

	// Quote metrics
	QuotesTotal   *prometheus.CounterVec
	QuoteItems    prometheus.Histogram
	QuoteTotal    prometheus.Histogram
	PlanSubtotals *prometheus.CounterVec

	// Adjustment metrics
	GroupDiscounts   *prometheus.CounterVec
	SurchargeAmount  prometheus.Counter
	SpecialDiscounts *prometheus.CounterVec

	// Catalog metrics
	CatalogLoads      *prometheus.CounterVec
	CatalogLoadErrors *prometheus.CounterVec
}

// New creates a collector registered on a fresh registry.
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a collector registered on reg. When reg is also a
// Gatherer, WriteTextfile exports from it.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "quotes_total",
				Help:      "Total number of priced carts",
			},
			[]string{"premium"},
		),
		QuoteItems: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "gymprice",
				Name:      "quote_items",
				Help:      "Number of memberships per priced cart",
				Buckets:   []float64{1, 2, 3, 4, 5, 10, 20},
			},
		),
		QuoteTotal: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "gymprice",
				Name:      "quote_total_dollars",
				Help:      "Final payable amount per priced cart",
				Buckets:   []float64{25, 50, 100, 200, 400, 800, 1600},
			},
		),
		PlanSubtotals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "plan_subtotal_dollars_total",
				Help:      "Per-plan subtotal after group discount",
			},
			[]string{"plan"},
		),
		GroupDiscounts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "group_discount_dollars_total",
				Help:      "Amount taken off by group discounts",
			},
			[]string{"plan"},
		),
		SurchargeAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "premium_surcharge_dollars_total",
				Help:      "Amount added by the premium surcharge",
			},
		),
		SpecialDiscounts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "special_discounts_total",
				Help:      "Special discounts granted, by amount",
			},
			[]string{"amount"},
		),
		CatalogLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "catalog_loads_total",
				Help:      "Catalog loads by source",
			},
			[]string{"source"},
		),
		CatalogLoadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gymprice",
				Name:      "catalog_load_errors_total",
				Help:      "Catalog override loads that failed",
			},
			[]string{"source"},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}
	return c
}

// ObserveQuote records a priced cart.
func (c *Collector) ObserveQuote(items int, premium bool, res pricing.Result) {
	label := "false"
	if premium {
		label = "true"
	}
	c.QuotesTotal.WithLabelValues(label).Inc()
	c.QuoteItems.Observe(float64(items))
	c.QuoteTotal.Observe(res.Total.InexactFloat64())

	for _, pa := range res.Subtotals {
		if !pa.Amount.IsZero() {
			c.PlanSubtotals.WithLabelValues(pa.Plan).Add(pa.Amount.InexactFloat64())
		}
	}
	for _, gd := range res.GroupDiscounts {
		c.GroupDiscounts.WithLabelValues(gd.Plan).Add(gd.Amount.InexactFloat64())
	}
	if res.Surcharge.IsPositive() {
		c.SurchargeAmount.Add(res.Surcharge.InexactFloat64())
	}
	if !res.SpecialDiscount.IsZero() {
		c.SpecialDiscounts.WithLabelValues(res.SpecialDiscount.String()).Inc()
	}
}

// ObserveCatalogLoad records a catalog load.
func (c *Collector) ObserveCatalogLoad(source string, err error) {
	if err != nil {
		c.CatalogLoadErrors.WithLabelValues(source).Inc()
		return
	}
	c.CatalogLoads.WithLabelValues(source).Inc()
}

// WriteTextfile writes all gathered metrics to path in the Prometheus text
// format, for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if c.gatherer == nil {
		return fmt.Errorf("write metrics: registry is not a gatherer")
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var (
	_ ports.QuoteObserver   = (*Collector)(nil)
	_ ports.CatalogObserver = (*Collector)(nil)
)
