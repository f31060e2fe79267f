// Package ports defines interfaces (contracts) between layers.
// Implementations live in adapters/.
package ports

import (
	"github.com/artpar/gymprice/domain/pricing"
)

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// QuoteObserver is notified of every priced cart.
type QuoteObserver interface {
	// ObserveQuote records a computed quote.
	ObserveQuote(items int, premium bool, res pricing.Result)
}

// CatalogObserver is notified when a catalog is loaded.
type CatalogObserver interface {
	// ObserveCatalogLoad records the outcome of loading a catalog override.
	// source is "builtin" or "file".
	ObserveCatalogLoad(source string, err error)
}
