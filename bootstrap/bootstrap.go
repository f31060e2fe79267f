// Package bootstrap wires configuration, logging, metrics and the quote service.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/artpar/gymprice/adapters/idgen"
	"github.com/artpar/gymprice/adapters/metrics"
	"github.com/artpar/gymprice/app"
	"github.com/artpar/gymprice/config"
	"github.com/artpar/gymprice/domain/catalog"
	"github.com/artpar/gymprice/domain/pricing"
	"github.com/artpar/gymprice/ports"
	"github.com/rs/zerolog"
)

// Catalog sources reported to metrics.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
)

// App holds the wired components.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Catalog  catalog.Catalog
	Metrics  *metrics.Collector // nil when metrics are disabled
	Quotes   *app.QuoteService
	IDs      ports.IDGenerator
	fromFile bool
}

// Load reads the optional config file at path and builds the app. A config
// file that fails to load is logged and replaced by environment defaults so
// the built-in catalog stays usable.
func Load(path string, logOut io.Writer) (*App, error) {
	if logOut == nil {
		logOut = os.Stderr
	}

	cfg, found, err := config.LoadOptional(path)
	if err != nil {
		fallback := NewLogger(config.LoggingConfig{Level: "warn", Format: "console"}, logOut)
		fallback.Warn().Err(err).Str("path", path).Msg("config ignored, using built-in defaults")

		cfg, err = config.LoadFromEnv()
		if err != nil {
			return nil, err
		}
		found = false
	}
	return New(cfg, found, logOut)
}

// New builds the app from an already loaded configuration.
func New(cfg *config.Config, fromFile bool, logOut io.Writer) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config")
	}
	if logOut == nil {
		logOut = os.Stderr
	}

	a := &App{
		Config:   cfg,
		Logger:   NewLogger(cfg.Logging, logOut),
		IDs:      idgen.UUID{Prefix: idgen.QuotePrefix},
		fromFile: fromFile,
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	a.Catalog = a.loadCatalog()

	var observer ports.QuoteObserver
	if a.Metrics != nil {
		observer = a.Metrics
	}
	a.Quotes = app.NewQuoteService(
		a.Catalog,
		cfg.Pricing.UnknownNames,
		pricing.DefaultRules(),
		a.IDs,
		observer,
		a.Logger.With().Str("component", "quotes").Logger(),
	)

	return a, nil
}

func (a *App) loadCatalog() catalog.Catalog {
	base := catalog.Default()
	if a.Config.Catalog.IsEmpty() {
		a.observeCatalog(SourceBuiltin, nil)
		a.Logger.Debug().Int("plans", len(base.Plans)).Msg("using built-in catalog")
		return base
	}

	c, err := config.LoadCatalogOverride(a.Config.Catalog, base)
	a.observeCatalog(SourceFile, err)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("catalog override rejected, using built-in catalog")
		return base
	}

	a.Logger.Info().
		Int("plans", len(c.Plans)).
		Int("ordinary_features", len(c.OrdinaryFeatures)).
		Int("premium_features", len(c.PremiumFeatures)).
		Msg("catalog override installed")
	return c
}

func (a *App) observeCatalog(source string, err error) {
	if a.Metrics != nil {
		a.Metrics.ObserveCatalogLoad(source, err)
	}
}

// FromFile reports whether the configuration came from a file.
func (a *App) FromFile() bool {
	return a.fromFile
}

// Close flushes metrics to the configured textfile, if any.
func (a *App) Close() error {
	if a.Metrics == nil || a.Config.Metrics.Textfile == "" {
		return nil
	}
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.Textfile); err != nil {
		return err
	}
	a.Logger.Debug().Str("path", a.Config.Metrics.Textfile).Msg("metrics written")
	return nil
}

// NewLogger creates a zerolog logger from logging configuration.
func NewLogger(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
