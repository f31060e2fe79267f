package bootstrap_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/artpar/gymprice/app"
	"github.com/artpar/gymprice/bootstrap"
	"github.com/artpar/gymprice/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gymprice.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesBuiltinCatalog(t *testing.T) {
	var logs bytes.Buffer
	a, err := bootstrap.Load(filepath.Join(t.TempDir(), "nope.yaml"), &logs)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	defer a.Close()

	if a.FromFile() {
		t.Error("FromFile() = true for missing file")
	}
	if len(a.Catalog.Plans) != 4 {
		t.Errorf("len(Plans) = %d, want built-in 4", len(a.Catalog.Plans))
	}
	if a.Metrics != nil {
		t.Error("metrics should be disabled by default")
	}
}

func TestLoad_MalformedFileFallsBack(t *testing.T) {
	var logs bytes.Buffer
	a, err := bootstrap.Load(writeConfig(t, "catalog: ["), &logs)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if a.FromFile() {
		t.Error("FromFile() = true for malformed file")
	}
	if !a.Catalog.HasPlan("Basic") {
		t.Error("expected built-in catalog")
	}
	if !strings.Contains(logs.String(), "config ignored") {
		t.Errorf("expected fallback warning, got:\n%s", logs.String())
	}
}

func TestLoad_CatalogOverride(t *testing.T) {
	path := writeConfig(t, `
catalog:
  plans:
    - name: gold
      benefits: Everything
      cost: 50
logging:
  level: error
  format: json
metrics:
  enabled: true
`)

	a, err := bootstrap.Load(path, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if !a.FromFile() {
		t.Error("FromFile() = false")
	}
	if names := a.Catalog.PlanNames(); len(names) != 1 || names[0] != "Gold" {
		t.Errorf("PlanNames() = %v, want [Gold]", names)
	}
	if a.Metrics == nil {
		t.Fatal("metrics should be enabled")
	}
	if got := testutil.ToFloat64(a.Metrics.CatalogLoads.WithLabelValues(bootstrap.SourceFile)); got != 1 {
		t.Errorf("catalog_loads{file} = %v, want 1", got)
	}

	q, err := a.Quotes.Quote(context.Background(), []app.Selection{{Plan: "GOLD", Features: []string{"Group Classes"}}})
	if err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if got := q.Result.Total.StringFixed(2); got != "70.00" {
		t.Errorf("Total = %s, want 70.00", got)
	}
}

func TestNew_RejectedOverrideKeepsBuiltin(t *testing.T) {
	cfg, err := config.Parse([]byte(`
catalog:
  premium_features:
    - name: Group Classes
      price: 5
metrics:
  enabled: true
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	var logs bytes.Buffer
	a, err := bootstrap.New(cfg, true, &logs)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if !a.Catalog.IsPremium("Exclusive Gym Facilities") {
		t.Error("expected built-in premium features")
	}
	if got := testutil.ToFloat64(a.Metrics.CatalogLoadErrors.WithLabelValues(bootstrap.SourceFile)); got != 1 {
		t.Errorf("catalog_load_errors{file} = %v, want 1", got)
	}
	if !strings.Contains(logs.String(), "catalog override rejected") {
		t.Errorf("expected rejection warning, got:\n%s", logs.String())
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := bootstrap.New(nil, false, nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestClose_WritesTextfile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gymprice.prom")
	cfg, err := config.Parse([]byte("metrics:\n  textfile: " + out + "\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	a, err := bootstrap.New(cfg, true, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if _, err := a.Quotes.Quote(context.Background(), []app.Selection{{Plan: "basic"}}); err != nil {
		t.Fatalf("Quote error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `gymprice_quotes_total{premium="false"} 1`) {
		t.Errorf("textfile missing quote counter:\n%s", data)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := bootstrap.NewLogger(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("warn message missing:\n%s", out)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}
