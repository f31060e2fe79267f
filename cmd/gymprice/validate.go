package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/artpar/gymprice/config"
	"github.com/artpar/gymprice/domain/catalog"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the gymprice configuration file.

Checks:
  - YAML syntax is valid
  - Logging and pricing settings are recognised
  - Catalog overrides have names, non-negative costs and disjoint feature tables

Examples:
  gymprice validate
  gymprice validate --config /etc/gymprice/gymprice.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", cfgFile)

	if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(out, "  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Fprintf(out, "  %s Config file exists\n", checkMark)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config syntax valid\n", checkMark)

	c, err := config.LoadCatalogOverride(cfg.Catalog, catalog.Default())
	if err != nil {
		fmt.Fprintf(out, "  %s Catalog valid\n", crossMark)
		return err
	}
	fmt.Fprintf(out, "  %s Catalog valid\n", checkMark)

	fmt.Fprintf(out, "  %s Plans: %d\n", checkMark, len(c.Plans))
	fmt.Fprintf(out, "  %s Ordinary features: %d\n", checkMark, len(c.OrdinaryFeatures))
	fmt.Fprintf(out, "  %s Premium features: %d\n", checkMark, len(c.PremiumFeatures))
	fmt.Fprintf(out, "  %s Unknown names: %s\n", checkMark, cfg.Pricing.UnknownNames)
	fmt.Fprintf(out, "  %s Logging: %s (%s)\n", checkMark, cfg.Logging.Level, cfg.Logging.Format)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
