package main

import (
	"github.com/artpar/gymprice/domain/receipt"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List membership plans and features",
	Long: `List membership plans, additional features and premium features.

The built-in catalog is used unless the config file overrides it.

Examples:
  gymprice catalog
  gymprice catalog --config ./gymprice.yaml`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return receipt.WriteCatalog(cmd.OutOrStdout(), a.Catalog)
}
