package main

import (
	"fmt"
	"os"

	"github.com/artpar/gymprice/bootstrap"
	"github.com/artpar/gymprice/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gymprice",
	Short: "Gym membership pricing calculator",
	Long: `gymprice prices gym membership carts.

Pick membership plans, attach ordinary and premium features, and get the
final price after group discounts, the premium surcharge and special
discounts.

Quick start:
  gymprice catalog                                   # List plans and features
  gymprice quote --item "family=Group Classes"       # Price a cart
  gymprice validate                                  # Validate configuration`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
}

// loadApp builds the app from the global config flag, logging to stderr.
func loadApp(cmd *cobra.Command) (*bootstrap.App, error) {
	return bootstrap.Load(cfgFile, cmd.ErrOrStderr())
}
