package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "nembid",
	Short: "NEM bid revision study toolkit",
	Long: `nembid fetches dispatch, price and bid tables from the market-data
API, builds the forecast-error panel and estimates how battery and thermal
units revise their bids after price surprises.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
