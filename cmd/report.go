package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/infra/logger"
	"github.com/ydereck/nembid/infra/store"
	"github.com/ydereck/nembid/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the descriptive report and charts",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	logg := logger.New("report")

	st, err := store.New(cfg.Output.DataDir)
	if err != nil {
		return err
	}
	rows, err := st.LoadPanel("panel.csv")
	if err != nil {
		return err
	}
	prices, err := st.LoadPrices("price_forecast.csv")
	if err != nil {
		return err
	}

	w, err := report.NewWriter(cfg.Output.ReportDir, logg)
	if err != nil {
		return err
	}
	return w.Run(rows, prices)
}
