package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/core/panel"
	"github.com/ydereck/nembid/infra/logger"
	"github.com/ydereck/nembid/infra/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the regression panel from the fetched tables",
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	logg := logger.New("build")
	runID := uuid.NewString()

	st, err := store.New(cfg.Output.DataDir)
	if err != nil {
		return err
	}
	load, err := st.LoadDispatch("dispatch_load.csv")
	if err != nil {
		return err
	}
	prices, err := st.LoadPrices("price_forecast.csv")
	if err != nil {
		return err
	}
	bids, err := st.LoadBidsGlob("bids_*.csv")
	if err != nil {
		return err
	}
	logg.Infof("run %s: loaded %d dispatch, %d price, %d bid records", runID, len(load), len(prices), len(bids))

	start, end, err := cfg.Study.Window()
	if err != nil {
		return err
	}
	rows, err := panel.Build(
		panel.Inputs{Load: load, Prices: prices, Bids: bids},
		panel.Options{
			Start:     start,
			End:       end,
			Batteries: cfg.Study.BatterySet(),
			LogShift:  cfg.Estimator.LogShift,
		},
	)
	if err != nil {
		return fmt.Errorf("build panel: %w", err)
	}

	if err := st.SavePanel("panel.csv", rows); err != nil {
		return err
	}
	logg.Infof("run %s: wrote %d panel rows to %s", runID, len(rows), st.Path("panel.csv"))
	return nil
}
