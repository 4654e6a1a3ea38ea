package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/core/logit"
	"github.com/ydereck/nembid/core/panel"
	"github.com/ydereck/nembid/infra/logger"
	"github.com/ydereck/nembid/infra/store"
	"github.com/ydereck/nembid/pkg/export"
)

var fitModel string

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Estimate the bid revision logit",
	RunE:  runFit,
}

func init() {
	fitCmd.Flags().StringVarP(&fitModel, "model", "m", "plain",
		"model variant: plain, signed, stacked or volatility")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	variant, err := logit.ParseVariant(fitModel)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	logg := logger.New("fit")
	runID := uuid.NewString()

	st, err := store.New(cfg.Output.DataDir)
	if err != nil {
		return err
	}
	rows, err := st.LoadPanel("panel.csv")
	if err != nil {
		return err
	}

	trimmed := panel.TrimExtremeErrors(rows, cfg.Estimator.TrimQuantile)
	logg.Infof("run %s: trimmed %d of %d panel rows above the %.0f%% |FE| quantile",
		runID, len(rows)-len(trimmed), len(rows), cfg.Estimator.TrimQuantile*100)

	design, err := logit.BuildDesign(variant, trimmed)
	if err != nil {
		return err
	}
	res, err := logit.Fit(design, logit.Options{
		MaxIterations: cfg.Estimator.MaxIterations,
		Tolerance:     cfg.Estimator.Tolerance,
		ClusterSE:     cfg.Estimator.ClusterSE,
	})
	if err != nil {
		return fmt.Errorf("fit %s: %w", variant, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Summary())

	if variant == logit.VariantSigned {
		r, err := logit.SignedSymmetryRestriction(design)
		if err != nil {
			return err
		}
		w, err := res.Wald(r, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"symmetry of positive and negative surprises: chi2=%.4f p=%.4f\n",
			w.Statistic, w.P)
	}

	if err := os.MkdirAll(cfg.Output.ReportDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output.ReportDir, err)
	}
	base := filepath.Join(cfg.Output.ReportDir, "fit_"+string(variant))
	if err := writeResult(base+".csv", func(f *os.File) error { return export.WriteCSV(f, res) }); err != nil {
		return err
	}
	if err := writeResult(base+".json", func(f *os.File) error { return export.WriteJSON(f, res) }); err != nil {
		return err
	}
	logg.Infof("run %s: wrote %s.csv and %s.json", runID, base, base)
	return nil
}

func writeResult(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
