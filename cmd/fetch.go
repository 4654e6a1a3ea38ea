package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ydereck/nembid/config"
	"github.com/ydereck/nembid/connectors"
	"github.com/ydereck/nembid/connectors/clients/bidperoffer"
	"github.com/ydereck/nembid/connectors/clients/dispatchload"
	"github.com/ydereck/nembid/connectors/clients/dispatchprice"
	"github.com/ydereck/nembid/core/model"
	"github.com/ydereck/nembid/infra/logger"
	"github.com/ydereck/nembid/infra/metrics"
	"github.com/ydereck/nembid/infra/store"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch market tables into the data directory",
}

var fetchDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Fetch unit dispatch (cleared MW per market)",
	RunE:  runFetchDispatch,
}

var fetchPricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Fetch regional dispatch and pre-dispatch prices",
	RunE:  runFetchPrices,
}

var fetchBidsCmd = &cobra.Command{
	Use:   "bids",
	Short: "Fetch band availabilities per unit and market",
	RunE:  runFetchBids,
}

func init() {
	fetchCmd.AddCommand(fetchDispatchCmd, fetchPricesCmd, fetchBidsCmd)
	rootCmd.AddCommand(fetchCmd)
}

// fetchEnv bundles what every fetch subcommand needs.
type fetchEnv struct {
	cfg   *config.Config
	log   logger.Logger
	sink  metrics.Sink
	store *store.Store
	start time.Time
	end   time.Time
	runID string
}

func newFetchEnv(ctx context.Context) (*fetchEnv, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	start, end, err := cfg.Study.Window()
	if err != nil {
		return nil, err
	}
	sink, err := metrics.FromConfig(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	logg := logger.New("fetch")
	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}
	st, err := store.New(cfg.Output.DataDir)
	if err != nil {
		return nil, err
	}
	return &fetchEnv{
		cfg:   cfg,
		log:   logg,
		sink:  sink,
		store: st,
		start: start,
		end:   end,
		runID: uuid.NewString(),
	}, nil
}

// monthWindows splits the study window into calendar-month chunks. The API
// rejects long ranges, so backfills walk month by month.
func monthWindows(start, end time.Time) [][2]time.Time {
	var out [][2]time.Time
	cur := start
	for cur.Before(end) {
		next := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, cur.Location()).AddDate(0, 1, 0)
		if next.After(end) {
			next = end
		}
		out = append(out, [2]time.Time{cur, next})
		cur = next
	}
	return out
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runFetchDispatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	env, err := newFetchEnv(ctx)
	if err != nil {
		return err
	}
	env.log.Infof("run %s: fetching dispatch %s..%s", env.runID,
		env.start.Format(config.TimeLayout), env.end.Format(config.TimeLayout))

	client := dispatchload.New(env.cfg.API)
	var recs []model.DispatchRecord
	for _, w := range monthWindows(env.start, env.end) {
		began := time.Now()
		resp, err := client.Fetch(ctx,
			dispatchload.WithStartDate(w[0]),
			dispatchload.WithEndDate(w[1]),
			dispatchload.WithUnits(env.cfg.Study.DUIDs),
		)
		env.recordFetch("dispatch_load", resp, began, err)
		if err != nil {
			return fmt.Errorf("fetch dispatch %s: %w", w[0].Format(config.TimeLayout), err)
		}
		chunk, err := resp.(*dispatchload.Response).Records()
		if err != nil {
			return err
		}
		recs = append(recs, chunk...)
	}
	// chunks can overlap on the boundary interval
	recs = model.DedupDispatch(recs)

	if err := env.store.SaveDispatch("dispatch_load.csv", recs); err != nil {
		return err
	}
	env.log.Infof("run %s: wrote %d dispatch records", env.runID, len(recs))
	return nil
}

func runFetchPrices(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	env, err := newFetchEnv(ctx)
	if err != nil {
		return err
	}
	env.log.Infof("run %s: fetching prices %s..%s", env.runID,
		env.start.Format(config.TimeLayout), env.end.Format(config.TimeLayout))

	client := dispatchprice.New(env.cfg.API)
	var recs []model.PriceRecord
	for _, w := range monthWindows(env.start, env.end) {
		began := time.Now()
		resp, err := client.Fetch(ctx,
			dispatchprice.WithStartDate(w[0]),
			dispatchprice.WithEndDate(w[1]),
			dispatchprice.WithRegion(env.cfg.Study.Region),
		)
		env.recordFetch("dispatch_price", resp, began, err)
		if err != nil {
			return fmt.Errorf("fetch prices %s: %w", w[0].Format(config.TimeLayout), err)
		}
		chunk, err := resp.(*dispatchprice.Response).Records()
		if err != nil {
			return err
		}
		recs = append(recs, chunk...)
	}
	// chunks can overlap on the boundary interval
	recs = model.DedupPrices(recs)

	if pr, ok := env.sink.(metrics.PriceRecorder); ok {
		for _, r := range recs {
			for m, v := range r.Actual {
				if err := pr.RecordPrice(metrics.PricePoint{
					Interval: r.Interval, Region: r.Region, Market: m, RRP: v,
				}); err != nil {
					env.log.Warnf("price point: %v", err)
					break
				}
			}
		}
	}

	if err := env.store.SavePrices("price_forecast.csv", recs); err != nil {
		return err
	}
	env.log.Infof("run %s: wrote %d price records", env.runID, len(recs))
	return nil
}

func runFetchBids(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	env, err := newFetchEnv(ctx)
	if err != nil {
		return err
	}
	env.log.Infof("run %s: fetching bids %s..%s", env.runID,
		env.start.Format(config.TimeLayout), env.end.Format(config.TimeLayout))

	client := bidperoffer.New(env.cfg.API)
	total := 0
	for _, w := range monthWindows(env.start, env.end) {
		began := time.Now()
		resp, err := client.Fetch(ctx,
			bidperoffer.WithStartDate(w[0]),
			bidperoffer.WithEndDate(w[1]),
			bidperoffer.WithUnits(env.cfg.Study.DUIDs),
		)
		env.recordFetch("bid_per_offer", resp, began, err)
		if err != nil {
			return fmt.Errorf("fetch bids %s: %w", w[0].Format(config.TimeLayout), err)
		}
		chunk, err := resp.(*bidperoffer.Response).Records()
		if err != nil {
			return err
		}
		chunk = model.DedupBids(chunk)
		// the bid table is by far the largest, so it lands in one file per month
		name := fmt.Sprintf("bids_%s.csv", w[0].Format("2006-01"))
		if err := env.store.SaveBids(name, chunk); err != nil {
			return err
		}
		env.log.Infof("run %s: wrote %d bid records to %s", env.runID, len(chunk), name)
		total += len(chunk)
	}
	env.log.Infof("run %s: wrote %d bid records", env.runID, total)
	return nil
}

func (e *fetchEnv) recordFetch(table string, resp connectors.Response, began time.Time, err error) {
	ev := metrics.FetchEvent{Table: table, Duration: time.Since(began), Err: err}
	if resp != nil {
		ev.Rows = resp.Len()
	}
	if serr := e.sink.RecordFetch(ev); serr != nil {
		e.log.Warnf("metrics sink: %v", serr)
	}
}
