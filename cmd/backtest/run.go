package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"GoldRotation/internal/cache"
	"GoldRotation/internal/collector"
	"GoldRotation/internal/model"
	"GoldRotation/internal/perf"
	"GoldRotation/internal/recorder"
	"GoldRotation/internal/report"
	"GoldRotation/internal/strategy"
)

var (
	flagStart     string
	flagEnd       string
	flagEquity    string
	flagLookback  int
	flagRebalance string
	flagFeeBps    float64
	flagNoCache   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch both assets, run the rotation backtest, and report metrics",
	RunE:  runBacktest,
}

func init() {
	runCmd.Flags().StringVar(&flagStart, "start", "2015-01-01", "start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&flagEnd, "end", "", "end date (YYYY-MM-DD), defaults to today")
	runCmd.Flags().StringVar(&flagEquity, "equity", "", "equity symbol override (A-share ETF or index code)")
	runCmd.Flags().IntVar(&flagLookback, "lookback", 0, "momentum lookback in trading days")
	runCmd.Flags().StringVar(&flagRebalance, "rebalance", "", "rebalance mode: daily, weekly, or monthly")
	runCmd.Flags().Float64Var(&flagFeeBps, "fee-bps", -1, "one-way trading cost in basis points")
	runCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "skip the cache-hit short circuit")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	start, end, err := parseRange(flagStart, flagEnd)
	if err != nil {
		return err
	}
	applyFlagOverrides()

	rcfg, err := cfg.RotationConfig()
	if err != nil {
		return fmt.Errorf("invalid strategy configuration: %w", err)
	}

	store := cache.NewStore(cfg.Data.Dir)
	opts := cfg.FetchOptions()
	if flagNoCache {
		opts.UseCache = false
	}

	ctx := cmd.Context()

	goldPipe := collector.NewGoldPipeline(store, opts, cfg.Proxy, logger)
	goldPipe.Symbol = cfg.Assets.GoldSymbol
	goldPipe.Contracts = cfg.Assets.GoldContracts
	goldPipe.ProxyCode = cfg.Assets.GoldProxy
	gold, err := goldPipe.Fetch(ctx, start, end)
	if err != nil {
		return describeFetchError("gold", start, end, err)
	}
	logger.Info().Str("symbol", gold.Symbol).Int("bars", gold.Len()).Msg("gold series ready")

	equityPipe := collector.NewEquityPipeline(cfg.Assets.EquitySymbol,
		collector.InstrumentKind(cfg.Assets.EquityKind), store, opts, cfg.Proxy, logger)
	equity, err := equityPipe.Fetch(ctx, start, end)
	if err != nil {
		return describeFetchError("equity", start, end, err)
	}
	logger.Info().Str("symbol", equity.Symbol).Int("bars", equity.Len()).Msg("equity series ready")

	records, err := strategy.GenerateSignals(gold, equity, rcfg)
	if err != nil {
		return err
	}
	summary := perf.SummarizeRecords(records)

	outPath := filepath.Join(cfg.Output.Dir, fmt.Sprintf("backtest_%s.csv", cfg.Assets.EquitySymbol))
	if err := recorder.WriteResultCSV(outPath, records); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	logger.Info().Str("path", outPath).Msg("result table written")

	if err := recordRun(records, summary, rcfg); err != nil {
		logger.Warn().Err(err).Msg("recording run failed")
	}

	fmt.Print(report.FormatRunHeader(cfg.Assets.GoldSymbol, cfg.Assets.EquitySymbol, records))
	fmt.Print(report.FormatSummary(summary))
	return nil
}

func recordRun(records []model.SignalRecord, summary model.PerformanceSummary, rcfg strategy.RotationConfig) error {
	var rec recorder.Recorder
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath)
		if err != nil {
			return err
		}
		rec = sr
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	run := &recorder.RunRecord{
		GoldSymbol:   cfg.Assets.GoldSymbol,
		EquitySymbol: cfg.Assets.EquitySymbol,
		LookbackDays: rcfg.LookbackDays,
		Rebalance:    string(rcfg.Rebalance),
		FeeBps:       rcfg.FeeBps,
		TradingDays:  len(records),
		Summary:      summary,
	}
	if len(records) > 0 {
		run.Start = records[0].Date
		run.End = records[len(records)-1].Date
	}
	for _, r := range records {
		if r.Fee > 0 {
			run.Switches++
		}
	}
	return rec.RecordRun(run)
}

// describeFetchError reports the specific failure kind so a retry exhaustion
// is not mistaken for a data-quality bug or vice versa.
func describeFetchError(asset string, start, end time.Time, err error) error {
	rangeStr := fmt.Sprintf("%s..%s", start.Format(model.DateLayout), end.Format(model.DateLayout))

	var unavailable *model.DataUnavailableError
	if errors.As(err, &unavailable) {
		return fmt.Errorf("%s series unavailable for %s: every source exhausted (%d attempts): %w",
			asset, rangeStr, unavailable.Attempts, unavailable.Last)
	}
	var schemaErr *model.SchemaError
	if errors.As(err, &schemaErr) {
		return fmt.Errorf("%s series for %s: malformed provider payload: %w", asset, rangeStr, err)
	}
	if errors.Is(err, model.ErrEmptyData) {
		return fmt.Errorf("%s series for %s: provider returned no rows: %w", asset, rangeStr, err)
	}
	return fmt.Errorf("%s series for %s: %w", asset, rangeStr, err)
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.DateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
	}
	end := model.Day(time.Now())
	if endStr != "" {
		end, err = time.Parse(model.DateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
	}
	return model.Day(start), end, nil
}

func applyFlagOverrides() {
	if flagEquity != "" {
		cfg.Assets.EquitySymbol = flagEquity
	}
	if flagLookback > 0 {
		cfg.Strategy.LookbackDays = flagLookback
	}
	if flagRebalance != "" {
		cfg.Strategy.Rebalance = flagRebalance
	}
	if flagFeeBps >= 0 {
		cfg.Strategy.FeeBps = flagFeeBps
	}
}
