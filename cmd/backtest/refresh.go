package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"GoldRotation/internal/cache"
	"GoldRotation/internal/collector"
	"GoldRotation/internal/model"
	"GoldRotation/internal/scheduler"
)

var (
	flagDaemon       bool
	flagRefreshStart string
	flagRefreshEnd   string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the on-disk price cache for both assets",
	Long: "Fetches the full history for gold and equity straight from the\n" +
		"providers and rewrites the cache files. With --daemon the refresh\n" +
		"repeats on the configured cron schedule.",
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&flagDaemon, "daemon", false, "keep running and refresh on the refresh.cron schedule")
	refreshCmd.Flags().StringVar(&flagRefreshStart, "start", "2015-01-01", "history start date (YYYY-MM-DD)")
	refreshCmd.Flags().StringVar(&flagRefreshEnd, "end", "", "history end date (YYYY-MM-DD), defaults to today")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	start, end, err := parseRange(flagRefreshStart, flagRefreshEnd)
	if err != nil {
		return err
	}

	store := cache.NewStore(cfg.Data.Dir)
	opts := cfg.FetchOptions()
	opts.UseCache = false // force network so the cache actually refreshes

	job := func() error {
		ctx := context.Background()
		end := end
		if flagRefreshEnd == "" {
			// Daemon runs span days; track "today" per invocation.
			end = model.Day(time.Now())
		}

		goldPipe := collector.NewGoldPipeline(store, opts, cfg.Proxy, logger)
		goldPipe.Symbol = cfg.Assets.GoldSymbol
		goldPipe.Contracts = cfg.Assets.GoldContracts
		goldPipe.ProxyCode = cfg.Assets.GoldProxy
		gold, err := goldPipe.Fetch(ctx, start, end)
		if err != nil {
			return err
		}
		logger.Info().Str("symbol", gold.Symbol).Int("bars", gold.Len()).Msg("gold cache refreshed")

		equityPipe := collector.NewEquityPipeline(cfg.Assets.EquitySymbol,
			collector.InstrumentKind(cfg.Assets.EquityKind), store, opts, cfg.Proxy, logger)
		equity, err := equityPipe.Fetch(ctx, start, end)
		if err != nil {
			return err
		}
		logger.Info().Str("symbol", equity.Symbol).Int("bars", equity.Len()).Msg("equity cache refreshed")
		return nil
	}

	if !flagDaemon {
		return job()
	}

	sched := scheduler.New(logger)
	if err := sched.RegisterRefresh(cfg.Refresh.Cron, job); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info().Msg("shutdown signal received")
	return nil
}
