package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"GoldRotation/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Gold vs equity momentum rotation backtester",
	Long: "Backtests a two-asset momentum rotation strategy (gold futures vs an\n" +
		"A-share equity index/ETF) and reports risk/return metrics.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger = newLogger(cfg.Logging.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to YAML config file")
	rootCmd.AddCommand(runCmd, refreshCmd, quoteCmd)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()
}
