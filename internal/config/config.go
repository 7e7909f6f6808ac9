package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"GoldRotation/internal/collector"
	"GoldRotation/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir      string `yaml:"dir"`
		UseCache bool   `yaml:"use_cache"`
	} `yaml:"data"`
	Assets struct {
		GoldSymbol    string   `yaml:"gold_symbol"`
		GoldContracts []string `yaml:"gold_contracts"`
		GoldProxy     string   `yaml:"gold_proxy"`
		EquitySymbol  string   `yaml:"equity_symbol"`
		EquityKind    string   `yaml:"equity_kind"` // auto | etf | index
	} `yaml:"assets"`
	Strategy struct {
		LookbackDays int     `yaml:"lookback_days"`
		Rebalance    string  `yaml:"rebalance"`
		FeeBps       float64 `yaml:"fee_bps"`
		CashSymbol   string  `yaml:"cash_symbol"`
		Alignment    string  `yaml:"alignment"` // ffill | inner
	} `yaml:"strategy"`
	Fetch struct {
		Retries        int     `yaml:"retries"`
		BackoffSeconds float64 `yaml:"backoff_seconds"`
	} `yaml:"fetch"`
	Output struct {
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Refresh struct {
		Cron string `yaml:"cron"`
	} `yaml:"refresh"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Data.UseCache = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Assets.GoldSymbol == "" {
		cfg.Assets.GoldSymbol = "GC=F"
	}
	if len(cfg.Assets.GoldContracts) == 0 {
		cfg.Assets.GoldContracts = []string{"AU0", "AU9999"}
	}
	if cfg.Assets.GoldProxy == "" {
		cfg.Assets.GoldProxy = "518880"
	}
	if cfg.Assets.EquitySymbol == "" {
		cfg.Assets.EquitySymbol = "510300"
	}
	if cfg.Assets.EquityKind == "" {
		cfg.Assets.EquityKind = string(collector.KindAuto)
	}
	if cfg.Strategy.LookbackDays == 0 {
		cfg.Strategy.LookbackDays = 60
	}
	if cfg.Strategy.Rebalance == "" {
		cfg.Strategy.Rebalance = string(strategy.RebalanceWeekly)
	}
	if cfg.Strategy.FeeBps == 0 {
		cfg.Strategy.FeeBps = 5.0
	}
	if cfg.Strategy.CashSymbol == "" {
		cfg.Strategy.CashSymbol = "CASH"
	}
	if cfg.Strategy.Alignment == "" {
		cfg.Strategy.Alignment = string(strategy.AlignForwardFill)
	}
	if cfg.Fetch.Retries == 0 {
		cfg.Fetch.Retries = 3
	}
	if cfg.Fetch.BackoffSeconds == 0 {
		cfg.Fetch.BackoffSeconds = 2
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Refresh.Cron == "" {
		// Weekday evenings after the SHFE day session settles.
		cfg.Refresh.Cron = "0 30 17 * * 1-5"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// RotationConfig builds the validated strategy configuration.
func (c *Config) RotationConfig() (strategy.RotationConfig, error) {
	rc := strategy.RotationConfig{
		LookbackDays: c.Strategy.LookbackDays,
		Rebalance:    strategy.Rebalance(c.Strategy.Rebalance),
		FeeBps:       c.Strategy.FeeBps,
		CashSymbol:   c.Strategy.CashSymbol,
		Alignment:    strategy.Alignment(c.Strategy.Alignment),
	}
	if err := rc.Validate(); err != nil {
		return strategy.RotationConfig{}, err
	}
	return rc, nil
}

// FetchOptions builds the acquisition-layer options.
func (c *Config) FetchOptions() collector.Options {
	return collector.Options{
		Retries:  c.Fetch.Retries,
		Backoff:  time.Duration(c.Fetch.BackoffSeconds * float64(time.Second)),
		UseCache: c.Data.UseCache,
	}
}
