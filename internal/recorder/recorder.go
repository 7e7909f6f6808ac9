// Package recorder persists backtest results: run summaries to SQLite for
// cross-run analysis, and the per-day result table to CSV as the output
// artifact.
package recorder

import (
	"time"

	"GoldRotation/internal/model"
)

// RunRecord holds everything worth keeping about one backtest run.
type RunRecord struct {
	GoldSymbol   string
	EquitySymbol string
	Start        time.Time
	End          time.Time

	LookbackDays int
	Rebalance    string
	FeeBps       float64

	TradingDays int
	Switches    int
	Summary     model.PerformanceSummary
}

// Recorder persists backtest runs for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
