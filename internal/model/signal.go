package model

import "time"

// SignalRecord is the per-trading-day output of the signal engine.
type SignalRecord struct {
	Date time.Time

	// Signal is the allocation decided from this day's close.
	Signal string
	// Position is what the portfolio actually held this day: the previous
	// day's signal (one-day execution lag).
	Position string

	GoldRet      float64
	EquityRet    float64
	Fee          float64
	PortfolioRet float64
}

// PerformanceSummary holds risk/return metrics derived from a daily return
// series. It is recomputed on demand and never persisted as mutable state.
type PerformanceSummary struct {
	CAGR          float64
	AnnualizedVol float64
	Sharpe        float64
	MaxDrawdown   float64
	TerminalValue float64
}
