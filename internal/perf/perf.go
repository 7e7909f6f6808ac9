// Package perf computes risk/return statistics from a daily return series.
package perf

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"GoldRotation/internal/calculator"
	"GoldRotation/internal/model"
)

const tradingDaysPerYear = 252

// Summarize derives the performance metrics from a dated daily return
// series. dates and returns must have equal length. An empty input yields a
// zero-value summary, not an error. CAGR and Sharpe are NaN when undefined
// (single observation, zero volatility) rather than raising a division
// error.
func Summarize(dates []time.Time, returns []float64) model.PerformanceSummary {
	if len(returns) == 0 || len(dates) != len(returns) {
		return model.PerformanceSummary{}
	}

	curve := calculator.CumulativeCurve(returns)
	terminal := curve[len(curve)-1]

	years := dates[len(dates)-1].Sub(dates[0]).Hours() / 24 / 365.25
	cagr := math.NaN()
	if years > 0 {
		cagr = math.Pow(terminal, 1/years) - 1
	}

	vol := stat.StdDev(returns, nil) // sample stddev, matching the research code
	annVol := vol * math.Sqrt(tradingDaysPerYear)

	sharpe := math.NaN()
	if vol != 0 && !math.IsNaN(vol) {
		sharpe = stat.Mean(returns, nil) / vol * math.Sqrt(tradingDaysPerYear)
	}

	return model.PerformanceSummary{
		CAGR:          cagr,
		AnnualizedVol: annVol,
		Sharpe:        sharpe,
		MaxDrawdown:   calculator.MaxDrawdown(curve),
		TerminalValue: terminal,
	}
}

// SummarizeRecords runs Summarize over the portfolio return column of a
// signal record sequence.
func SummarizeRecords(records []model.SignalRecord) model.PerformanceSummary {
	dates := make([]time.Time, len(records))
	returns := make([]float64, len(records))
	for i, r := range records {
		dates[i] = r.Date
		returns[i] = r.PortfolioRet
	}
	return Summarize(dates, returns)
}
