package perf

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldRotation/internal/model"
)

func tradingDays(start string, n int) []time.Time {
	t0, err := time.Parse(model.DateLayout, start)
	if err != nil {
		panic(err)
	}
	dates := make([]time.Time, 0, n)
	d := model.Day(t0)
	for len(dates) < n {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			dates = append(dates, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, model.PerformanceSummary{}, Summarize(nil, nil))
	assert.Equal(t, model.PerformanceSummary{}, Summarize([]time.Time{}, []float64{}))
}

func TestSummarizeMismatchedLengths(t *testing.T) {
	dates := tradingDays("2024-01-02", 3)
	assert.Equal(t, model.PerformanceSummary{}, Summarize(dates, []float64{0, 0.01}))
}

func TestSummarizeAllZeroReturns(t *testing.T) {
	dates := tradingDays("2024-01-02", 10)
	returns := make([]float64, 10)

	s := Summarize(dates, returns)
	assert.Zero(t, s.CAGR)
	assert.Zero(t, s.AnnualizedVol)
	assert.True(t, math.IsNaN(s.Sharpe), "zero volatility leaves Sharpe undefined")
	assert.Zero(t, s.MaxDrawdown)
	assert.Equal(t, 1.0, s.TerminalValue)
}

func TestSummarizeSingleObservation(t *testing.T) {
	dates := tradingDays("2024-01-02", 1)
	s := Summarize(dates, []float64{0.01})
	assert.True(t, math.IsNaN(s.CAGR), "zero elapsed time leaves CAGR undefined")
	assert.InDelta(t, 1.01, s.TerminalValue, 1e-12)
}

func TestSummarizeKnownValues(t *testing.T) {
	// Exactly one year elapsed: +10% on the first day, flat after.
	t0, _ := time.Parse(model.DateLayout, "2023-01-02")
	start := model.Day(t0)
	dates := []time.Time{start, start.Add(time.Duration(365.25 * 24 * float64(time.Hour)))}

	s := Summarize(dates, []float64{0.10, 0})
	assert.InDelta(t, 0.10, s.CAGR, 1e-9)
	assert.InDelta(t, 1.10, s.TerminalValue, 1e-12)
	assert.Zero(t, s.MaxDrawdown, "a rising curve never draws down")
}

func TestSummarizeDrawdown(t *testing.T) {
	dates := tradingDays("2024-01-02", 4)
	// Curve: 1.0, 1.2, 0.9, 0.99. Worst point is 0.9/1.2 - 1 = -25%.
	returns := []float64{0, 0.2, 0.9/1.2 - 1, 0.1}

	s := Summarize(dates, returns)
	assert.InDelta(t, -0.25, s.MaxDrawdown, 1e-12)
	assert.True(t, s.AnnualizedVol > 0)
	require.False(t, math.IsNaN(s.Sharpe))
}

func TestSummarizeRecords(t *testing.T) {
	dates := tradingDays("2024-01-02", 3)
	records := []model.SignalRecord{
		{Date: dates[0], PortfolioRet: 0},
		{Date: dates[1], PortfolioRet: 0.02},
		{Date: dates[2], PortfolioRet: -0.01},
	}

	got := SummarizeRecords(records)
	want := Summarize(dates, []float64{0, 0.02, -0.01})
	assert.Equal(t, want, got)
}
