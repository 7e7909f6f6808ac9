package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"GoldRotation/internal/model"
)

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(model.PerformanceSummary{
		CAGR:          0.0834,
		AnnualizedVol: 0.12,
		Sharpe:        0.695,
		MaxDrawdown:   -0.1402,
		TerminalValue: 1.4932,
	})
	assert.Contains(t, out, "CAGR:            +8.34%")
	assert.Contains(t, out, "Annualized vol:  +12.00%")
	assert.Contains(t, out, "Sharpe:          0.6950")
	assert.Contains(t, out, "Max drawdown:    -14.02%")
	assert.Contains(t, out, "Terminal value:  1.4932")
}

func TestFormatSummaryUndefinedMetrics(t *testing.T) {
	out := FormatSummary(model.PerformanceSummary{
		CAGR:          math.NaN(),
		Sharpe:        math.NaN(),
		TerminalValue: 1,
	})
	assert.Contains(t, out, "CAGR:            n/a")
	assert.Contains(t, out, "Sharpe:          n/a")
}

func TestFormatRunHeader(t *testing.T) {
	records := []model.SignalRecord{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	out := FormatRunHeader("GC=F", "510300", records)
	assert.Equal(t, "Backtest GC=F vs 510300 | 2024-01-02 .. 2024-01-03 | 2 trading days\n", out)

	assert.Equal(t, "Backtest GC=F vs 510300: no trading days\n", FormatRunHeader("GC=F", "510300", nil))
}
