// Package report renders backtest results for human consumption.
package report

import (
	"fmt"
	"math"
	"strings"

	"GoldRotation/internal/model"
)

// FormatSummary renders the performance metrics as a fixed-width block for
// terminal output.
func FormatSummary(s model.PerformanceSummary) string {
	var b strings.Builder
	b.WriteString("Performance summary\n")
	b.WriteString(fmt.Sprintf("  CAGR:            %s\n", percent(s.CAGR)))
	b.WriteString(fmt.Sprintf("  Annualized vol:  %s\n", percent(s.AnnualizedVol)))
	b.WriteString(fmt.Sprintf("  Sharpe:          %s\n", number(s.Sharpe)))
	b.WriteString(fmt.Sprintf("  Max drawdown:    %s\n", percent(s.MaxDrawdown)))
	b.WriteString(fmt.Sprintf("  Terminal value:  %s\n", number(s.TerminalValue)))
	return b.String()
}

// FormatRunHeader describes the run parameters above the summary block.
func FormatRunHeader(goldSymbol, equitySymbol string, records []model.SignalRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("Backtest %s vs %s: no trading days\n", goldSymbol, equitySymbol)
	}
	first := records[0].Date.Format(model.DateLayout)
	last := records[len(records)-1].Date.Format(model.DateLayout)
	return fmt.Sprintf("Backtest %s vs %s | %s .. %s | %d trading days\n",
		goldSymbol, equitySymbol, first, last, len(records))
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}
