package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"GoldRotation/internal/calculator"
	"GoldRotation/internal/model"
)

// WriteResultCSV writes the per-day backtest table to path: one row per
// trading day with the raw signal, executed position, both asset returns,
// the portfolio return, and the cumulative curve.
func WriteResultCSV(path string, records []model.SignalRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	returns := make([]float64, len(records))
	for i, r := range records {
		returns[i] = r.PortfolioRet
	}
	curve := calculator.CumulativeCurve(returns)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "signal", "position", "gold_ret", "equity_ret", "portfolio_ret", "portfolio_curve"}); err != nil {
		return err
	}
	for i, r := range records {
		row := []string{
			r.Date.Format(model.DateLayout),
			r.Signal,
			r.Position,
			formatFloat(r.GoldRet),
			formatFloat(r.EquityRet),
			formatFloat(r.PortfolioRet),
			formatFloat(curve[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
