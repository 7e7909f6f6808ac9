package strategy

import (
	"math"
	"time"

	"GoldRotation/internal/calculator"
	"GoldRotation/internal/model"
)

// GenerateSignals runs the rotation strategy over the two asset series and
// returns one record per aligned trading day.
//
// Decisions use lookback momentum evaluated at rebalance dates only. The
// asset with the strictly greatest momentum is picked; exact ties go to GOLD
// (fixed precedence, GOLD before EQUITY). If the best momentum is <= 0 the
// strategy moves to cash. A decision holds until the next decision date, and
// the position held on day t is the signal decided on day t-1: a decision
// made from day-T closes cannot realistically be executed at those same
// closes, so it fills one day later.
func GenerateSignals(gold, equity model.PriceSeries, cfg RotationConfig) ([]model.SignalRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table := Align(gold, equity, cfg.alignment())
	n := table.Len()
	if n == 0 {
		return []model.SignalRecord{}, nil
	}

	goldRet := calculator.DailyReturns(table.Gold)
	equityRet := calculator.DailyReturns(table.Equity)
	goldMom := calculator.Momentum(table.Gold, cfg.LookbackDays)
	equityMom := calculator.Momentum(table.Equity, cfg.LookbackDays)
	decide := decisionDates(table.Dates, cfg.Rebalance)

	oneWayFee := cfg.FeeBps / 10000.0

	records := make([]model.SignalRecord, n)
	signal := cfg.CashSymbol // carried until the first valid decision
	prevPosition := cfg.CashSymbol
	prevSignal := cfg.CashSymbol
	for t := 0; t < n; t++ {
		// Momentum can be undefined at a scheduled decision date while the
		// lookback window is still filling; the previous signal carries.
		if decide[t] && !math.IsNaN(goldMom[t]) && !math.IsNaN(equityMom[t]) {
			signal = pick(goldMom[t], equityMom[t], cfg.CashSymbol)
		}

		position := prevSignal // one-day execution lag
		fee := 0.0
		if position != prevPosition {
			// One full one-way cost per change: entry, exit, or a direct
			// switch all count once.
			fee = oneWayFee
		}

		ret := -fee
		switch position {
		case AssetGold:
			ret += goldRet[t]
		case AssetEquity:
			ret += equityRet[t]
		}

		records[t] = model.SignalRecord{
			Date:         table.Dates[t],
			Signal:       signal,
			Position:     position,
			GoldRet:      goldRet[t],
			EquityRet:    equityRet[t],
			Fee:          fee,
			PortfolioRet: ret,
		}
		prevPosition = position
		prevSignal = signal
	}
	return records, nil
}

// pick selects the asset with the strictly greatest momentum; ties resolve
// to GOLD. A non-positive maximum means no positive trend, so cash.
func pick(goldMom, equityMom float64, cash string) string {
	best := goldMom
	choice := AssetGold
	if equityMom > best {
		best = equityMom
		choice = AssetEquity
	}
	if best <= 0 {
		return cash
	}
	return choice
}

// decisionDates marks which observations are rebalance decision dates.
// daily: every date; weekly: the last observation on or before each Friday;
// monthly: the last observation of each calendar month. The final
// observation always closes its (possibly partial) period.
func decisionDates(dates []time.Time, mode Rebalance) []bool {
	n := len(dates)
	mask := make([]bool, n)
	for t := 0; t < n; t++ {
		if mode == RebalanceDaily || t == n-1 {
			mask[t] = true
			continue
		}
		switch mode {
		case RebalanceWeekly:
			mask[t] = weekEndingFriday(dates[t]) != weekEndingFriday(dates[t+1])
		case RebalanceMonthly:
			mask[t] = dates[t].Month() != dates[t+1].Month() || dates[t].Year() != dates[t+1].Year()
		}
	}
	return mask
}

// weekEndingFriday returns the Friday on or after d; Saturday and Sunday
// roll into the following week.
func weekEndingFriday(d time.Time) time.Time {
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}
