package strategy

import (
	"sort"
	"time"

	"GoldRotation/internal/model"
)

// Align merges the two close-price series into one date-indexed table
// according to the alignment policy. Rows still missing a value after the
// policy is applied (before the laggard's first observation under
// forward-fill) are dropped, so the result has no gaps.
func Align(gold, equity model.PriceSeries, policy Alignment) model.AlignedPriceTable {
	goldClose := closesByDate(gold)
	equityClose := closesByDate(equity)

	var dates []time.Time
	switch policy {
	case AlignInner:
		for _, b := range gold.Bars {
			if _, ok := equityClose[b.Date]; ok {
				dates = append(dates, b.Date)
			}
		}
	default: // forward-fill over the union of trading days
		seen := make(map[time.Time]bool, len(gold.Bars)+len(equity.Bars))
		for _, b := range gold.Bars {
			seen[b.Date] = true
		}
		for _, b := range equity.Bars {
			seen[b.Date] = true
		}
		dates = make([]time.Time, 0, len(seen))
		for d := range seen {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	}

	table := model.AlignedPriceTable{}
	var lastGold, lastEquity float64
	var haveGold, haveEquity bool
	for _, d := range dates {
		if v, ok := goldClose[d]; ok {
			lastGold, haveGold = v, true
		}
		if v, ok := equityClose[d]; ok {
			lastEquity, haveEquity = v, true
		}
		if !haveGold || !haveEquity {
			continue
		}
		table.Dates = append(table.Dates, d)
		table.Gold = append(table.Gold, lastGold)
		table.Equity = append(table.Equity, lastEquity)
	}
	return table
}

func closesByDate(s model.PriceSeries) map[time.Time]float64 {
	m := make(map[time.Time]float64, len(s.Bars))
	for _, b := range s.Bars {
		m[b.Date] = b.Close
	}
	return m
}
