package model

import (
	"sort"
	"strconv"
	"time"
)

// DateLayout is the canonical calendar-date format used across cache files,
// provider payloads, and output artifacts.
const DateLayout = "2006-01-02"

// PriceBar represents one daily OHLCV record for a single symbol. Date
// carries no time-of-day or timezone component (UTC midnight).
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Symbol string
}

// PriceSeries holds the bars for one symbol, sorted ascending by date with
// unique dates. It is constructed fresh per fetch and never mutated by
// consumers.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int { return len(s.Bars) }

// Empty reports whether the series has no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }

// SubRange returns a copy of the series restricted to [start, end]
// inclusive. Zero start or end means unbounded on that side.
func (s PriceSeries) SubRange(start, end time.Time) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol}
	for _, b := range s.Bars {
		if !start.IsZero() && b.Date.Before(start) {
			continue
		}
		if !end.IsZero() && b.Date.After(end) {
			continue
		}
		out.Bars = append(out.Bars, b)
	}
	return out
}

// Closes returns the close price column.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates returns the date column.
func (s PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Date
	}
	return dates
}

// RawTable builds the tabular representation of the series, with canonical
// headers. Normalizing the result reproduces the series exactly.
func (s PriceSeries) RawTable() RawTable {
	t := RawTable{Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume", "Symbol"}}
	for _, b := range s.Bars {
		t.Rows = append(t.Rows, []string{
			b.Date.Format(DateLayout),
			strconv.FormatFloat(b.Open, 'g', -1, 64),
			strconv.FormatFloat(b.High, 'g', -1, 64),
			strconv.FormatFloat(b.Low, 'g', -1, 64),
			strconv.FormatFloat(b.Close, 'g', -1, 64),
			strconv.FormatFloat(b.Volume, 'g', -1, 64),
			b.Symbol,
		})
	}
	return t
}

// RawTable is the provider-agnostic tabular payload every upstream source is
// reduced to before normalization. Column names are left exactly as the
// provider reported them (possibly bilingual, possibly missing volume).
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t RawTable) Empty() bool { return len(t.Rows) == 0 }

// AlignedPriceTable holds one close price per asset for every date that
// survived the alignment policy. No missing values remain.
type AlignedPriceTable struct {
	Dates  []time.Time
	Gold   []float64
	Equity []float64
}

// Len returns the number of aligned trading days.
func (t AlignedPriceTable) Len() int { return len(t.Dates) }

// Day truncates t to a timezone-naive calendar date (UTC midnight).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SortBars orders bars ascending by date in place.
func SortBars(bars []PriceBar) {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
}
