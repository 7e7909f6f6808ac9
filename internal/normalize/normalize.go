// Package normalize maps heterogeneous provider payloads into canonical
// price series. Upstream feeds disagree on almost everything: column
// language (Chinese vs English headers), whether volume exists, and whether
// dates carry a time-of-day component. Everything funnels through Normalize
// so downstream code only ever sees clean data.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"GoldRotation/internal/model"
)

// columnAliases maps lowercase provider column names to canonical fields.
// Covers Yahoo-style English headers, EastMoney/Sina Chinese headers, and
// futures settlement columns.
var columnAliases = map[string]string{
	"date":      "date",
	"日期":        "date",
	"时间":        "date",
	"open":      "open",
	"开盘":        "open",
	"开盘价":       "open",
	"high":      "high",
	"最高":        "high",
	"最高价":       "high",
	"low":       "low",
	"最低":        "low",
	"最低价":       "low",
	"close":     "close",
	"adj close": "close",
	"收盘":        "close",
	"收盘价":       "close",
	"结算价":       "close",
	"settle":    "close",
	"volume":    "volume",
	"vol":       "volume",
	"成交量":       "volume",
	"成交量(手)":    "volume",
	"symbol":    "symbol",
	"代码":        "symbol",
}

var required = []string{"date", "open", "high", "low", "close"}

// dateLayouts are tried in order when parsing the date column. Any
// time-of-day component is truncated afterwards.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"20060102",
}

// Normalize converts a raw provider table into a canonical PriceSeries
// tagged with the requested symbol. It returns model.ErrEmptyData for a
// zero-row table and *model.SchemaError when a required column cannot be
// resolved. Normalizing an already-normalized series is a no-op.
func Normalize(raw model.RawTable, symbol string) (model.PriceSeries, error) {
	if raw.Empty() {
		return model.PriceSeries{}, fmt.Errorf("normalize %s: %w", symbol, model.ErrEmptyData)
	}

	idx, missing := resolveColumns(raw.Columns)
	if len(missing) > 0 {
		return model.PriceSeries{}, &model.SchemaError{Symbol: symbol, Missing: missing}
	}

	bars := make([]model.PriceBar, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		date, ok := parseDate(cell(row, idx["date"]))
		if !ok {
			continue
		}
		open := parsePrice(cell(row, idx["open"]))
		high := parsePrice(cell(row, idx["high"]))
		low := parsePrice(cell(row, idx["low"]))
		closePx := parsePrice(cell(row, idx["close"]))
		if math.IsNaN(open) || math.IsNaN(high) || math.IsNaN(low) || math.IsNaN(closePx) {
			continue
		}

		volume := 0.0
		if vi, ok := idx["volume"]; ok {
			if v := parseNumber(cell(row, vi)); !math.IsNaN(v) {
				volume = v
			}
		}

		bars = append(bars, model.PriceBar{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePx,
			Volume: volume,
			Symbol: symbol,
		})
	}

	model.SortBars(bars)

	// Deduplicate by date, last write wins; SortBars is stable so the last
	// occurrence in provider order survives.
	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].Date.Equal(b.Date) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}

	return model.PriceSeries{Symbol: symbol, Bars: out}, nil
}

// resolveColumns maps provider column positions to canonical names using a
// case- and language-insensitive alias table. A wholly absent volume column
// is tolerated (a zero column is synthesized per row).
func resolveColumns(columns []string) (map[string]int, []string) {
	idx := make(map[string]int, len(required)+1)
	for i, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		canonical, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, seen := idx[canonical]; seen {
			continue // first matching column wins
		}
		idx[canonical] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return idx, missing
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Day(t), true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a cell to a float, treating unparseable values as
// missing (NaN). Thousands separators are stripped first.
func parseNumber(s string) float64 {
	if s == "" || s == "-" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parsePrice is parseNumber with the series invariant applied: prices must
// be finite and non-negative, anything else counts as missing.
func parsePrice(s string) float64 {
	v := parseNumber(s)
	if math.IsInf(v, 0) || v < 0 {
		return math.NaN()
	}
	return v
}
