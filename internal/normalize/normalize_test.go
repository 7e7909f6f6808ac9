package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldRotation/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestNormalizeChineseHeaders(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量"},
		Rows: [][]string{
			{"2024-01-03", "10.1", "10.4", "10.5", "10.0", "120000"},
			{"2024-01-02", "10.0", "10.1", "10.2", "9.9", "100000"},
		},
	}

	series, err := Normalize(raw, "510300")
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())

	assert.Equal(t, "510300", series.Symbol)
	assert.Equal(t, date("2024-01-02"), series.Bars[0].Date)
	assert.Equal(t, 10.1, series.Bars[0].Close)
	assert.Equal(t, 100000.0, series.Bars[0].Volume)
	assert.Equal(t, "510300", series.Bars[1].Symbol)
}

func TestNormalizeAdjCloseMapsToClose(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"Date", "Open", "High", "Low", "Adj Close", "Volume"},
		Rows: [][]string{
			{"2024-01-02", "2040", "2055", "2035", "2050.5", "180000"},
		},
	}

	series, err := Normalize(raw, "GC=F")
	require.NoError(t, err)
	require.Equal(t, 1, series.Len())
	assert.Equal(t, 2050.5, series.Bars[0].Close)
}

func TestNormalizeSynthesizesMissingVolume(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"date", "open", "high", "low", "close"},
		Rows: [][]string{
			{"2024-01-02", "1", "2", "1", "1.5"},
			{"2024-01-03", "1.5", "2", "1", "1.8"},
		},
	}

	series, err := Normalize(raw, "AU0")
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	for _, b := range series.Bars {
		assert.Zero(t, b.Volume)
	}
}

func TestNormalizeDropsIncompleteRows(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"},
		Rows: [][]string{
			{"2024-01-02", "10", "11", "9", "10.5", "100"},
			{"2024-01-03", "", "11", "9", "10.6", "100"},     // missing open
			{"2024-01-04", "10", "null", "9", "10.7", "100"}, // unparseable high
			{"2024-01-05", "10", "11", "-9", "10.8", "100"},  // negative low
			{"2024-01-08", "10", "11", "9", "10.9", "oops"},  // bad volume only
		},
	}

	series, err := Normalize(raw, "X")
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, date("2024-01-02"), series.Bars[0].Date)
	assert.Equal(t, date("2024-01-08"), series.Bars[1].Date)
	assert.Zero(t, series.Bars[1].Volume, "bad volume defaults to zero, row kept")
}

func TestNormalizeSortsAndDeduplicates(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"},
		Rows: [][]string{
			{"2024-01-05", "3", "3", "3", "3", "1"},
			{"2024-01-02", "1", "1", "1", "1", "1"},
			{"2024-01-05", "4", "4", "4", "4", "1"}, // duplicate date, last wins
			{"2024-01-03", "2", "2", "2", "2", "1"},
		},
	}

	series, err := Normalize(raw, "X")
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{1, 2, 4}, series.Closes())
}

func TestNormalizeTruncatesTimeOfDay(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"Date", "Open", "High", "Low", "Close"},
		Rows: [][]string{
			{"2024-01-02 15:00:00", "1", "1", "1", "1"},
			{"2024/01/03", "2", "2", "2", "2"},
			{"20240104", "3", "3", "3", "3"},
		},
	}

	series, err := Normalize(raw, "X")
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, date("2024-01-02"), series.Bars[0].Date)
	assert.Equal(t, date("2024-01-03"), series.Bars[1].Date)
	assert.Equal(t, date("2024-01-04"), series.Bars[2].Date)
}

func TestNormalizeEmptyTable(t *testing.T) {
	_, err := Normalize(model.RawTable{Columns: []string{"Date"}}, "X")
	assert.ErrorIs(t, err, model.ErrEmptyData)
}

func TestNormalizeSchemaError(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"Date", "Open", "Trades"},
		Rows:    [][]string{{"2024-01-02", "1", "5"}},
	}

	_, err := Normalize(raw, "X")
	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.ElementsMatch(t, []string{"high", "low", "close"}, schemaErr.Missing)
	assert.Equal(t, "X", schemaErr.Symbol)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := model.RawTable{
		Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量"},
		Rows: [][]string{
			{"2024-01-02", "10.125", "10.375", "10.5", "9.875", "123456"},
			{"2024-01-03", "10.375", "10.0625", "10.4", "10.01", "654321"},
		},
	}

	first, err := Normalize(raw, "510300")
	require.NoError(t, err)

	second, err := Normalize(first.RawTable(), "510300")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// And the tabular form is byte-identical as well.
	assert.Equal(t, first.RawTable(), second.RawTable())
}
