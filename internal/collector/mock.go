package collector

import (
	"context"
	"fmt"
	"time"

	"GoldRotation/internal/model"
)

// MockFetcher returns scripted results for development and testing.
type MockFetcher struct {
	FetcherName string
	Table       model.RawTable
	Err         error
	// FailuresBeforeSuccess makes the first N calls fail with Err before
	// Table is served, for exercising retry paths.
	FailuresBeforeSuccess int
	// PerSymbol overrides Table for specific symbols.
	PerSymbol map[string]model.RawTable

	Calls   int
	Symbols []string
}

func (m *MockFetcher) Name() string {
	if m.FetcherName == "" {
		return "mock"
	}
	return m.FetcherName
}

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string, _, _ time.Time) (model.RawTable, error) {
	m.Calls++
	m.Symbols = append(m.Symbols, symbol)

	if m.Calls <= m.FailuresBeforeSuccess {
		if m.Err != nil {
			return model.RawTable{}, m.Err
		}
		return model.RawTable{}, fmt.Errorf("mock %s: scripted failure %d", m.Name(), m.Calls)
	}
	if m.Err != nil && m.FailuresBeforeSuccess == 0 {
		return model.RawTable{}, m.Err
	}
	if t, ok := m.PerSymbol[symbol]; ok {
		return t, nil
	}
	return m.Table, nil
}

// MockBars builds a raw table with canonical headers from (date, close)
// pairs, using close for all four price columns.
func MockBars(points map[string]float64) model.RawTable {
	t := model.RawTable{Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"}}
	for date, px := range points {
		v := fmt.Sprintf("%g", px)
		t.Rows = append(t.Rows, []string{date, v, v, v, v, "1000"})
	}
	return t
}
