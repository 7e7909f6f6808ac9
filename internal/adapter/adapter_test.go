package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldRotation/internal/collector"
	"GoldRotation/internal/model"
)

func TestFetchQuoteReturnsLatestClose(t *testing.T) {
	mock := &collector.MockFetcher{
		Table: collector.MockBars(map[string]float64{
			"2024-01-02": 100,
			"2024-01-04": 104.5,
			"2024-01-03": 102,
		}),
	}
	a := NewDryRunAdapter(mock, zerolog.Nop())

	q, err := a.FetchQuote(context.Background(), "518880")
	require.NoError(t, err)
	assert.Equal(t, "518880", q.Symbol)
	assert.Equal(t, 104.5, q.Price, "latest bar wins regardless of feed order")
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), q.AsOf)
	assert.Equal(t, 1, mock.Calls)
}

func TestFetchQuoteProviderError(t *testing.T) {
	mock := &collector.MockFetcher{Err: errors.New("connection refused")}
	a := NewDryRunAdapter(mock, zerolog.Nop())

	_, err := a.FetchQuote(context.Background(), "GC=F")
	require.Error(t, err)
}

func TestFetchQuoteEmptyFeed(t *testing.T) {
	mock := &collector.MockFetcher{
		Table: model.RawTable{Columns: []string{"Date", "Open", "High", "Low", "Close"}},
	}
	a := NewDryRunAdapter(mock, zerolog.Nop())

	_, err := a.FetchQuote(context.Background(), "GC=F")
	require.ErrorIs(t, err, model.ErrEmptyData)
}

func TestPlaceOrderDryRun(t *testing.T) {
	a := NewDryRunAdapter(&collector.MockFetcher{}, zerolog.Nop())

	ack, err := a.PlaceOrder(context.Background(), Order{
		Symbol: "510300", Qty: 100, Side: SideBuy, Type: OrderTypeMarket,
	})
	require.NoError(t, err)
	assert.Equal(t, "dry-run", ack.Status)
	assert.Equal(t, "510300", ack.Symbol)
	assert.Equal(t, SideBuy, ack.Side)
	assert.False(t, ack.PlacedAt.IsZero())
}
