// Package adapter is the boundary between the strategy and an execution
// venue: latest quotes in, orders out. Backtests never cross it; the CLI
// quote command and any future live deployment do.
package adapter

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"GoldRotation/internal/collector"
	"GoldRotation/internal/model"
	"GoldRotation/internal/normalize"
)

// Quote is the most recent observed price for a symbol.
type Quote struct {
	Symbol string
	Price  float64
	AsOf   time.Time
}

// Order sides and types accepted by the boundary.
const (
	SideBuy  = "buy"
	SideSell = "sell"

	OrderTypeMarket = "market"
)

// Order is a request to change a position.
type Order struct {
	Symbol string
	Qty    float64
	Side   string
	Type   string
}

// OrderAck acknowledges an order submission.
type OrderAck struct {
	Order
	Status   string
	PlacedAt time.Time
}

// Adapter connects the strategy to an execution venue.
type Adapter interface {
	FetchQuote(ctx context.Context, symbol string) (Quote, error)
	PlaceOrder(ctx context.Context, o Order) (OrderAck, error)
}

// DryRunAdapter serves real quotes from a daily-bar provider and
// acknowledges orders without routing them anywhere.
type DryRunAdapter struct {
	Provider collector.Fetcher

	// QuoteWindow is how far back to look for the latest bar. Daily feeds
	// can lag over weekends and holidays.
	QuoteWindow time.Duration

	log zerolog.Logger
}

func NewDryRunAdapter(provider collector.Fetcher, logger zerolog.Logger) *DryRunAdapter {
	return &DryRunAdapter{
		Provider:    provider,
		QuoteWindow: 14 * 24 * time.Hour,
		log:         logger.With().Str("adapter", "dry-run").Logger(),
	}
}

// FetchQuote returns the close of the most recent daily bar the provider
// has for symbol.
func (a *DryRunAdapter) FetchQuote(ctx context.Context, symbol string) (Quote, error) {
	end := model.Day(time.Now())
	start := end.Add(-a.QuoteWindow)

	raw, err := a.Provider.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		return Quote{}, err
	}
	series, err := normalize.Normalize(raw, symbol)
	if err != nil {
		return Quote{}, err
	}
	if series.Empty() {
		return Quote{}, model.ErrEmptyData
	}

	last := series.Bars[series.Len()-1]
	return Quote{Symbol: symbol, Price: last.Close, AsOf: last.Date}, nil
}

// PlaceOrder logs the order and acknowledges it as a dry run.
func (a *DryRunAdapter) PlaceOrder(_ context.Context, o Order) (OrderAck, error) {
	a.log.Info().Str("symbol", o.Symbol).Float64("qty", o.Qty).
		Str("side", o.Side).Str("type", o.Type).Msg("dry-run order")
	return OrderAck{Order: o, Status: "dry-run", PlacedAt: time.Now()}, nil
}
