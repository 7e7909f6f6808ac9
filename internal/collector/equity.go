package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"GoldRotation/internal/cache"
	"GoldRotation/internal/model"
	"GoldRotation/internal/normalize"
)

// EquityPipeline fetches the A-share equity leg from a single regional
// provider. The feed is considered reliable, so there is no fallback chain:
// an empty result surfaces DataUnavailableError directly.
type EquityPipeline struct {
	Symbol   string
	Provider Fetcher
	Cache    *cache.Store
	Opts     Options
	log      zerolog.Logger
}

// NewEquityPipeline wires the EastMoney provider for an ETF or index symbol.
// kind is usually KindAuto and resolved from the code prefix.
func NewEquityPipeline(symbol string, kind InstrumentKind, store *cache.Store, opts Options, proxyURL string, logger zerolog.Logger) *EquityPipeline {
	return &EquityPipeline{
		Symbol:   symbol,
		Provider: NewEastMoneyFetcher(kind, proxyURL),
		Cache:    store,
		Opts:     opts,
		log:      logger.With().Str("pipeline", "equity").Str("symbol", symbol).Logger(),
	}
}

// Fetch returns the normalized equity series restricted to [start, end].
func (p *EquityPipeline) Fetch(ctx context.Context, start, end time.Time) (model.PriceSeries, error) {
	if p.Opts.UseCache && p.Cache != nil {
		if raw, err := p.Cache.Read(p.Symbol); err == nil {
			if series, err := normalize.Normalize(raw, p.Symbol); err == nil {
				if sub := series.SubRange(start, end); !sub.Empty() {
					p.log.Debug().Int("bars", sub.Len()).Msg("cache hit")
					return sub, nil
				}
			}
		}
	}

	raw, err := p.Provider.FetchDaily(ctx, p.Symbol, start, end)
	if err != nil {
		return model.PriceSeries{}, &model.DataUnavailableError{Symbol: p.Symbol, Attempts: 1, Last: err}
	}
	series, err := normalize.Normalize(raw, p.Symbol)
	if err != nil {
		return model.PriceSeries{}, &model.DataUnavailableError{Symbol: p.Symbol, Attempts: 1, Last: err}
	}

	if p.Cache != nil {
		if err := p.Cache.Write(series); err != nil {
			p.log.Warn().Err(err).Msg("cache write failed")
		}
	}

	sub := series.SubRange(start, end)
	if sub.Empty() {
		return model.PriceSeries{}, &model.DataUnavailableError{Symbol: p.Symbol, Attempts: 1, Last: model.ErrEmptyData}
	}
	return sub, nil
}
