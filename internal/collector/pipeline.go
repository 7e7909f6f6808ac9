package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"GoldRotation/internal/cache"
	"GoldRotation/internal/model"
	"GoldRotation/internal/normalize"
)

// Options control retry and cache behaviour for a fetch pipeline.
type Options struct {
	// Retries is the attempt count for the retried provider.
	Retries int
	// Backoff is the base wait; attempt n sleeps Backoff*n (linear).
	Backoff time.Duration
	// UseCache enables the cache-hit short circuit. The last-resort stale
	// read after provider exhaustion happens regardless of this flag.
	UseCache bool
}

// DefaultOptions mirror the defaults of the upstream feeds: three attempts,
// two-second base backoff, cache on.
func DefaultOptions() Options {
	return Options{Retries: 3, Backoff: 2 * time.Second, UseCache: true}
}

// GoldPipeline fetches the gold price series through an ordered fallback
// chain: cache, domestic futures contracts, a gold-ETF proxy, then a retried
// global feed. Individual provider failures are logged and recorded, never
// surfaced; only total exhaustion returns an error.
type GoldPipeline struct {
	Symbol string // series symbol tag, e.g. GC=F

	Futures   Fetcher  // provider A, tried per contract candidate
	Contracts []string // candidate contract identifiers, in priority order
	Proxy     Fetcher  // provider B, a different instrument for the same asset
	ProxyCode string
	Global    Fetcher // provider C, retried with linear backoff

	Cache *cache.Store
	Opts  Options

	sleep func(time.Duration)
	log   zerolog.Logger
}

// NewGoldPipeline wires the default gold chain: Sina SHFE continuous
// contracts, the 518880 gold ETF proxy, and Yahoo GC=F.
func NewGoldPipeline(store *cache.Store, opts Options, proxyURL string, logger zerolog.Logger) *GoldPipeline {
	return &GoldPipeline{
		Symbol:    "GC=F",
		Futures:   NewSinaFuturesFetcher(proxyURL),
		Contracts: []string{"AU0", "AU9999"},
		Proxy:     NewEastMoneyFetcher(KindETF, proxyURL),
		ProxyCode: "518880",
		Global:    NewYahooFetcher(proxyURL),
		Cache:     store,
		Opts:      opts,
		sleep:     time.Sleep,
		log:       logger.With().Str("pipeline", "gold").Logger(),
	}
}

// SetSleep replaces the backoff sleeper, for tests.
func (p *GoldPipeline) SetSleep(fn func(time.Duration)) { p.sleep = fn }

// Fetch returns the normalized gold series restricted to [start, end].
func (p *GoldPipeline) Fetch(ctx context.Context, start, end time.Time) (model.PriceSeries, error) {
	// 1. Cache hit short-circuits every network call.
	if p.Opts.UseCache && p.Cache != nil {
		if series, ok := p.readCache(start, end); ok {
			p.log.Debug().Int("bars", series.Len()).Msg("cache hit")
			return series, nil
		}
	}

	var lastErr error
	attempts := 0

	// 2. Provider A: futures contracts in fixed priority order.
	for _, contract := range p.Contracts {
		attempts++
		series, err := p.tryProvider(ctx, p.Futures, contract, start, end)
		if err != nil {
			lastErr = err
			p.log.Warn().Err(err).Str("provider", p.Futures.Name()).Str("contract", contract).
				Msg("provider attempt failed")
			continue
		}
		return p.accept(series, start, end)
	}

	// 3. Provider B: a different instrument proxying the same underlying.
	attempts++
	if series, err := p.tryProvider(ctx, p.Proxy, p.ProxyCode, start, end); err != nil {
		lastErr = err
		p.log.Warn().Err(err).Str("provider", p.Proxy.Name()).Msg("proxy attempt failed")
	} else {
		return p.accept(series, start, end)
	}

	// 4. Provider C: retried with linear backoff. Malformed payloads are not
	// retried; only transport-level failures are considered transient.
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 1; attempt <= p.Opts.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		attempts++
		series, err := p.tryProvider(ctx, p.Global, p.Symbol, start, end)
		if err == nil {
			return p.accept(series, start, end)
		}
		lastErr = err
		p.log.Warn().Err(err).Str("provider", p.Global.Name()).Int("attempt", attempt).
			Msg("global provider attempt failed")
		if !isTransient(err) {
			break
		}
		if attempt < p.Opts.Retries {
			sleep(p.Opts.Backoff * time.Duration(attempt))
		}
	}

	// 5. Last resort: stale cache, even when the normal cache path was
	// disabled or rejected earlier.
	if p.Cache != nil {
		if series, ok := p.readCache(start, end); ok {
			p.log.Warn().Msg("all providers failed, reusing stale cache")
			return series, nil
		}
	}

	return model.PriceSeries{}, &model.DataUnavailableError{
		Symbol: p.Symbol, Attempts: attempts, Last: lastErr,
	}
}

// tryProvider fetches, normalizes, and range-filters one provider attempt,
// failing on an empty result.
func (p *GoldPipeline) tryProvider(ctx context.Context, f Fetcher, symbol string, start, end time.Time) (model.PriceSeries, error) {
	raw, err := f.FetchDaily(ctx, symbol, start, end)
	if err != nil {
		return model.PriceSeries{}, err
	}
	series, err := normalize.Normalize(raw, p.Symbol)
	if err != nil {
		return model.PriceSeries{}, err
	}
	sub := series.SubRange(start, end)
	if sub.Empty() {
		return model.PriceSeries{}, fmt.Errorf("%s: no rows in requested range: %w", f.Name(), model.ErrEmptyData)
	}
	// Keep the full normalized series around for the cache write-back.
	return series, nil
}

// accept persists the full normalized series to the cache and returns the
// requested sub-range.
func (p *GoldPipeline) accept(series model.PriceSeries, start, end time.Time) (model.PriceSeries, error) {
	if p.Cache != nil {
		if err := p.Cache.Write(series); err != nil {
			p.log.Warn().Err(err).Msg("cache write failed")
		}
	}
	return series.SubRange(start, end), nil
}

func (p *GoldPipeline) readCache(start, end time.Time) (model.PriceSeries, bool) {
	raw, err := p.Cache.Read(p.Symbol)
	if err != nil {
		return model.PriceSeries{}, false
	}
	series, err := normalize.Normalize(raw, p.Symbol)
	if err != nil {
		p.log.Warn().Err(err).Msg("cached series failed normalization")
		return model.PriceSeries{}, false
	}
	sub := series.SubRange(start, end)
	if sub.Empty() {
		return model.PriceSeries{}, false
	}
	return sub, true
}

// isTransient reports whether a provider failure is worth retrying.
// Normalization failures mean the payload itself is malformed, so retrying
// the same provider cannot help.
func isTransient(err error) bool {
	var schemaErr *model.SchemaError
	if errors.As(err, &schemaErr) {
		return false
	}
	return !errors.Is(err, model.ErrEmptyData)
}
