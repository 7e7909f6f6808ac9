package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"GoldRotation/internal/model"
)

// InstrumentKind classifies an A-share symbol so the right EastMoney
// endpoint variant is used.
type InstrumentKind string

const (
	// KindAuto applies the prefix rule table.
	KindAuto InstrumentKind = "auto"
	// KindETF forces exchange-traded fund treatment (forward-adjusted prices).
	KindETF InstrumentKind = "etf"
	// KindIndex forces index treatment (unadjusted prices).
	KindIndex InstrumentKind = "index"
)

// etfPrefixes is the rule table for auto-detection: A-share fund codes start
// with 5 (Shanghai) or 1 (Shenzhen). Everything else is treated as an index.
var etfPrefixes = []string{"5", "1"}

// Classify resolves KindAuto against the prefix rule table. Explicit kinds
// pass through unchanged.
func Classify(code string, kind InstrumentKind) InstrumentKind {
	if kind != KindAuto && kind != "" {
		return kind
	}
	for _, p := range etfPrefixes {
		if strings.HasPrefix(code, p) {
			return KindETF
		}
	}
	return KindIndex
}

// StripExchangeSuffix removes a .SH/.SZ suffix from an A-share symbol.
func StripExchangeSuffix(symbol string) string {
	upper := strings.ToUpper(symbol)
	for _, suffix := range []string{".SH", ".SZ"} {
		if strings.HasSuffix(upper, suffix) {
			return symbol[:len(symbol)-len(suffix)]
		}
	}
	return symbol
}

// EastMoneyFetcher pulls daily A-share klines (ETFs and indices) from the
// EastMoney push2his API. It also serves the domestic gold ETF (518880) as a
// proxy instrument for gold futures.
type EastMoneyFetcher struct {
	Client  *http.Client
	BaseURL string
	Kind    InstrumentKind
}

// NewEastMoneyFetcher creates an EastMoney fetcher. kind selects ETF or
// index treatment; KindAuto detects it from the symbol-code prefix.
func NewEastMoneyFetcher(kind InstrumentKind, proxyURL string) *EastMoneyFetcher {
	if kind == "" {
		kind = KindAuto
	}
	return &EastMoneyFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: "https://push2his.eastmoney.com",
		Kind:    kind,
	}
}

func (f *EastMoneyFetcher) Name() string { return "eastmoney" }

// secID maps a bare code to the EastMoney market-scoped security id.
// Market 1 is Shanghai, market 0 is Shenzhen.
func secID(code string, kind InstrumentKind) string {
	if kind == KindIndex {
		// SSE indices (000xxx, 999xxx) live on market 1; SZSE (399xxx) on 0.
		if strings.HasPrefix(code, "399") {
			return "0." + code
		}
		return "1." + code
	}
	// Funds: 5xxxxx trades on Shanghai, 1xxxxx on Shenzhen.
	if strings.HasPrefix(code, "5") {
		return "1." + code
	}
	return "0." + code
}

// emKline is the relevant slice of the EastMoney kline response.
type emKline struct {
	Data *struct {
		Code   string   `json:"code"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchDaily retrieves daily bars for [start, end]. The payload keeps
// EastMoney's Chinese column names; the normalizer's alias map resolves them.
func (f *EastMoneyFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (model.RawTable, error) {
	code := StripExchangeSuffix(symbol)
	kind := Classify(code, f.Kind)

	// fqt=1 requests forward-adjusted prices for funds; indices are served
	// unadjusted either way.
	fqt := "1"
	if kind == KindIndex {
		fqt = "0"
	}

	u := fmt.Sprintf("%s/api/qt/stock/kline/get?secid=%s&klt=101&fqt=%s&beg=%s&end=%s"+
		"&fields1=f1,f2,f3&fields2=f51,f52,f53,f54,f55,f56",
		f.BaseURL, secID(code, kind), fqt,
		start.Format("20060102"), end.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.RawTable{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("eastmoney read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.RawTable{}, fmt.Errorf("eastmoney: status %d", resp.StatusCode)
	}

	var kline emKline
	if err := json.Unmarshal(body, &kline); err != nil {
		return model.RawTable{}, fmt.Errorf("eastmoney decode: %w", err)
	}
	if kline.Data == nil || len(kline.Data.Klines) == 0 {
		return model.RawTable{}, fmt.Errorf("eastmoney %s: %w", symbol, model.ErrEmptyData)
	}

	// fields2 order: date, open, close, high, low, volume.
	table := model.RawTable{
		Columns: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量"},
	}
	for _, line := range kline.Data.Klines {
		table.Rows = append(table.Rows, strings.Split(line, ","))
	}
	return table, nil
}
