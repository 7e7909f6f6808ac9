package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"GoldRotation/internal/model"
)

// YahooFetcher pulls daily bars from the Yahoo Finance chart API. It is the
// global fallback for gold futures (GC=F) when the domestic feeds fail.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: "https://query1.finance.yahoo.com",
		SymbolMap: map[string]string{
			"GOLD": "GC=F",
			"GC":   "GC=F",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// numCell renders a JSON number cell as a string, empty when null. The
// normalizer treats empty cells as missing values.
func numCell(v interface{}) string {
	n, ok := v.(float64)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// FetchDaily retrieves daily bars for [start, end] using unix-second range
// parameters. end is inclusive, so one extra day is added to period2.
func (f *YahooFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (model.RawTable, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)),
		start.Unix(), end.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.RawTable{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.RawTable{}, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.RawTable{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.RawTable{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return model.RawTable{}, fmt.Errorf("yahoo %s: %w", symbol, model.ErrEmptyData)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.RawTable{}, fmt.Errorf("yahoo %s: %w", symbol, model.ErrEmptyData)
	}
	quote := result.Indicators.Quote[0]

	table := model.RawTable{
		Columns: []string{"Date", "Open", "High", "Low", "Close", "Volume"},
	}
	for i, ts := range result.Timestamp {
		row := []string{
			time.Unix(ts, 0).UTC().Format(model.DateLayout),
			numCell(at(quote.Open, i)),
			numCell(at(quote.High, i)),
			numCell(at(quote.Low, i)),
			numCell(at(quote.Close, i)),
			numCell(at(quote.Volume, i)),
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func at(col []interface{}, i int) interface{} {
	if i < 0 || i >= len(col) {
		return nil
	}
	return col[i]
}
