package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"GoldRotation/internal/model"
)

// SinaFuturesFetcher pulls daily klines for SHFE futures contracts from the
// Sina finance API. Gold continuous contracts are queried with symbols like
// AU0 or AU9999.
type SinaFuturesFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewSinaFuturesFetcher creates a Sina futures fetcher with optional proxy
// support.
func NewSinaFuturesFetcher(proxyURL string) *SinaFuturesFetcher {
	return &SinaFuturesFetcher{
		Client:  newHTTPClient(proxyURL),
		BaseURL: "https://stock.finance.sina.com.cn",
	}
}

func (f *SinaFuturesFetcher) Name() string { return "sina-futures" }

// FetchDaily retrieves the full daily kline history for a contract and trims
// it to [start, end]. Sina returns rows as positional arrays:
// [date, open, high, low, close, volume].
func (f *SinaFuturesFetcher) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (model.RawTable, error) {
	u := fmt.Sprintf("%s/futures/api/json.php/IndexService.getInnerFuturesDailyKLine?symbol=%s",
		f.BaseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.RawTable{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://finance.sina.com.cn")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("sina fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("sina read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.RawTable{}, fmt.Errorf("sina: status %d", resp.StatusCode)
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return model.RawTable{}, fmt.Errorf("sina decode: %w", err)
	}
	if len(rows) == 0 {
		return model.RawTable{}, fmt.Errorf("sina %s: %w", symbol, model.ErrEmptyData)
	}

	table := model.RawTable{
		Columns: []string{"date", "open", "high", "low", "close", "volume"},
	}
	startStr, endStr := start.Format(model.DateLayout), end.Format(model.DateLayout)
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		// The feed has no range parameters; filter by the date cell here so
		// the payload stays small for the normalizer.
		if row[0] < startStr || row[0] > endStr {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return model.RawTable{}, fmt.Errorf("sina %s: no rows in range: %w", symbol, model.ErrEmptyData)
	}
	return table, nil
}
