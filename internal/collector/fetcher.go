// Package collector implements the data acquisition layer: per-provider
// fetchers plus the fallback pipelines that turn unreliable upstream feeds
// into one clean price series per asset.
package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"GoldRotation/internal/model"
)

// Fetcher retrieves raw daily bars for one symbol from a single upstream
// provider. Implementations return the payload as-is (original column names,
// original formats); normalization happens downstream.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string, start, end time.Time) (model.RawTable, error)
	Name() string
}

// newHTTPClient builds an HTTP client with a sane timeout and optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
