// Package cache persists normalized price series as per-asset CSV files so
// repeated backtests do not hammer upstream providers, and so a run can
// still proceed when every provider is down.
package cache

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"GoldRotation/internal/model"
)

var header = []string{"Date", "Open", "High", "Low", "Close", "Volume", "Symbol"}

// Store reads and writes per-asset cache files under a single directory.
// The directory is explicit configuration, not process-wide state.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file location for a symbol.
func (s *Store) Path(symbol string) string {
	return filepath.Join(s.dir, sanitize(symbol)+".csv")
}

// Exists reports whether a cache file is present for the symbol.
func (s *Store) Exists(symbol string) bool {
	_, err := os.Stat(s.Path(symbol))
	return err == nil
}

// Read loads the cached table for a symbol. The result is a raw table: the
// caller is expected to re-normalize it, which also guards against a
// partially written file from another run.
func (s *Store) Read(symbol string) (model.RawTable, error) {
	f, err := os.Open(s.Path(symbol))
	if err != nil {
		return model.RawTable{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return model.RawTable{}, fmt.Errorf("read cache %s: %w", s.Path(symbol), err)
	}
	if len(records) == 0 {
		return model.RawTable{}, fmt.Errorf("read cache %s: %w", s.Path(symbol), model.ErrEmptyData)
	}
	return model.RawTable{Columns: records[0], Rows: records[1:]}, nil
}

// Write replaces the cached series for series.Symbol with the full series.
// The file is fully overwritten, never appended. Writing goes through a
// temp file plus rename so concurrent readers never observe a torn file.
func (s *Store) Write(series model.PriceSeries) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, sanitize(series.Symbol)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache header: %w", err)
	}
	table := series.RawTable()
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write cache row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(series.Symbol)); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// sanitize makes a symbol safe to use as a file name (GC=F, 510300.SH, ...).
func sanitize(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, symbol)
}
