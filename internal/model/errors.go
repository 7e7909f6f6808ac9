package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyData indicates a provider or cache returned zero usable rows.
var ErrEmptyData = errors.New("empty price data")

// SchemaError indicates required columns could not be resolved after
// alias mapping.
type SchemaError struct {
	Symbol  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for %s: unresolvable columns [%s]",
		e.Symbol, strings.Join(e.Missing, ", "))
}

// DataUnavailableError is raised when every source in a fetch pipeline has
// been exhausted. Last carries the final provider error for diagnostics.
type DataUnavailableError struct {
	Symbol   string
	Attempts int
	Last     error
}

func (e *DataUnavailableError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("no data available for %s after %d attempts", e.Symbol, e.Attempts)
	}
	return fmt.Sprintf("no data available for %s after %d attempts: %v", e.Symbol, e.Attempts, e.Last)
}

func (e *DataUnavailableError) Unwrap() error { return e.Last }

// ConfigError indicates an invalid strategy or pipeline configuration.
// Configuration is validated up front so the engine never fails
// mid-computation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s %s", e.Field, e.Reason)
}
