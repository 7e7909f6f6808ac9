// Package strategy implements the momentum rotation signal engine: price
// alignment, rebalance scheduling, asset selection, execution lag, and
// turnover fees.
package strategy

import "GoldRotation/internal/model"

// Rebalance is the decision-date frequency.
type Rebalance string

const (
	RebalanceDaily   Rebalance = "daily"
	RebalanceWeekly  Rebalance = "weekly"
	RebalanceMonthly Rebalance = "monthly"
)

// Alignment selects how the two asset calendars are merged.
type Alignment string

const (
	// AlignForwardFill takes the union of trading days and forward-fills the
	// laggard series. Default: it maximizes usable history.
	AlignForwardFill Alignment = "ffill"
	// AlignInner keeps only days present in both series, dropping
	// holiday-mismatch days. Stricter mode for venues whose calendars
	// rarely diverge.
	AlignInner Alignment = "inner"
)

// Asset labels used in signals and positions.
const (
	AssetGold   = "GOLD"
	AssetEquity = "EQUITY"
)

// RotationConfig parameterizes the rotation strategy. Immutable once
// constructed; Validate is called before any computation so malformed
// configuration never fails mid-run.
type RotationConfig struct {
	LookbackDays int
	Rebalance    Rebalance
	FeeBps       float64 // one-way cost in basis points
	CashSymbol   string
	Alignment    Alignment
}

// DefaultConfig mirrors the research defaults: 60-day momentum, weekly
// rebalance, 5 bps one-way cost.
func DefaultConfig() RotationConfig {
	return RotationConfig{
		LookbackDays: 60,
		Rebalance:    RebalanceWeekly,
		FeeBps:       5.0,
		CashSymbol:   "CASH",
		Alignment:    AlignForwardFill,
	}
}

// Validate fails fast with *model.ConfigError on unsupported values.
func (c RotationConfig) Validate() error {
	if c.LookbackDays <= 0 {
		return &model.ConfigError{Field: "lookback_days", Reason: "must be positive"}
	}
	switch c.Rebalance {
	case RebalanceDaily, RebalanceWeekly, RebalanceMonthly:
	default:
		return &model.ConfigError{Field: "rebalance", Reason: "must be one of daily, weekly, monthly"}
	}
	if c.FeeBps < 0 {
		return &model.ConfigError{Field: "fee_bps", Reason: "must be non-negative"}
	}
	if c.CashSymbol == "" {
		return &model.ConfigError{Field: "cash_symbol", Reason: "must be set"}
	}
	switch c.Alignment {
	case AlignForwardFill, AlignInner, "":
	default:
		return &model.ConfigError{Field: "alignment", Reason: "must be ffill or inner"}
	}
	return nil
}

// alignment resolves the empty value to the documented default.
func (c RotationConfig) alignment() Alignment {
	if c.Alignment == "" {
		return AlignForwardFill
	}
	return c.Alignment
}
