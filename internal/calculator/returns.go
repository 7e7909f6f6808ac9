// Package calculator holds the pure series math shared by the signal engine
// and the performance analyzer.
package calculator

import "math"

// DailyReturns computes price[t]/price[t-1] - 1. The first day has no prior
// reference and is defined as 0.
func DailyReturns(prices []float64) []float64 {
	returns := make([]float64, len(prices))
	for t := 1; t < len(prices); t++ {
		returns[t] = prices[t]/prices[t-1] - 1
	}
	return returns
}

// Momentum computes price[t]/price[t-lookback] - 1, NaN for the first
// lookback observations where the trailing reference does not exist.
func Momentum(prices []float64, lookback int) []float64 {
	mom := make([]float64, len(prices))
	for t := range prices {
		if t < lookback {
			mom[t] = math.NaN()
			continue
		}
		mom[t] = prices[t]/prices[t-lookback] - 1
	}
	return mom
}

// CumulativeCurve is the running product of (1 + return); 1.0 = breakeven.
func CumulativeCurve(returns []float64) []float64 {
	curve := make([]float64, len(returns))
	value := 1.0
	for i, r := range returns {
		value *= 1 + r
		curve[i] = value
	}
	return curve
}

// MaxDrawdown returns the minimum of curve[t]/runningMax(curve)[t] - 1,
// a non-positive number where more negative is worse.
func MaxDrawdown(curve []float64) float64 {
	worst := 0.0
	peak := math.Inf(-1)
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
