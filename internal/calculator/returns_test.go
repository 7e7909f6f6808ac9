package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyReturns(t *testing.T) {
	got := DailyReturns([]float64{100, 102, 99.96})
	require.Len(t, got, 3)
	assert.Zero(t, got[0], "no prior close on the first day")
	assert.InDelta(t, 0.02, got[1], 1e-12)
	assert.InDelta(t, -0.02, got[2], 1e-12)

	assert.Empty(t, DailyReturns(nil))
}

func TestMomentum(t *testing.T) {
	prices := []float64{100, 101, 102, 105, 110}
	got := Momentum(prices, 3)
	require.Len(t, got, 5)
	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(got[i]), "index %d inside the lookback window", i)
	}
	assert.InDelta(t, 0.05, got[3], 1e-12)
	assert.InDelta(t, 110.0/101-1, got[4], 1e-12)
}

func TestMomentumLookbackLongerThanSeries(t *testing.T) {
	got := Momentum([]float64{100, 101}, 10)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
}

func TestCumulativeCurve(t *testing.T) {
	got := CumulativeCurve([]float64{0, 0.1, -0.5})
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 1.1, got[1], 1e-12)
	assert.InDelta(t, 0.55, got[2], 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
		want  float64
	}{
		{"monotone rise", []float64{1, 1.1, 1.2}, 0},
		{"single dip", []float64{1, 1.2, 0.9, 1.3}, 0.9/1.2 - 1},
		{"new low after recovery", []float64{1, 0.8, 1.5, 0.6}, 0.6/1.5 - 1},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.curve), 1e-12)
		})
	}
}
