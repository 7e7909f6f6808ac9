package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignInner(t *testing.T) {
	gold := seriesFrom("GC=F", []string{"2024-01-02", "2024-01-03", "2024-01-04"}, []float64{100, 101, 102})
	equity := seriesFrom("510300", []string{"2024-01-03", "2024-01-04", "2024-01-05"}, []float64{50, 51, 52})

	table := Align(gold, equity, AlignInner)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []time.Time{day("2024-01-03"), day("2024-01-04")}, table.Dates)
	assert.Equal(t, []float64{101, 102}, table.Gold)
	assert.Equal(t, []float64{50, 51}, table.Equity)
}

func TestAlignForwardFill(t *testing.T) {
	gold := seriesFrom("GC=F", []string{"2024-01-02", "2024-01-03", "2024-01-04"}, []float64{100, 101, 102})
	equity := seriesFrom("510300", []string{"2024-01-03", "2024-01-04", "2024-01-05"}, []float64{50, 51, 52})

	table := Align(gold, equity, AlignForwardFill)
	require.Equal(t, 3, table.Len())

	// 2024-01-02 is dropped: the equity series has not started yet. On
	// 2024-01-05 the stale gold close from the 4th carries forward.
	assert.Equal(t, []time.Time{day("2024-01-03"), day("2024-01-04"), day("2024-01-05")}, table.Dates)
	assert.Equal(t, []float64{101, 102, 102}, table.Gold)
	assert.Equal(t, []float64{50, 51, 52}, table.Equity)
}

func TestAlignForwardFillGapInMiddle(t *testing.T) {
	gold := seriesFrom("GC=F", []string{"2024-01-02", "2024-01-03", "2024-01-04"}, []float64{100, 101, 102})
	equity := seriesFrom("510300", []string{"2024-01-02", "2024-01-04"}, []float64{50, 52})

	table := Align(gold, equity, AlignForwardFill)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []float64{50, 50, 52}, table.Equity, "equity holiday filled with prior close")
}

func TestAlignNoOverlap(t *testing.T) {
	gold := seriesFrom("GC=F", []string{"2024-01-02"}, []float64{100})
	equity := seriesFrom("510300", []string{"2024-02-02"}, []float64{50})

	assert.Zero(t, Align(gold, equity, AlignInner).Len())

	// Forward-fill still produces a row once both series have started.
	table := Align(gold, equity, AlignForwardFill)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, day("2024-02-02"), table.Dates[0])
	assert.Equal(t, 100.0, table.Gold[0])
}
