package monitor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarHeight(t *testing.T) {
	tests := []struct {
		name   string
		v, max uint64
		height int
		want   int
	}{
		{"zero value", 0, 100, 10, 0},
		{"zero max", 50, 0, 10, 0},
		{"full", 100, 100, 10, 10},
		{"half", 50, 100, 10, 5},
		{"floors", 99, 100, 10, 9},
		{"above max clamps", 500, 100, 10, 10},
		{"no overflow", math.MaxUint64, math.MaxUint64, 1000, 1000},
		{"tiny fraction", 1, math.MaxUint64, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BarHeight(tt.v, tt.max, tt.height))
		})
	}
}

func TestRender(t *testing.T) {
	history := make([]uint64, 10)
	history[8] = 100
	history[9] = 200

	cells := Render(history, 200, 10)

	cols := map[int]int{}
	for _, c := range cells {
		cols[c.Col]++
	}
	assert.Equal(t, 10, cols[9], "the max column fills the plot")
	assert.Equal(t, 5, cols[8])
	assert.Len(t, cols, 2)
	assert.Len(t, cells, 15)
}

func TestRender_Bounds(t *testing.T) {
	history := []uint64{7, 0, math.MaxUint64, 3, 1 << 40, 12}
	max := uint64(math.MaxUint64)
	const height = 7

	for _, c := range Render(history, max, height) {
		assert.GreaterOrEqual(t, c.Col, 0)
		assert.Less(t, c.Col, len(history))
		assert.GreaterOrEqual(t, c.Row, 0)
		assert.Less(t, c.Row, height)
	}
}

func TestRender_NothingToDraw(t *testing.T) {
	assert.Empty(t, Render([]uint64{1, 2, 3}, 0, 10), "zero max")
	assert.Empty(t, Render([]uint64{0, 0, 0}, 0, 10), "all zero")
	assert.Empty(t, Render([]uint64{1, 2, 3}, 3, MinPlotHeight-1), "plot too short")
	assert.Empty(t, Render([]uint64{3}, 3, 10), "plot too narrow")
}

func TestOrientationString(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
}
