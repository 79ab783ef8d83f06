package monitor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory(4)
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, []uint64{0, 0, 0, 0}, h.Values())
	assert.Zero(t, h.Avg())
	assert.Zero(t, h.Max())

	assert.Panics(t, func() { NewHistory(0) })
}

func TestHistoryPush(t *testing.T) {
	h := NewHistory(3)
	for _, v := range []uint64{1, 2, 3, 4, 5} {
		h.Push(v)
	}

	assert.Equal(t, []uint64{3, 4, 5}, h.Values())
	assert.Equal(t, uint64(3), h.At(0))
	assert.Equal(t, uint64(5), h.Last())
	assert.Equal(t, 3, h.Len())
}

func TestHistoryAvgMax(t *testing.T) {
	tests := []struct {
		name    string
		samples []uint64
		size    int
		avg     uint64
		max     uint64
	}{
		{"zero window", nil, 4, 0, 0},
		{"truncates", []uint64{1, 2}, 4, 0, 2},
		{"exact", []uint64{10, 20, 30, 40}, 4, 25, 40},
		{"partial window counts zeros", []uint64{100}, 4, 25, 100},
		{"no overflow", []uint64{math.MaxUint64, math.MaxUint64}, 2, math.MaxUint64, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			for _, v := range tt.samples {
				h.Push(v)
			}
			assert.Equal(t, tt.avg, h.Avg())
			assert.Equal(t, tt.max, h.Max())
		})
	}
}

func TestResizeSamples(t *testing.T) {
	tests := []struct {
		name    string
		old     []uint64
		newSize int
		want    []uint64
	}{
		{"same size", []uint64{1, 2, 3}, 3, []uint64{1, 2, 3}},
		{"grow pads the oldest end", []uint64{1, 2, 3}, 5, []uint64{0, 0, 1, 2, 3}},
		{"shrink keeps newest", []uint64{1, 2, 3, 4}, 2, []uint64{3, 4}},
		{"shrink to one", []uint64{1, 2, 3}, 1, []uint64{3}},
		{"grow from empty", nil, 2, []uint64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeSamples(tt.old, tt.newSize)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, tt.newSize)
		})
	}

	assert.Panics(t, func() { ResizeSamples([]uint64{1}, 0) })
}

func TestResizeSamples_DoesNotAlias(t *testing.T) {
	old := []uint64{1, 2, 3}
	got := ResizeSamples(old, 3)
	got[0] = 99
	assert.Equal(t, uint64(1), old[0])
}

func TestResizeSamples_Properties(t *testing.T) {
	old := []uint64{5, 6, 7, 8, 9}
	for n := 1; n <= 8; n++ {
		got := ResizeSamples(old, n)
		require.Len(t, got, n)
		assert.Equal(t, old[len(old)-1], got[n-1], "newest sample stays last (n=%d)", n)

		keep := min(n, len(old))
		assert.Equal(t, old[len(old)-keep:], got[n-keep:], "suffix preserved (n=%d)", n)
		for _, v := range got[:n-keep] {
			assert.Zero(t, v)
		}
	}
}

func TestHistoryResize_GrowThenShrinkRoundTrip(t *testing.T) {
	h := NewHistory(3)
	h.Push(1)
	h.Push(2)
	h.Push(3)
	h.Push(4) // wraps the ring

	h.Resize(6)
	assert.Equal(t, []uint64{0, 0, 0, 2, 3, 4}, h.Values())

	h.Resize(3)
	assert.Equal(t, []uint64{2, 3, 4}, h.Values())

	h.Push(5)
	assert.Equal(t, []uint64{3, 4, 5}, h.Values())
}
