package monitor

import (
	"testing"

	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout(t *testing.T) {
	l, err := ComputeLayout(80, 24)
	require.NoError(t, err)

	assert.Equal(t, Layout{
		Width:       80,
		Height:      24,
		HistorySize: 77,
		GraphLines:  9,
		PlotHeight:  8,
		RxOrigin:    0,
		TxOrigin:    9,
		StatsRow:    19,
	}, l)
	assert.LessOrEqual(t, l.StatsRow+StatsRows, l.Height)
}

func TestComputeLayout_Minimum(t *testing.T) {
	l, err := ComputeLayout(MinWidth, MinHeight)
	require.NoError(t, err)
	assert.Equal(t, MinPlotWidth, l.HistorySize)
	assert.Equal(t, MinPlotHeight, l.PlotHeight)
	assert.LessOrEqual(t, l.StatsRow+StatsRows, l.Height)
}

func TestComputeLayout_TooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"narrow", MinWidth - 1, 40},
		{"short", 80, MinHeight - 1},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLayout(tt.width, tt.height)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrTerminal))
		})
	}
}

func TestComputeLayout_FitsEverySize(t *testing.T) {
	for w := MinWidth; w < 40; w++ {
		for h := MinHeight; h < 60; h++ {
			l, err := ComputeLayout(w, h)
			require.NoError(t, err)
			assert.LessOrEqual(t, l.StatsRow+StatsRows, h, "%dx%d", w, h)
			assert.GreaterOrEqual(t, l.PlotHeight, MinPlotHeight, "%dx%d", w, h)
			assert.Equal(t, w-FrameColumns, l.HistorySize)
		}
	}
}

func TestHistorySizeFor(t *testing.T) {
	assert.Equal(t, 77, HistorySizeFor(80))
	assert.Equal(t, 2, HistorySizeFor(5))
	assert.Equal(t, 1, HistorySizeFor(4))
	assert.Equal(t, 1, HistorySizeFor(0))
	assert.Equal(t, 1, HistorySizeFor(-3))
}
