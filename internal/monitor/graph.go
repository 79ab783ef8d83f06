package monitor

import "math/bits"

// Minimum plot geometry; smaller areas render nothing.
const (
	MinPlotHeight = 3
	MinPlotWidth  = 2
)

// Cell is one marked position of a bar graph. Col indexes the history;
// Row counts away from the baseline (Row 0 is the baseline row).
type Cell struct {
	Col int
	Row int
}

// BarHeight returns floor(v * plotHeight / max) in 128-bit arithmetic.
// Zero when v or max is zero; v above max is treated as max.
func BarHeight(v, max uint64, plotHeight int) int {
	if v == 0 || max == 0 || plotHeight <= 0 {
		return 0
	}
	if v > max {
		v = max
	}
	hi, lo := bits.Mul64(v, uint64(plotHeight))
	// v <= max guarantees hi < max, so Div64 can't panic.
	q, _ := bits.Div64(hi, lo, max)
	return int(q)
}

// Render maps a history onto a plotHeight x len(history) grid. Every
// returned cell lies in [0, len(history)) x [0, plotHeight). A column whose
// value equals max fills the whole plot height.
func Render(history []uint64, max uint64, plotHeight int) []Cell {
	width := len(history)
	if plotHeight < MinPlotHeight || width < MinPlotWidth || max == 0 {
		return nil
	}

	var cells []Cell
	for col, v := range history {
		h := BarHeight(v, max, plotHeight)
		for row := 0; row < h; row++ {
			cells = append(cells, Cell{Col: col, Row: row})
		}
	}
	return cells
}

// Orientation is the direction bars grow from the baseline.
type Orientation int

const (
	// Up puts the baseline on the bottom row of the block.
	Up Orientation = iota
	// Down puts the baseline on the top row of the block.
	Down
)

func (o Orientation) String() string {
	if o == Down {
		return "down"
	}
	return "up"
}
