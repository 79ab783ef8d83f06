package monitor

import "github.com/rileyhilliard/netbwmon/internal/errors"

const (
	// ReservedRows are rows not given to either graph block.
	ReservedRows = 5
	// FrameColumns are the left frame, the gap after it, and the right frame.
	FrameColumns = 3
	// StatsRows is the height of the stats panel.
	StatsRows = 3

	// MinWidth leaves two columns of history.
	MinWidth = FrameColumns + MinPlotWidth
	// MinHeight leaves a three-row plot under each graph label.
	MinHeight = ReservedRows + 2*(MinPlotHeight+1)
)

// Layout is the screen geometry derived from the terminal size.
//
//	row 0                  RX block (label row on top, baseline at the bottom)
//	row GraphLines         TX block (baseline on top, label row at the bottom)
//	row 2*GraphLines+1     stats panel
type Layout struct {
	Width, Height int

	// HistorySize is the number of samples (and bar columns) per graph.
	HistorySize int
	// GraphLines is the height of each graph block, including its label row.
	GraphLines int
	// PlotHeight is the bar area of each block.
	PlotHeight int

	RxOrigin int
	TxOrigin int
	StatsRow int
}

// ComputeLayout derives the layout, failing with TerminalTooSmall below
// MinWidth x MinHeight.
func ComputeLayout(width, height int) (Layout, error) {
	if width < MinWidth || height < MinHeight {
		return Layout{}, errors.TerminalTooSmall(width, height, MinWidth, MinHeight)
	}

	lines := (height - ReservedRows) / 2
	return Layout{
		Width:       width,
		Height:      height,
		HistorySize: width - FrameColumns,
		GraphLines:  lines,
		PlotHeight:  lines - 1,
		RxOrigin:    0,
		TxOrigin:    lines,
		StatsRow:    2*lines + 1,
	}, nil
}

// HistorySizeFor returns the history size for a terminal width, never below 1.
// Used when the terminal shrinks below the minimum and sampling continues.
func HistorySizeFor(width int) int {
	if n := width - FrameColumns; n > 1 {
		return n
	}
	return 1
}
