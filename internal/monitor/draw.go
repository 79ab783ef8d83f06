package monitor

import (
	"fmt"

	"github.com/rileyhilliard/netbwmon/internal/util"
)

const (
	frameChar = "|"
	barChar   = "*"
)

// GraphSpec describes one graph block for a single draw. Data is a view of
// the history; the painter never keeps it.
type GraphSpec struct {
	Title       string
	Origin      int // first screen row of the block
	Lines       int // block height, label row included
	Width       int // terminal width
	Orientation Orientation
	Color       Color
	Data        []uint64
	Max         uint64
}

// Painter draws graphs and the stats panel onto a Surface.
type Painter struct {
	SI     bool
	Colors bool
}

// writeClipped writes text at (col, row) without crossing column limit.
func writeClipped(s Surface, col, row int, text string, limit int) {
	if col < 0 || col >= limit {
		return
	}
	s.MoveTo(col, row)
	s.WriteString(util.TruncateBytes(text, limit-col))
}

// Graph draws the frame, the current/max label, the bars and the zero label
// on the baseline.
func (p Painter) Graph(s Surface, g GraphSpec) {
	if g.Lines < 1 || g.Width < 1 {
		return
	}

	labelRow, baseRow := g.Origin, g.Origin+g.Lines-1
	if g.Orientation == Down {
		labelRow, baseRow = baseRow, labelRow
	}

	if p.Colors && g.Color != ColorDefault {
		s.SetColor(g.Color)
	}
	defer s.ResetColor()

	for i := 0; i < g.Lines; i++ {
		row := g.Origin + i
		s.MoveTo(0, row)
		s.EraseLine()
		if row == labelRow {
			continue
		}
		s.WriteString(frameChar)
		if g.Width > 1 {
			s.MoveTo(g.Width-1, row)
			s.WriteString(frameChar)
		}
	}

	var cur uint64
	if len(g.Data) > 0 {
		cur = g.Data[len(g.Data)-1]
	}
	label := fmt.Sprintf("[ %s ][ %s ][ %s ]", g.Title, FormatRate(cur, p.SI), FormatRate(g.Max, p.SI))
	writeClipped(s, 1, labelRow, label, g.Width-1)

	for _, c := range Render(g.Data, g.Max, g.Lines-1) {
		row := baseRow - c.Row
		if g.Orientation == Down {
			row = baseRow + c.Row
		}
		s.MoveTo(2+c.Col, row)
		s.WriteString(barChar)
	}

	// The zero label sits on the baseline and stays readable over bars.
	writeClipped(s, 2, baseRow, fmt.Sprintf("[ %s ]", FormatRate(0, p.SI)), g.Width-1)
}

// Stats draws the interface name, window averages and cumulative totals.
func (p Painter) Stats(s Surface, st *InterfaceState, l Layout) {
	row := l.StatsRow
	for i := 0; i < StatsRows; i++ {
		s.MoveTo(0, row+i)
		s.EraseLine()
	}

	title := fmt.Sprintf("[ Interface: %s ]", st.Name)
	writeClipped(s, max(l.Width/2-len(title)/2, 0), row, title, l.Width)

	colRx := max(l.HistorySize/4-8, 0)
	colTx := colRx + l.HistorySize/2 + 1

	writeClipped(s, colRx, row+1, fmt.Sprintf("%6s %s", "avg:", FormatRate(st.RxAvg, p.SI)), colTx-1)
	writeClipped(s, colTx, row+1, fmt.Sprintf("%6s %s", "avg:", FormatRate(st.TxAvg, p.SI)), l.Width)
	writeClipped(s, colRx, row+2, fmt.Sprintf("%6s %s", "total:", FormatBytes(st.RxTotal, p.SI)), colTx-1)
	writeClipped(s, colTx, row+2, fmt.Sprintf("%6s %s", "total:", FormatBytes(st.TxTotal, p.SI)), l.Width)
}

// TooSmall replaces the dashboard with a resize notice.
func (p Painter) TooSmall(s Surface, width, height int) {
	s.Clear()
	writeClipped(s, 0, 0, "Terminal too small", width)
	writeClipped(s, 0, 1, fmt.Sprintf("%dx%d, need %dx%d", width, height, MinWidth, MinHeight), width)
}
