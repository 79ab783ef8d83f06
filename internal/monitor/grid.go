package monitor

import "strings"

// GridCell is one character cell of a Grid.
type GridCell struct {
	Ch    rune
	Color Color
}

// Grid is an in-memory Surface. The bubbletea front end draws into one and
// styles the result; tests inspect it directly. Writes outside the grid are
// clipped.
type Grid struct {
	width, height int
	cells         [][]GridCell
	col, row      int
	color         Color
}

var _ Surface = (*Grid)(nil)

// NewGrid creates a blank grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{color: ColorDefault}
	g.Resize(width, height)
	return g
}

// Resize reallocates the grid, discarding its content.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g.width, g.height = width, height
	g.cells = make([][]GridCell, height)
	for r := range g.cells {
		g.cells[r] = blankRow(width)
	}
	g.col, g.row = 0, 0
}

func blankRow(width int) []GridCell {
	row := make([]GridCell, width)
	for i := range row {
		row[i] = GridCell{Ch: ' ', Color: ColorDefault}
	}
	return row
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) MoveTo(col, row int) {
	g.col, g.row = col, row
}

func (g *Grid) EraseLine() {
	if g.row >= 0 && g.row < g.height {
		g.cells[g.row] = blankRow(g.width)
	}
}

func (g *Grid) SetColor(c Color) {
	g.color = c
}

func (g *Grid) ResetColor() {
	g.color = ColorDefault
}

func (g *Grid) WriteString(s string) {
	for _, ch := range s {
		if g.row >= 0 && g.row < g.height && g.col >= 0 && g.col < g.width {
			g.cells[g.row][g.col] = GridCell{Ch: ch, Color: g.color}
		}
		g.col++
	}
}

func (g *Grid) Clear() {
	for r := range g.cells {
		g.cells[r] = blankRow(g.width)
	}
	g.col, g.row = 0, 0
}

func (g *Grid) Flush() error {
	return nil
}

// At returns the cell at (col, row); out-of-range positions read as blank.
func (g *Grid) At(col, row int) GridCell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return GridCell{Ch: ' ', Color: ColorDefault}
	}
	return g.cells[row][col]
}

// Line returns row as plain text.
func (g *Grid) Line(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[row] {
		b.WriteRune(c.Ch)
	}
	return b.String()
}

// Runs splits row into maximal spans of equal color.
func (g *Grid) Runs(row int) []Run {
	if row < 0 || row >= g.height || g.width == 0 {
		return nil
	}
	var runs []Run
	var b strings.Builder
	cur := g.cells[row][0].Color
	for _, c := range g.cells[row] {
		if c.Color != cur {
			runs = append(runs, Run{Text: b.String(), Color: cur})
			b.Reset()
			cur = c.Color
		}
		b.WriteRune(c.Ch)
	}
	return append(runs, Run{Text: b.String(), Color: cur})
}

// Run is a span of same-colored text.
type Run struct {
	Text  string
	Color Color
}

// String returns the whole grid as newline-separated plain text.
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for r := range lines {
		lines[r] = g.Line(r)
	}
	return strings.Join(lines, "\n")
}
