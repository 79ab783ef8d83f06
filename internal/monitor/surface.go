package monitor

// Color is an ANSI palette index.
type Color int

// Palette indices used by the dashboard.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// Direction colors.
const (
	ColorRx = ColorGreen
	ColorTx = ColorBlue
)

// Surface is everything the painter needs from a terminal. Columns and rows
// are zero-based.
type Surface interface {
	MoveTo(col, row int)
	EraseLine()
	SetColor(c Color)
	ResetColor()
	WriteString(s string)
	Clear()
	Flush() error
}
