package dashboard

import (
	"bufio"
	"io"
	"strconv"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

// Screen is a Surface that also owns the cursor and can put the terminal
// back the way it found it.
type Screen interface {
	monitor.Surface
	HideCursor()
	Restore() error
}

// ansiScreen buffers escape sequences for one frame and writes them on Flush.
type ansiScreen struct {
	buf   *bufio.Writer
	out   *termenv.Output
	color monitor.Color
}

var _ Screen = (*ansiScreen)(nil)

// NewANSIScreen creates a Screen writing to w. The profile decides whether
// colors produce escape sequences at all; termenv.Ascii strips them.
func NewANSIScreen(w io.Writer, profile termenv.Profile) Screen {
	buf := bufio.NewWriterSize(w, 16*1024)
	return &ansiScreen{
		buf:   buf,
		out:   termenv.NewOutput(buf, termenv.WithProfile(profile)),
		color: monitor.ColorDefault,
	}
}

func (s *ansiScreen) MoveTo(col, row int) {
	s.out.MoveCursor(row+1, col+1)
}

func (s *ansiScreen) EraseLine() {
	s.out.ClearLine()
}

func (s *ansiScreen) SetColor(c monitor.Color) {
	s.color = c
}

func (s *ansiScreen) ResetColor() {
	s.color = monitor.ColorDefault
}

func (s *ansiScreen) WriteString(text string) {
	if s.color == monitor.ColorDefault {
		s.buf.WriteString(text)
		return
	}
	styled := s.out.String(text).Foreground(s.out.Color(strconv.Itoa(int(s.color))))
	s.buf.WriteString(styled.String())
}

func (s *ansiScreen) Clear() {
	s.out.ClearScreen()
}

func (s *ansiScreen) Flush() error {
	return s.buf.Flush()
}

func (s *ansiScreen) HideCursor() {
	s.out.HideCursor()
}

// Restore clears the screen, homes and shows the cursor and resets colors.
func (s *ansiScreen) Restore() error {
	s.out.Reset()
	s.out.ClearScreen()
	s.out.ShowCursor()
	return s.buf.Flush()
}
