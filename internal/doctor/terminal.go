package doctor

import (
	"fmt"

	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

// SizeFunc reports the terminal size in columns and rows.
type SizeFunc func() (width, height int, err error)

// TerminalCheck verifies that stdout is a terminal large enough for the
// dashboard layout.
type TerminalCheck struct {
	IsTTY bool
	Size  SizeFunc
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run() CheckResult {
	if !c.IsTTY || c.Size == nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Standard output is not a terminal",
			Suggestion: "The dashboard needs an interactive terminal; 'netbwmon interfaces' works anywhere",
		}
	}

	w, h, err := c.Size()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Failed to read terminal size: %v", err),
		}
	}

	l, err := monitor.ComputeLayout(w, h)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Terminal is %dx%d, the dashboard needs %dx%d", w, h, monitor.MinWidth, monitor.MinHeight),
			Suggestion: "Enlarge the window or reduce the font size",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Terminal %dx%d: %d samples of history, %d rows per graph", w, h, l.HistorySize, l.PlotHeight),
	}
}

func (c *TerminalCheck) Fix() error { return nil }
