package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

// footerHeight is the row reserved for the key hints.
const footerHeight = 1

// tickMsg signals a sampling tick.
type tickMsg time.Time

// Model is the bubbletea front end. It drives the same Engine as the raw
// loop and renders it through a Grid.
type Model struct {
	ctx      context.Context
	engine   *monitor.Engine
	grid     *monitor.Grid
	interval time.Duration
	publish  func(monitor.Snapshot)
	log      logger.Logger

	keys     KeyMap
	help     help.Model
	showHelp bool

	width, height int
	started       bool
	quitting      bool
	err           error
}

// NewModel creates the model. The engine starts on the first window size.
func NewModel(ctx context.Context, engine *monitor.Engine, cfg Config) Model {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(ColorTextSecondary)
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(ColorTextMuted)

	return Model{
		ctx:      ctx,
		engine:   engine,
		grid:     monitor.NewGrid(0, 0),
		interval: cfg.Interval,
		publish:  cfg.Publish,
		log:      cfg.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// RunTUI runs the bubbletea program until quit and returns the fatal error,
// if any, that stopped it.
func RunTUI(ctx context.Context, engine *monitor.Engine, cfg Config) error {
	p := tea.NewProgram(NewModel(ctx, engine, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}

// Err returns the error that ended the program, nil after a normal quit.
func (m Model) Err() error {
	return m.err
}

// Init schedules the first tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		rows := max(msg.Height-footerHeight, 0)
		m.grid.Resize(msg.Width, rows)

		if !m.started {
			if err := m.engine.Start(m.ctx, msg.Width, rows); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
			m.started = true
			m.redraw()
			return m, nil
		}
		m.engine.Resize(msg.Width, rows)
		m.redraw()

	case tickMsg:
		if !m.started {
			return m, m.tickCmd()
		}
		if _, err := m.engine.Tick(m.ctx); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.redraw()
		if m.publish != nil {
			m.publish(m.engine.Snapshot())
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case m.showHelp && msg.Type == tea.KeyEsc:
		m.showHelp = false
	case key.Matches(msg, m.keys.Units):
		m.engine.ToggleUnits()
		m.redraw()
	case key.Matches(msg, m.keys.Colors):
		m.engine.ToggleColors()
		m.redraw()
	case key.Matches(msg, m.keys.Stats):
		m.engine.ToggleStats()
		m.redraw()
	}
	return m, nil
}

// redraw paints the engine into the grid. The grid persists between frames
// because the stats panel is only repainted every few draws.
func (m Model) redraw() {
	if m.started {
		m.engine.Draw(m.grid)
	}
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.started {
		return NoticeStyle.Render("Waiting for the terminal size...")
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return renderGrid(m.grid) + "\n" + FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderHelpOverlay() string {
	content := helpTitleStyle.Render("Keyboard Shortcuts") + "\n" + m.help.FullHelpView(m.keys.FullHelp())
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBoxStyle.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}
