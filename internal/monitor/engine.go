package monitor

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/internal/logger"
)

// DefaultStatsEvery is how many draws pass between stats panel refreshes.
const DefaultStatsEvery = 10

// Options are the per-run inputs of the engine. Toggles may flip them at runtime.
type Options struct {
	Interface  string
	UseSI      bool
	Colors     bool
	ShowStats  bool
	StatsEvery int
	Clock      clock.Clock
	Logger     logger.Logger
}

// Snapshot is a read-only copy of the values published after each tick.
type Snapshot struct {
	Interface        string
	RxRate, TxRate   uint64
	RxAvg, TxAvg     uint64
	RxMax, TxMax     uint64
	RxTotal, TxTotal uint64
	HistorySize      int
	Rollbacks        uint64
}

// Engine ties sampling, resizing and drawing together for both front ends.
// It is not safe for concurrent use; the dashboard loop owns it.
type Engine struct {
	opts    Options
	log     logger.Logger
	sampler *Sampler
	state   *InterfaceState
	layout  Layout

	tooSmall     bool
	needClear    bool
	statsPending bool
	sinceStats   int
}

// NewEngine creates an engine for an already resolved interface.
func NewEngine(src counters.Source, opts Options) *Engine {
	if opts.StatsEvery < 1 {
		opts.StatsEvery = DefaultStatsEvery
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return &Engine{
		opts:    opts,
		log:     opts.Logger,
		sampler: NewSampler(src, opts.Interface, opts.Clock, opts.Logger),
	}
}

// Start checks the startup geometry, allocates the histories and takes the
// baseline reading. TerminalTooSmall and CounterReadFailure are fatal here.
func (e *Engine) Start(ctx context.Context, width, height int) error {
	l, err := ComputeLayout(width, height)
	if err != nil {
		return err
	}
	e.layout = l
	e.state = NewInterfaceState(e.opts.Interface, l.HistorySize)
	e.needClear = true

	_, err = e.sampler.Tick(ctx, e.state)
	return err
}

// Resize resizes both histories and recomputes the layout before anything
// else can observe them. Below the minimum size the engine keeps sampling
// and draws only a notice until the terminal grows again.
func (e *Engine) Resize(width, height int) {
	if e.state == nil {
		return
	}
	e.state.Resize(HistorySizeFor(width))

	l, err := ComputeLayout(width, height)
	if err != nil {
		if !e.tooSmall {
			e.log.Debug("terminal shrank to %dx%d, pausing drawing", width, height)
		}
		e.tooSmall = true
		e.layout = Layout{Width: width, Height: height, HistorySize: HistorySizeFor(width)}
	} else {
		e.tooSmall = false
		e.layout = l
	}
	e.needClear = true
}

// Tick takes one sample.
func (e *Engine) Tick(ctx context.Context) (TickResult, error) {
	return e.sampler.Tick(ctx, e.state)
}

// Draw paints the current state. Graphs are redrawn every call; the stats
// panel every StatsEvery calls and right after a clear.
func (e *Engine) Draw(s Surface) {
	if e.state == nil {
		return
	}
	p := Painter{SI: e.opts.UseSI, Colors: e.opts.Colors}

	if e.needClear {
		s.Clear()
		e.needClear = false
		e.statsPending = true
	}
	if e.tooSmall {
		p.TooSmall(s, e.layout.Width, e.layout.Height)
		return
	}

	p.Graph(s, e.graphSpec("RX", e.layout.RxOrigin, Up, ColorRx, e.state.Rx, e.state.RxMax))
	p.Graph(s, e.graphSpec("TX", e.layout.TxOrigin, Down, ColorTx, e.state.Tx, e.state.TxMax))

	if !e.opts.ShowStats {
		return
	}
	e.sinceStats++
	if e.statsPending || e.sinceStats >= e.opts.StatsEvery {
		p.Stats(s, e.state, e.layout)
		e.statsPending = false
		e.sinceStats = 0
	}
}

func (e *Engine) graphSpec(title string, origin int, o Orientation, c Color, h *History, max uint64) GraphSpec {
	return GraphSpec{
		Title:       title,
		Origin:      origin,
		Lines:       e.layout.GraphLines,
		Width:       e.layout.Width,
		Orientation: o,
		Color:       c,
		Data:        h.Values(),
		Max:         max,
	}
}

// ToggleUnits switches between binary and SI units.
func (e *Engine) ToggleUnits() {
	e.opts.UseSI = !e.opts.UseSI
	e.statsPending = true
}

// ToggleColors switches graph colors on or off.
func (e *Engine) ToggleColors() {
	e.opts.Colors = !e.opts.Colors
	e.needClear = true
}

// ToggleStats shows or hides the stats panel.
func (e *Engine) ToggleStats() {
	e.opts.ShowStats = !e.opts.ShowStats
	e.needClear = true
}

// Options returns the current options, toggles included.
func (e *Engine) Options() Options {
	return e.opts
}

// State returns the interface state. Callers must treat it as read-only.
func (e *Engine) State() *InterfaceState {
	return e.state
}

// Layout returns the current layout.
func (e *Engine) Layout() Layout {
	return e.layout
}

// TooSmall reports whether the terminal is currently below the minimum size.
func (e *Engine) TooSmall() bool {
	return e.tooSmall
}

// Snapshot copies the values an exporter needs.
func (e *Engine) Snapshot() Snapshot {
	if e.state == nil {
		return Snapshot{Interface: e.opts.Interface}
	}
	st := e.state
	return Snapshot{
		Interface:   st.Name,
		RxRate:      st.Rx.Last(),
		TxRate:      st.Tx.Last(),
		RxAvg:       st.RxAvg,
		TxAvg:       st.TxAvg,
		RxMax:       st.RxMax,
		TxMax:       st.TxMax,
		RxTotal:     st.RxTotal,
		TxTotal:     st.TxTotal,
		HistorySize: st.Size(),
		Rollbacks:   e.sampler.Rollbacks(),
	}
}
