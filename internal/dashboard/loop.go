// Package dashboard runs the bandwidth dashboard in a terminal, either as a
// raw ANSI loop or as a bubbletea program.
package dashboard

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

// Config holds the loop's collaborators that aren't the engine itself.
type Config struct {
	Interval time.Duration
	Clock    clock.Clock
	Logger   logger.Logger
	// Publish, when set, receives a snapshot after every tick.
	Publish func(monitor.Snapshot)
}

// Loop is the raw-mode dashboard: one goroutine owns the engine and the
// screen; signal and key goroutines only hand it flags and bytes.
type Loop struct {
	engine *monitor.Engine
	term   Terminal
	screen Screen
	keys   <-chan byte
	cfg    Config
	log    logger.Logger

	resized atomic.Bool
	wake    chan struct{}
}

// NewLoop wires a loop from explicit collaborators. Run builds one from the
// process's terminal.
func NewLoop(engine *monitor.Engine, term Terminal, screen Screen, keys <-chan byte, cfg Config) *Loop {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return &Loop{
		engine: engine,
		term:   term,
		screen: screen,
		keys:   keys,
		cfg:    cfg,
		log:    cfg.Logger,
		wake:   make(chan struct{}, 1),
	}
}

// Run takes over stdin/stdout until the user quits, a signal arrives or the
// counters can't be read.
func Run(ctx context.Context, engine *monitor.Engine, cfg Config) error {
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if profile == termenv.Ascii && engine.Options().Colors {
		// color: always
		profile = termenv.ANSI
	}

	keys, stopKeys, err := readKeys(os.Stdin)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Failed to read keyboard input",
			"Run netbwmon from an interactive terminal.")
	}
	defer stopKeys()

	screen := NewANSIScreen(os.Stdout, profile)
	return NewLoop(engine, NewTTY(os.Stdin, os.Stdout), screen, keys, cfg).Run(ctx)
}

// Run executes the loop. Terminal mode, colors and cursor are restored on
// every exit path.
func (l *Loop) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	restore, err := l.term.MakeRaw()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Failed to put the terminal in raw mode",
			"Run netbwmon from an interactive terminal.")
	}
	defer func() {
		if err := restore(); err != nil {
			l.log.Warn("failed to restore terminal mode: %v", err)
		}
	}()

	width, height, err := l.term.Size()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Failed to read the terminal size",
			"Run netbwmon from an interactive terminal.")
	}
	if err := l.engine.Start(ctx, width, height); err != nil {
		return err
	}

	l.screen.HideCursor()
	defer func() {
		if err := l.screen.Restore(); err != nil {
			l.log.Warn("failed to restore screen: %v", err)
		}
	}()

	l.watchResize(ctx)

	for {
		if l.drainKeys() == actionQuit {
			return nil
		}
		l.applyResize()

		if _, err := l.engine.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := l.draw(); err != nil {
			return err
		}
		if l.cfg.Publish != nil {
			l.cfg.Publish(l.engine.Snapshot())
		}

		if quit, err := l.sleep(ctx); quit || err != nil {
			return err
		}
	}
}

// watchResize turns SIGWINCH into the resized flag plus a wakeup.
func (l *Loop) watchResize(ctx context.Context) {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		defer signal.Stop(winch)
		for {
			select {
			case <-winch:
				l.resized.Store(true)
				l.notify()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Resized marks the terminal as resized, as SIGWINCH does.
func (l *Loop) Resized() {
	l.resized.Store(true)
	l.notify()
}

func (l *Loop) applyResize() bool {
	if !l.resized.Swap(false) {
		return false
	}
	width, height, err := l.term.Size()
	if err != nil {
		l.log.Warn("failed to read terminal size: %v", err)
		return false
	}
	l.log.Debug("terminal resized to %dx%d", width, height)
	l.engine.Resize(width, height)
	return true
}

func (l *Loop) draw() error {
	l.engine.Draw(l.screen)
	return l.screen.Flush()
}

// sleep waits one interval. Keys and resizes are handled as they arrive
// and redraw without taking a sample.
func (l *Loop) sleep(ctx context.Context) (bool, error) {
	timer := l.cfg.Clock.Timer(l.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case <-timer.C:
			return false, nil
		case b, ok := <-l.keys:
			if !ok {
				l.keys = nil
				continue
			}
			switch l.handleKey(b) {
			case actionQuit:
				return true, nil
			case actionRedraw:
				if err := l.draw(); err != nil {
					return true, err
				}
			}
		case <-l.wake:
			if l.applyResize() {
				if err := l.draw(); err != nil {
					return true, err
				}
			}
		}
	}
}

// drainKeys handles every pending key without blocking.
func (l *Loop) drainKeys() action {
	for {
		select {
		case b, ok := <-l.keys:
			if !ok {
				l.keys = nil
				return actionNone
			}
			if l.handleKey(b) == actionQuit {
				return actionQuit
			}
		default:
			return actionNone
		}
	}
}

func (l *Loop) handleKey(b byte) action {
	switch b {
	case keyQuit, keyCtrlC:
		return actionQuit
	case keyUnits:
		l.engine.ToggleUnits()
	case keyColors:
		l.engine.ToggleColors()
	case keyStats:
		l.engine.ToggleStats()
	default:
		return actionNone
	}
	return actionRedraw
}
