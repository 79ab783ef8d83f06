package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/util"
)

// Opener builds a counter source; counters.New in production.
type Opener func(ctx context.Context) (counters.Source, error)

// Probe opens the counter source once and shares it between the source
// checks, so an SSH source only connects once per report.
type Probe struct {
	open    Opener
	timeout time.Duration

	once sync.Once
	src  counters.Source
	err  error
}

// NewProbe wraps open. Each check gets its own timeout-bounded context.
func NewProbe(open Opener, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Probe{open: open, timeout: timeout}
}

// NewSourceProbe opens sources the way the dashboard does.
func NewSourceProbe(sc config.SourceConfig, log logger.Logger) *Probe {
	return NewProbe(func(ctx context.Context) (counters.Source, error) {
		return counters.New(ctx, sc, log)
	}, sc.Timeout)
}

func (p *Probe) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

// Source returns the opened source or the error that prevented it.
func (p *Probe) Source() (counters.Source, error) {
	p.once.Do(func() {
		ctx, cancel := p.context()
		defer cancel()
		p.src, p.err = p.open(ctx)
	})
	return p.src, p.err
}

// Close releases the source if it was opened.
func (p *Probe) Close() error {
	if p.src == nil {
		return nil
	}
	return p.src.Close()
}

// SourceCheck verifies that the source opens and lists interfaces.
type SourceCheck struct {
	Probe *Probe
}

func (c *SourceCheck) Name() string     { return "source" }
func (c *SourceCheck) Category() string { return CategorySource }

func (c *SourceCheck) Run() CheckResult {
	src, err := c.Probe.Source()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot open counter source: %s", firstLine(err)),
			Suggestion: sourceSuggestion(err),
		}
	}

	ctx, cancel := c.Probe.context()
	defer cancel()
	list, err := src.List(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: failed to list interfaces: %s", src.Describe(), firstLine(err)),
			Suggestion: "Try another source with --source gopsutil",
		}
	}
	if len(list) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s reports no interfaces", src.Describe()),
			Suggestion: "Point --proc-path at the right net/dev file, or try --source gopsutil",
		}
	}

	names := make([]string, len(list))
	for i, iface := range list {
		names[i] = iface.Name
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s", src.Describe(), util.JoinOrNone(names)),
	}
}

func (c *SourceCheck) Fix() error { return nil }

// InterfaceCheck resolves the interface the dashboard would monitor.
type InterfaceCheck struct {
	Probe     *Probe
	Interface string // empty means auto-detect
}

func (c *InterfaceCheck) Name() string     { return "interface" }
func (c *InterfaceCheck) Category() string { return CategorySource }

func (c *InterfaceCheck) Run() CheckResult {
	src, err := c.Probe.Source()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Skipped: no counter source",
		}
	}

	ctx, cancel := c.Probe.context()
	defer cancel()
	name, err := counters.Resolve(ctx, src, c.Interface)
	if err != nil {
		msg := "No active non-loopback interface to auto-detect"
		if c.Interface != "" {
			msg = fmt.Sprintf("Interface %s not found", c.Interface)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    msg,
			Suggestion: "Run 'netbwmon interfaces' and pass one with -i",
		}
	}

	how := "configured"
	if c.Interface == "" {
		how = "auto-detected"
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Interface %s (%s)", name, how),
	}
}

func (c *InterfaceCheck) Fix() error { return nil }

// CounterCheck reads the interface twice, Gap apart, and warns when the
// counters move backwards.
type CounterCheck struct {
	Probe     *Probe
	Interface string
	Gap       time.Duration
	Clock     clock.Clock
}

func (c *CounterCheck) Name() string     { return "counters" }
func (c *CounterCheck) Category() string { return CategorySource }

func (c *CounterCheck) Run() CheckResult {
	src, err := c.Probe.Source()
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "Skipped: no counter source"}
	}

	ctx, cancel := c.Probe.context()
	defer cancel()
	name, err := counters.Resolve(ctx, src, c.Interface)
	if err != nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "Skipped: no interface"}
	}

	first, err := src.Read(ctx, name)
	if err != nil {
		return c.readFailure(name, err)
	}
	if c.Gap > 0 {
		clk := c.Clock
		if clk == nil {
			clk = clock.New()
		}
		clk.Sleep(c.Gap)
	}
	second, err := src.Read(ctx, name)
	if err != nil {
		return c.readFailure(name, err)
	}

	if second.RxBytes < first.RxBytes || second.TxBytes < first.TxBytes {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Counters for %s went backwards between reads", name),
			Suggestion: "The dashboard re-baselines when this happens; frequent resets point at a driver or 32-bit counter wrap",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Counters readable for %s", name),
	}
}

func (c *CounterCheck) readFailure(name string, err error) CheckResult {
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("Failed to read counters for %s: %s", name, firstLine(err)),
		Suggestion: "Check permissions on the counter source",
	}
}

func (c *CounterCheck) Fix() error { return nil }

// NewSourceChecks creates the checks that share probe.
func NewSourceChecks(probe *Probe, iface string, gap time.Duration) []Check {
	return []Check{
		&SourceCheck{Probe: probe},
		&InterfaceCheck{Probe: probe, Interface: iface},
		&CounterCheck{Probe: probe, Interface: iface, Gap: gap},
	}
}

func sourceSuggestion(err error) string {
	if errors.IsCode(err, errors.ErrSSH) {
		var nbErr *errors.Error
		if stderrors.As(err, &nbErr) && nbErr.Suggestion != "" {
			return nbErr.Suggestion
		}
		return "Check that 'ssh <host>' works without a password prompt"
	}
	return "Try --source gopsutil, or point --proc-path at a readable net/dev file"
}

// firstLine condenses err to one line: the message of a structured error,
// or the first line of anything else.
func firstLine(err error) string {
	var nbErr *errors.Error
	if stderrors.As(err, &nbErr) {
		return nbErr.Message
	}
	s := err.Error()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
