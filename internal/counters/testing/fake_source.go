// Package testing provides a scripted counters.Source.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/netbwmon/internal/counters"
)

// Step is one scripted reading. A non-nil Err is returned instead of the counters.
type Step struct {
	Rx, Tx uint64
	Err    error
}

// FakeSource replays readings for one interface. The last step repeats once
// the script runs out.
type FakeSource struct {
	mu       sync.Mutex
	name     string
	steps    []Step
	reads    int
	extra    []counters.Interface
	detected string
	closed   bool
}

var _ counters.Source = (*FakeSource)(nil)

// NewFakeSource scripts readings for name.
func NewFakeSource(name string, steps ...Step) *FakeSource {
	return &FakeSource{name: name, steps: steps, detected: name}
}

// Counts is shorthand for successive (rx, tx) pairs without errors.
func Counts(pairs ...[2]uint64) []Step {
	steps := make([]Step, len(pairs))
	for i, p := range pairs {
		steps[i] = Step{Rx: p[0], Tx: p[1]}
	}
	return steps
}

// WithInterfaces adds extra rows to List.
func (f *FakeSource) WithInterfaces(extra ...counters.Interface) *FakeSource {
	f.extra = append(f.extra, extra...)
	return f
}

// WithDetected overrides the interface Detect returns ("" makes Detect fail).
func (f *FakeSource) WithDetected(name string) *FakeSource {
	f.detected = name
	return f
}

// Push appends more steps to the script.
func (f *FakeSource) Push(steps ...Step) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, steps...)
}

func (f *FakeSource) current() Step {
	if len(f.steps) == 0 {
		return Step{}
	}
	i := f.reads
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	return f.steps[i]
}

func (f *FakeSource) Read(ctx context.Context, name string) (counters.Counters, error) {
	if err := ctx.Err(); err != nil {
		return counters.Counters{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if name != f.name {
		return counters.Counters{}, fmt.Errorf("%s: %w", name, counters.ErrNotFound)
	}
	step := f.current()
	f.reads++
	if step.Err != nil {
		return counters.Counters{}, step.Err
	}
	return counters.Counters{RxBytes: step.Rx, TxBytes: step.Tx}, nil
}

func (f *FakeSource) List(ctx context.Context) ([]counters.Interface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	step := f.current()
	list := []counters.Interface{{Name: f.name, RxBytes: step.Rx, TxBytes: step.Tx}}
	return append(list, f.extra...), nil
}

func (f *FakeSource) Detect(ctx context.Context) (string, error) {
	if f.detected == "" {
		return "", counters.ErrNotFound
	}
	return f.detected, nil
}

func (f *FakeSource) Describe() string {
	return "fake"
}

func (f *FakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Reads returns how many Read calls were made.
func (f *FakeSource) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

// Closed reports whether Close was called.
func (f *FakeSource) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
