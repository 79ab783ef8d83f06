// Package testing provides a scripted sshutil.Runner for tests that must not
// open real SSH connections.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/netbwmon/pkg/sshutil"
)

// Response is one scripted reply.
type Response struct {
	Stdout []byte
	Err    error
}

// FakeRunner replays responses per command, in order. The last response for
// a command repeats once the script runs out.
type FakeRunner struct {
	mu        sync.Mutex
	host      string
	responses map[string][]Response
	calls     []string
	closed    bool
}

var _ sshutil.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a fake for host.
func NewFakeRunner(host string) *FakeRunner {
	return &FakeRunner{
		host:      host,
		responses: make(map[string][]Response),
	}
}

// On appends responses for cmd.
func (f *FakeRunner) On(cmd string, responses ...Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = append(f.responses[cmd], responses...)
	return f
}

// Run returns the next scripted response for cmd.
func (f *FakeRunner) Run(ctx context.Context, cmd string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, fmt.Errorf("fake runner for %s is closed", f.host)
	}
	f.calls = append(f.calls, cmd)

	script := f.responses[cmd]
	if len(script) == 0 {
		return nil, fmt.Errorf("no scripted response for %q", cmd)
	}
	resp := script[0]
	if len(script) > 1 {
		f.responses[cmd] = script[1:]
	}
	return resp.Stdout, resp.Err
}

// Host returns the host the fake was created for.
func (f *FakeRunner) Host() string {
	return f.host
}

// Close marks the fake closed; later Run calls fail.
func (f *FakeRunner) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Calls returns the commands run so far.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Closed reports whether Close was called.
func (f *FakeRunner) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
