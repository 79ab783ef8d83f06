// Package counters reads cumulative per-interface byte counters. Sources
// never compute rates; they report what the kernel (or a remote kernel)
// reports, and callers derive throughput from consecutive reads.
package counters

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested interface is not reported by the source.
var ErrNotFound = errors.New("interface not found")

// Counters is one cumulative reading for a single interface.
type Counters struct {
	RxBytes uint64
	TxBytes uint64
}

// Interface is one row of an interface listing.
type Interface struct {
	Name      string
	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
}

// Counters returns the byte counters of the row.
func (i Interface) Counters() Counters {
	return Counters{RxBytes: i.RxBytes, TxBytes: i.TxBytes}
}

// Source produces counter readings.
type Source interface {
	// Read returns the current counters for name, or an error wrapping
	// ErrNotFound if the interface is gone.
	Read(ctx context.Context, name string) (Counters, error)

	// List returns every interface the source knows, in source order.
	List(ctx context.Context) ([]Interface, error)

	// Detect picks the interface to monitor when none was configured.
	Detect(ctx context.Context) (string, error)

	// Describe names the source for logs and headers, e.g. "procfs" or "ssh:router".
	Describe() string

	Close() error
}

// Find returns the row for name.
func Find(list []Interface, name string) (Interface, bool) {
	for _, iface := range list {
		if iface.Name == name {
			return iface, true
		}
	}
	return Interface{}, false
}

// readFromList is the Read implementation shared by sources that can only list.
func readFromList(ctx context.Context, src Source, name string) (Counters, error) {
	list, err := src.List(ctx)
	if err != nil {
		return Counters{}, err
	}
	iface, ok := Find(list, name)
	if !ok {
		return Counters{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return iface.Counters(), nil
}
