package counters

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// ioCounters is swapped in tests.
var ioCounters = psnet.IOCountersWithContext

// Gopsutil reads counters through gopsutil, which works on Linux, macOS,
// the BSDs and Windows.
type Gopsutil struct{}

// NewGopsutil creates the portable source.
func NewGopsutil() *Gopsutil {
	return &Gopsutil{}
}

func (g *Gopsutil) Read(ctx context.Context, name string) (Counters, error) {
	return readFromList(ctx, g, name)
}

func (g *Gopsutil) List(ctx context.Context) ([]Interface, error) {
	stats, err := ioCounters(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("gopsutil io counters: %w", err)
	}

	list := make([]Interface, 0, len(stats))
	for _, s := range stats {
		list = append(list, Interface{
			Name:      s.Name,
			RxBytes:   s.BytesRecv,
			TxBytes:   s.BytesSent,
			RxPackets: s.PacketsRecv,
			TxPackets: s.PacketsSent,
		})
	}
	return list, nil
}

func (g *Gopsutil) Detect(ctx context.Context) (string, error) {
	return detectLocal(ctx, g)
}

func (g *Gopsutil) Describe() string {
	return "gopsutil"
}

func (g *Gopsutil) Close() error {
	return nil
}
