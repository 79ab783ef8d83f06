package monitor

import "github.com/rileyhilliard/netbwmon/internal/util"

// MaxInterfaceName is IFNAMSIZ-1; longer names are truncated.
const MaxInterfaceName = 15

// InterfaceState is everything the dashboard knows about the monitored
// interface. Both histories always have the same length; only Resize changes it.
type InterfaceState struct {
	Name string

	// Cumulative counters at the last accepted reading.
	RxTotal uint64
	TxTotal uint64

	Rx *History
	Tx *History

	RxAvg, TxAvg uint64
	RxMax, TxMax uint64
}

// NewInterfaceState creates zero-filled histories of the given size.
func NewInterfaceState(name string, size int) *InterfaceState {
	return &InterfaceState{
		Name: util.TruncateBytes(name, MaxInterfaceName),
		Rx:   NewHistory(size),
		Tx:   NewHistory(size),
	}
}

// Size returns the shared history length.
func (s *InterfaceState) Size() int {
	return s.Rx.Len()
}

// Accept appends one rate sample per direction and recomputes avg and max.
func (s *InterfaceState) Accept(rxRate, txRate uint64) {
	s.Rx.Push(rxRate)
	s.Tx.Push(txRate)
	s.recompute()
}

// Resize resizes both histories to the same new size.
func (s *InterfaceState) Resize(size int) {
	s.Rx.Resize(size)
	s.Tx.Resize(size)
	s.recompute()
}

// recompute keeps max equal to the largest visible sample, so every bar
// satisfies v <= max even after a shrink dropped the previous peak.
func (s *InterfaceState) recompute() {
	s.RxAvg = s.Rx.Avg()
	s.TxAvg = s.Tx.Avg()
	s.RxMax = s.Rx.Max()
	s.TxMax = s.Tx.Max()
}
