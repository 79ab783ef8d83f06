package monitor

import (
	"fmt"
	"math/bits"
)

// History is a fixed-size window of rate samples backed by a ring buffer.
// It is always full: slots that never received a sample hold zero, so a new
// History renders as an empty graph. Iteration order is oldest first.
type History struct {
	data []uint64
	head int // index of the oldest sample
}

// NewHistory creates a zero-filled history of the given size.
// size must be at least 1.
func NewHistory(size int) *History {
	if size < 1 {
		panic(fmt.Sprintf("monitor: history size must be at least 1, got %d", size))
	}
	return &History{data: make([]uint64, size)}
}

// Len returns the fixed number of samples held.
func (h *History) Len() int {
	return len(h.data)
}

// Push drops the oldest sample and appends v as the most recent.
func (h *History) Push(v uint64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
}

// At returns the i-th sample, oldest first.
func (h *History) At(i int) uint64 {
	return h.data[(h.head+i)%len(h.data)]
}

// Last returns the most recent sample.
func (h *History) Last() uint64 {
	return h.At(len(h.data) - 1)
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []uint64 {
	out := make([]uint64, len(h.data))
	n := copy(out, h.data[h.head:])
	copy(out[n:], h.data[:h.head])
	return out
}

// Avg returns sum/size truncated. The sum is kept in 128 bits so a window
// of very large rates can't wrap.
func (h *History) Avg() uint64 {
	var hi, lo uint64
	for _, v := range h.data {
		var carry uint64
		lo, carry = bits.Add64(lo, v, 0)
		hi += carry
	}
	if hi == 0 && lo == 0 {
		return 0
	}
	// hi < len(data) because every term is below 2^64.
	q, _ := bits.Div64(hi, lo, uint64(len(h.data)))
	return q
}

// Max returns the largest sample in the window.
func (h *History) Max() uint64 {
	var m uint64
	for _, v := range h.data {
		if v > m {
			m = v
		}
	}
	return m
}

// Resize changes the window size, keeping the most recent samples.
func (h *History) Resize(newSize int) {
	h.data = ResizeSamples(h.Values(), newSize)
	h.head = 0
}

// ResizeSamples returns a copy of old (oldest first) with length newSize.
// Growing left-pads with zeros; shrinking drops the oldest samples. The most
// recent sample always stays last. newSize must be at least 1.
func ResizeSamples(old []uint64, newSize int) []uint64 {
	if newSize < 1 {
		panic(fmt.Sprintf("monitor: history size must be at least 1, got %d", newSize))
	}
	out := make([]uint64, newSize)
	if newSize >= len(old) {
		copy(out[newSize-len(old):], old)
	} else {
		copy(out, old[len(old)-newSize:])
	}
	return out
}
