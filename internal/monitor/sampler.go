package monitor

import (
	"context"
	stderrors "errors"
	"math"
	"math/bits"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
)

var (
	// ErrCounterRollback means a counter went backwards (interface reset or
	// wrap). The sample is discarded; it is never shown to the user.
	ErrCounterRollback = stderrors.New("counter rollback")

	// ErrInvalidElapsed means the interval between readings was not positive.
	ErrInvalidElapsed = stderrors.New("elapsed time must be positive")
)

// Rate converts a counter delta into bytes per second, rounded half away
// from zero. Whole-second intervals use exact integer arithmetic.
func Rate(prev, cur uint64, elapsed float64) (uint64, error) {
	if !(elapsed > 0) {
		return 0, ErrInvalidElapsed
	}
	if cur < prev {
		return 0, ErrCounterRollback
	}
	delta := cur - prev

	if elapsed == math.Trunc(elapsed) && elapsed < math.MaxUint64 {
		e := uint64(elapsed)
		q, r := bits.Div64(0, delta, e)
		// Round half up; r < e so 2r can't overflow when compared as r >= e-r.
		if r >= e-r {
			q++
		}
		return q, nil
	}

	rate := math.Round(float64(delta) / elapsed)
	if rate >= math.MaxUint64 {
		return math.MaxUint64, nil
	}
	return uint64(rate), nil
}

// Sample computes both directions. A rollback in either direction rejects
// the whole tick so RX and TX histories stay aligned.
func Sample(prev, cur counters.Counters, elapsed float64) (rx, tx uint64, err error) {
	if rx, err = Rate(prev.RxBytes, cur.RxBytes, elapsed); err != nil {
		return 0, 0, err
	}
	if tx, err = Rate(prev.TxBytes, cur.TxBytes, elapsed); err != nil {
		return 0, 0, err
	}
	return rx, tx, nil
}

// TickResult describes what one sampler tick did.
type TickResult struct {
	// Baseline is true when the reading only established the previous counters.
	Baseline bool
	// Rejected is true when the sample was discarded (rollback or no time passed).
	Rejected bool

	RxRate uint64
	TxRate uint64
}

// Sampler turns successive counter readings into rate samples. The previous
// reading lives here rather than in the source, so a fresh Sampler always
// starts with a baseline read.
type Sampler struct {
	src   counters.Source
	name  string
	clock clock.Clock
	log   logger.Logger

	prev    counters.Counters
	prevAt  time.Time
	hasPrev bool

	rollbacks uint64
}

// NewSampler creates a sampler for one interface.
func NewSampler(src counters.Source, name string, clk clock.Clock, log logger.Logger) *Sampler {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{src: src, name: name, clock: clk, log: log}
}

// Tick reads the counters once and, unless this is a baseline or the sample
// is rejected, appends the rates to state. A failed read is a
// CounterReadFailure; the caller is expected to stop.
func (s *Sampler) Tick(ctx context.Context, state *InterfaceState) (TickResult, error) {
	cur, err := s.src.Read(ctx, s.name)
	if err != nil {
		return TickResult{}, errors.CounterReadFailure(s.name, err)
	}
	now := s.clock.Now()

	if !s.hasPrev {
		s.setBaseline(cur, now)
		state.RxTotal, state.TxTotal = cur.RxBytes, cur.TxBytes
		return TickResult{Baseline: true}, nil
	}

	rx, tx, err := Sample(s.prev, cur, now.Sub(s.prevAt).Seconds())
	switch {
	case stderrors.Is(err, ErrCounterRollback):
		s.rollbacks++
		s.log.Debug("counter rollback on %s (rx %d -> %d, tx %d -> %d), resetting baseline",
			s.name, s.prev.RxBytes, cur.RxBytes, s.prev.TxBytes, cur.TxBytes)
		s.setBaseline(cur, now)
		return TickResult{Rejected: true}, nil
	case err != nil:
		// No time passed; keep the old baseline and wait for the next tick.
		return TickResult{Rejected: true}, nil
	}

	state.Accept(rx, tx)
	state.RxTotal, state.TxTotal = cur.RxBytes, cur.TxBytes
	s.setBaseline(cur, now)
	return TickResult{RxRate: rx, TxRate: tx}, nil
}

func (s *Sampler) setBaseline(c counters.Counters, at time.Time) {
	s.prev = c
	s.prevAt = at
	s.hasPrev = true
}

// Reset makes the next tick a baseline read.
func (s *Sampler) Reset() {
	s.hasPrev = false
}

// Rollbacks returns how many samples were discarded because a counter went backwards.
func (s *Sampler) Rollbacks() uint64 {
	return s.rollbacks
}
