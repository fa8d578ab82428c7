// Package progress defines the progress sink consumed by long-running
// operations and a relay that serializes delivery to it.
package progress

import (
	"sync"
)

// Indeterminate is reported instead of a percentage on error or unknown progress.
const Indeterminate = -1

// Reporter receives human-readable status and a percentage in [0,100] or Indeterminate.
type Reporter interface {
	Report(message string, percent int)
}

// Func adapts a plain function to Reporter.
type Func func(message string, percent int)

func (f Func) Report(message string, percent int) {
	f(message, percent)
}

type nop struct{}

func (nop) Report(string, int) {}

// Nop discards every update.
var Nop Reporter = nop{}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop
	}
	return r
}

type scaled struct {
	r        Reporter
	from, to int
}

/**
 * Map a sub-operation's 0..100 onto a stage window of the parent
 * @param {Reporter} r - Parent reporter
 * @param {int} from - Parent percent at sub-operation 0
 * @param {int} to - Parent percent at sub-operation 100
 * @returns {Reporter} Indeterminate passes through unchanged
 */
func Scale(r Reporter, from, to int) Reporter {
	return &scaled{r: OrNop(r), from: from, to: to}
}

func (s *scaled) Report(message string, percent int) {
	if percent < 0 {
		s.r.Report(message, percent)
		return
	}
	if percent > 100 {
		percent = 100
	}
	s.r.Report(message, s.from+(s.to-s.from)*percent/100)
}

type update struct {
	message string
	percent int
}

/**
 * Relay delivers updates to a sink from a single goroutine
 * @description
 * - Report never blocks the caller: when the buffer is full the update is
 *   dropped, a later one supersedes it
 * - Percentages reaching the sink never decrease; values are clamped to
 *   [0,100] and Indeterminate passes through
 * - Close delivers its final update after everything queued before it,
 *   then waits for the delivery goroutine to exit
 */
type Relay struct {
	sink   Reporter
	ch     chan update
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

func NewRelay(sink Reporter, buffer int) *Relay {
	if buffer <= 0 {
		buffer = 64
	}
	r := &Relay{
		sink: OrNop(sink),
		ch:   make(chan update, buffer),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Relay) run() {
	defer close(r.done)
	last := 0
	for u := range r.ch {
		if u.percent != Indeterminate {
			if u.percent < last {
				u.percent = last
			}
			if u.percent > 100 {
				u.percent = 100
			}
			last = u.percent
		}
		r.sink.Report(u.message, u.percent)
	}
}

func (r *Relay) Report(message string, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.ch <- update{message, percent}:
	default:
	}
}

// Close queues the final update, drains the relay and stops it. Safe to call once.
func (r *Relay) Close(message string, percent int) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.ch <- update{message, percent}
	close(r.ch)
	r.mu.Unlock()
	<-r.done
}
