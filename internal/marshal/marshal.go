// Package marshal posts work onto the target application's single UI
// scheduler with a bounded wait, without ever blocking the transport
// reader goroutine past that bound.
//
// A previous generation of an analogous inspector observed 30-second
// timeouts traced directly to a buffered text-stream reader re-entering a
// blocked UI dispatcher pump. The fix generalized here: the reader never
// waits on the UI scheduler directly. It calls Marshaler.Run, which hands
// work to one long-lived worker goroutine (modeling the UI thread) over a
// channel and races the result against a timer. If the UI thread never
// drains the work, Run still returns — late or never — within timeout,
// and the abandoned work is left to finish or not; its result is
// discarded.
package marshal

import (
	"fmt"
	"time"

	"github.com/faze79/WPFVisualTreeMcp/pkg/wire"
)

// DefaultTimeout is the bound applied when a caller does not specify one.
const DefaultTimeout = 10 * time.Second

// Work is one unit of UI-thread work. Implementations must be leaf
// operations from the transport's perspective: a Work function must never
// call Marshaler.Run again (re-entrant submission is not supported and
// would deadlock the single worker goroutine).
type Work func() (any, error)

type job struct {
	fn     Work
	result chan jobResult
}

type jobResult struct {
	value any
	err   error
}

// Marshaler runs Work values one at a time on a single dedicated
// goroutine, modeling a UI framework's single dispatch thread.
type Marshaler struct {
	workCh chan job
	quit   chan struct{}
}

// New starts the worker goroutine and returns a ready Marshaler.
func New() *Marshaler {
	m := &Marshaler{
		workCh: make(chan job),
		quit:   make(chan struct{}),
	}
	go m.loop()
	return m
}

func (m *Marshaler) loop() {
	for {
		select {
		case j := <-m.workCh:
			value, err := j.fn()
			// Buffered by 1 so a timed-out caller that already stopped
			// listening does not leave this goroutine blocked forever.
			j.result <- jobResult{value, err}
		case <-m.quit:
			return
		}
	}
}

// Run submits fn to the UI-thread worker and waits up to timeout for a
// result. It never blocks the calling goroutine (the transport reader)
// past timeout, returning a *wire.Error of kind Timeout instead.
func (m *Marshaler) Run(fn Work, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	j := job{fn: fn, result: make(chan jobResult, 1)}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case m.workCh <- j:
	case <-m.quit:
		return nil, wire.NewError(wire.KindHandlerError, "marshaler: stopped")
	case <-timer.C:
		return nil, wire.NewError(wire.KindTimeout, fmt.Sprintf("UI thread did not accept work within %s", timeout))
	}

	select {
	case res := <-j.result:
		return res.value, res.err
	case <-timer.C:
		return nil, wire.NewError(wire.KindTimeout, fmt.Sprintf("UI thread did not respond within %s", timeout))
	case <-m.quit:
		return nil, wire.NewError(wire.KindHandlerError, "marshaler: stopped")
	}
}

// Stop terminates the worker goroutine. In-flight work is abandoned, not
// canceled; its result, if it ever arrives, is discarded by the
// already-buffered result channel.
func (m *Marshaler) Stop() {
	close(m.quit)
}
