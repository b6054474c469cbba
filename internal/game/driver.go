package game

import (
	"context"
	"time"
)

// FrameFunc receives the result of each tick: the events it produced and a
// snapshot to render.
type FrameFunc func(events []Event, snap Snapshot)

// Run drives s from ticks until ctx is done or ticks is closed. Any channel
// of ticks works: a time.Ticker, a host render callback, or a test feeding
// frames by hand. Commands sent on cmds run on the same goroutine between
// ticks, so sessions never need locking.
func Run(ctx context.Context, s *Session, ticks <-chan time.Time, cmds <-chan func(*Session), onFrame FrameFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			cmd(s)
		case _, ok := <-ticks:
			if !ok {
				return
			}
			events := s.Tick()
			if onFrame != nil {
				onFrame(events, s.Snapshot())
			}
		}
	}
}

// NewTicker returns a tick source at rate ticks per second.
func NewTicker(rate int) *time.Ticker {
	if rate <= 0 {
		rate = TickRate
	}
	return time.NewTicker(time.Second / time.Duration(rate))
}
