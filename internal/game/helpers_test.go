package game

import (
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// testTuning places the hoop at x∈[400,464], rim y=200, rim height 10.
func testTuning() Tuning {
	t := DefaultTuning()
	t.Hoop.X = 400
	t.Hoop.Y = 200
	return t
}

func newTestSession(t *testing.T) (*Session, *ManualClock) {
	t.Helper()
	clock := NewManualClock(epoch)
	s, err := NewSession(testTuning(), clock)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Logf = nil
	return s, clock
}

// shootFrom launches a shot and moves the ball so that after the next
// integration step it sits exactly at (x, y) with zero velocity.
func shootFrom(t *testing.T, s *Session, x, y float32) {
	t.Helper()
	if err := s.Launch(0, -s.tuning.Gravity); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	s.ball.X = x
	s.ball.Y = y
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// tickFor advances the clock one frame per tick for d and collects events.
func tickFor(s *Session, clock *ManualClock, d time.Duration) []Event {
	var all []Event
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		clock.Advance(frame)
		all = append(all, s.Tick()...)
	}
	return all
}
