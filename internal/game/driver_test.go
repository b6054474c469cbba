package game

import (
	"context"
	"testing"
	"time"
)

func TestRunDrivesTicksAndCommands(t *testing.T) {
	s, _ := newTestSession(t)
	ticks := make(chan time.Time)
	cmds := make(chan func(*Session))
	var frames []Snapshot
	var launched int

	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(context.Background(), s, ticks, cmds, func(events []Event, snap Snapshot) {
			launched += countKind(events, EventShotLaunched)
			frames = append(frames, snap)
		})
	}()

	ticks <- epoch
	cmds <- func(s *Session) {
		if err := s.Launch(2, -8); err != nil {
			t.Errorf("Launch: %v", err)
		}
	}
	ticks <- epoch
	ticks <- epoch
	close(ticks)
	<-done

	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	if frames[0].Ball.Shooting || !frames[1].Ball.Shooting {
		t.Fatal("launch command did not run between ticks")
	}
	if launched != 1 {
		t.Fatalf("launched events = %d, want 1", launched)
	}
	if frames[2].Tick != 3 {
		t.Fatalf("last tick = %d", frames[2].Tick)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, s, make(chan time.Time), nil, nil)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunSurvivesClosedCommands(t *testing.T) {
	s, _ := newTestSession(t)
	ticks := make(chan time.Time, 2)
	cmds := make(chan func(*Session))
	close(cmds)
	ticks <- epoch
	ticks <- epoch
	close(ticks)
	Run(context.Background(), s, ticks, cmds, nil)
	if s.TickCount() != 2 {
		t.Fatalf("ticks = %d, want 2", s.TickCount())
	}
}
