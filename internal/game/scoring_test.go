package game

import (
	"testing"
	"time"
)

func testHoop(t *testing.T) *Hoop {
	t.Helper()
	h, err := NewHoop(testTuning().Hoop, RimCollisionRadius)
	if err != nil {
		t.Fatalf("NewHoop: %v", err)
	}
	return h
}

func TestClassifyScenarios(t *testing.T) {
	h := testHoop(t)
	f := Field{Width: FieldWidth, FloorY: FloorY}
	cases := []struct {
		name       string
		x, y       float32
		justScored bool
		want       ShotResult
	}{
		{"center swish", 432, 205, false, ResultPerfect},
		{"inside outer margin only", 410, 205, false, ResultNormal},
		{"below floor", 300, 410, false, ResultMiss},
		{"below floor while settling", 300, 410, true, ResultPending},
		{"left of field", -1, 100, false, ResultMiss},
		{"right of field", 601, 100, false, ResultMiss},
		{"above rim", 432, 190, false, ResultPending},
		{"on perfect boundary", 410, 205, true, ResultNormal},
		{"on normal boundary", 402, 205, false, ResultPending},
		{"rim top inclusive", 432, 200, false, ResultPerfect},
		{"rim bottom inclusive", 432, 210, false, ResultPerfect},
		{"below rim band", 432, 211, false, ResultPending},
	}
	for _, tc := range cases {
		b := Ball{X: tc.x, Y: tc.y, R: BallRadius, Shooting: true, JustScored: tc.justScored}
		if got := Classify(b, h, f); got != tc.want {
			t.Errorf("%s: Classify(%v,%v) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestClassifyOutcomesAreMutuallyExclusive(t *testing.T) {
	h := testHoop(t)
	f := Field{Width: FieldWidth, FloorY: FloorY}
	for x := float32(-20); x <= 620; x += 0.5 {
		for _, y := range []float32{-5, 150, 199.5, 200, 203, 205.5, 210, 210.5, 399, 400, 400.5, 450} {
			for _, settling := range []bool{false, true} {
				b := Ball{X: x, Y: y, JustScored: settling}
				perfect := h.InPerfect(x, y)
				normal := h.InNormal(x, y) && !perfect
				miss := !settling && OutOfField(b, f) && !perfect && !normal
				fired := 0
				for _, ok := range []bool{perfect, normal, miss} {
					if ok {
						fired++
					}
				}
				if fired > 1 {
					t.Fatalf("(%v,%v): %d outcomes fired", x, y, fired)
				}
				want := ResultPending
				switch {
				case perfect:
					want = ResultPerfect
				case normal:
					want = ResultNormal
				case miss:
					want = ResultMiss
				}
				if got := Classify(b, h, f); got != want {
					t.Fatalf("(%v,%v) settling=%v: got %v, want %v", x, y, settling, got, want)
				}
			}
		}
	}
}

func TestPerfectRegionInsideNormalRegion(t *testing.T) {
	h := testHoop(t)
	for x := float32(390); x <= 475; x += 0.25 {
		for y := float32(195); y <= 215; y += 0.25 {
			if h.InPerfect(x, y) && !h.InNormal(x, y) {
				t.Fatalf("(%v,%v) is perfect but not normal", x, y)
			}
		}
	}
	spec := testTuning().Hoop
	spec.PerfectMargin, spec.NormalMargin = 2, 10
	if _, err := NewHoop(spec, RimCollisionRadius); err == nil {
		t.Fatal("NewHoop accepted a perfect region wider than the normal region")
	}
}

func TestPerfectShotScenario(t *testing.T) {
	s, clock := newTestSession(t)
	shootFrom(t, s, 432, 205)

	events := s.Tick()
	if countKind(events, EventScored) != 1 {
		t.Fatalf("events = %v, want one scored", events)
	}
	sc := s.Score()
	if sc.Score != 1 || !sc.PerfectShot || sc.Perfects != 1 {
		t.Fatalf("score = %+v, want 1 point with perfect flag", sc)
	}
	if sc.Announcement != TextPerfect {
		t.Fatalf("announcement = %q, want %q", sc.Announcement, TextPerfect)
	}
	if s.Hoop().FlashFrames != FlashFrames {
		t.Fatalf("flash = %d, want %d", s.Hoop().FlashFrames, FlashFrames)
	}
	if !s.Ball().JustScored || s.Phase() != PhaseResetting {
		t.Fatalf("ball=%+v phase=%v, want settling", s.Ball(), s.Phase())
	}

	clock.Advance(999 * time.Millisecond)
	s.Tick()
	if !s.Score().PerfectShot {
		t.Fatal("perfect flag cleared before 1000ms")
	}
	if s.Ball().Shooting {
		t.Fatal("ball not reset after 400ms")
	}
	clock.Advance(time.Millisecond)
	s.Tick()
	if s.Score().PerfectShot {
		t.Fatal("perfect flag still set after 1000ms")
	}
	if s.Score().Score != 1 {
		t.Fatalf("score = %d, want 1", s.Score().Score)
	}
}

func TestNormalShotScenario(t *testing.T) {
	s, _ := newTestSession(t)
	shootFrom(t, s, 410, 205)

	events := s.Tick()
	var scored []Event
	for _, e := range events {
		if e.Kind == EventScored {
			scored = append(scored, e)
		}
	}
	if len(scored) != 1 || scored[0].Result != ResultNormal {
		t.Fatalf("scored events = %v, want one normal", scored)
	}
	sc := s.Score()
	if sc.Score != 1 || sc.PerfectShot {
		t.Fatalf("score = %+v, want 1 point without perfect flag", sc)
	}
	if sc.Announcement != TextScore {
		t.Fatalf("announcement = %q, want %q", sc.Announcement, TextScore)
	}
}

func TestMissScenario(t *testing.T) {
	s, clock := newTestSession(t)
	shootFrom(t, s, 300, 410)

	events := s.Tick()
	if countKind(events, EventMissed) != 1 {
		t.Fatalf("events = %v, want one miss", events)
	}
	if s.Score().Score != 0 || s.Score().Announcement != TextMiss {
		t.Fatalf("score = %+v, want 0 and %q", s.Score(), TextMiss)
	}

	// The miss announces once even though the ball stays out of the field.
	events = tickFor(s, clock, 150*time.Millisecond)
	if n := countKind(events, EventMissed); n != 0 {
		t.Fatalf("miss fired %d more times during settle window", n)
	}
	events = tickFor(s, clock, 100*time.Millisecond)
	if n := countKind(events, EventShotReset); n != 1 {
		t.Fatalf("resets = %d, want 1", n)
	}
}

func TestScoredBallLeavingFieldIsNotAMiss(t *testing.T) {
	s, clock := newTestSession(t)
	shootFrom(t, s, 432, 205)
	s.Tick()
	s.ball.VY = 400 // falls out of the field during the settle window

	events := tickFor(s, clock, 300*time.Millisecond)
	if n := countKind(events, EventMissed); n != 0 {
		t.Fatalf("scored ball classified as miss %d times", n)
	}
	if s.Score().Missed != 0 {
		t.Fatalf("missed = %d, want 0", s.Score().Missed)
	}
}
