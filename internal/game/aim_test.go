package game

import (
	"math"
	"testing"
)

func TestAimVelocity(t *testing.T) {
	cases := []struct {
		name      string
		dx, dy    float32
		wantVX    float32
		wantVY    float32
		wantPower int
	}{
		{"opposite of drag", -40, 60, 6, -9, 60},
		{"no drag", 0, 0, 0, 0, 0},
		{"clamped", -300, 400, 10.8, -14.4, 100},
	}
	for _, tc := range cases {
		vx, vy, power := AimVelocity(tc.dx, tc.dy, 0.15, 18)
		if math.Abs(float64(vx-tc.wantVX)) > 1e-4 || math.Abs(float64(vy-tc.wantVY)) > 1e-4 {
			t.Errorf("%s: v = (%v,%v), want (%v,%v)", tc.name, vx, vy, tc.wantVX, tc.wantVY)
		}
		if power != tc.wantPower {
			t.Errorf("%s: power = %d, want %d", tc.name, power, tc.wantPower)
		}
	}
}

func TestAimVelocityNonFinite(t *testing.T) {
	_, _, power := AimVelocity(float32(math.Inf(1)), 0, 0.15, 18)
	if power != 0 {
		t.Fatalf("power = %d, want 0", power)
	}
	s, _ := newTestSession(t)
	if _, err := s.LaunchDrag(float32(math.NaN()), 1); err == nil {
		t.Fatal("LaunchDrag accepted a NaN drag")
	}
}
