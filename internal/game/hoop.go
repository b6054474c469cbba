package game

import (
	"errors"
	"fmt"
	"math"
)

// HoopSpec is the configured hoop geometry before validation.
type HoopSpec struct {
	X, Y          float32 // sprite anchor (top-left)
	W, H          float32 // sprite bounds
	RimHeight     float32 // scoring band height below Y
	EdgeMargin    float32 // rim edge points sit this far in from the sprite sides
	PerfectMargin float32 // inner margin of the swish region
	NormalMargin  float32 // outer margin of the scoring region
}

// Hoop is validated, immutable rim geometry. Only FlashFrames changes after
// construction.
type Hoop struct {
	spec            HoopSpec
	collisionRadius float32
	FlashFrames     int
}

var ErrBadGeometry = errors.New("invalid hoop geometry")

// NewHoop validates the geometry. The scoring rectangle must sit strictly
// inside the sprite and the perfect region must be a non-empty subset of the
// normal region.
func NewHoop(spec HoopSpec, collisionRadius float32) (*Hoop, error) {
	if err := spec.validate(collisionRadius); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}
	return &Hoop{spec: spec, collisionRadius: collisionRadius}, nil
}

func (s HoopSpec) validate(collisionRadius float32) error {
	positive := []struct {
		name string
		v    float32
	}{
		{"width", s.W}, {"height", s.H}, {"rim height", s.RimHeight},
		{"edge margin", s.EdgeMargin}, {"perfect margin", s.PerfectMargin},
		{"normal margin", s.NormalMargin}, {"collision radius", collisionRadius},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(float64(p.v), 0) {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}
	if s.PerfectMargin < s.NormalMargin {
		return fmt.Errorf("perfect margin %v is smaller than normal margin %v", s.PerfectMargin, s.NormalMargin)
	}
	if s.W <= 2*s.PerfectMargin {
		return fmt.Errorf("width %v leaves no perfect region with margin %v", s.W, s.PerfectMargin)
	}
	if s.RimHeight >= s.H {
		return fmt.Errorf("rim height %v must be inside sprite height %v", s.RimHeight, s.H)
	}
	if s.EdgeMargin*2 >= s.W {
		return fmt.Errorf("edge margin %v puts rim edges outside width %v", s.EdgeMargin, s.W)
	}
	return nil
}

func (h *Hoop) Spec() HoopSpec { return h.spec }

func (h *Hoop) RimTop() float32 { return h.spec.Y }
func (h *Hoop) RimBottom() float32 { return h.spec.Y + h.spec.RimHeight }

// Edges returns the left and right rim collision points.
func (h *Hoop) Edges() (lx, rx, y float32) {
	return h.spec.X + h.spec.EdgeMargin, h.spec.X + h.spec.W - h.spec.EdgeMargin, h.RimBottom()
}

// inBand reports whether (x, y) is strictly inside the rim x-bounds shrunk
// by margin and vertically within [rimTop, rimBottom].
func (h *Hoop) inBand(x, y, margin float32) bool {
	return x > h.spec.X+margin && x < h.spec.X+h.spec.W-margin &&
		y >= h.RimTop() && y <= h.RimBottom()
}

func (h *Hoop) InPerfect(x, y float32) bool { return h.inBand(x, y, h.spec.PerfectMargin) }
func (h *Hoop) InNormal(x, y float32) bool { return h.inBand(x, y, h.spec.NormalMargin) }

// Flash starts the scored visual for n ticks.
func (h *Hoop) Flash(n int) { h.FlashFrames = n }

// StepFlash decrements the flash countdown, floored at zero.
func (h *Hoop) StepFlash() {
	if h.FlashFrames > 0 {
		h.FlashFrames--
	}
}

// Collide checks both rim edges against the ball. Both checks always run.
func (h *Hoop) Collide(b *Ball, bounce float32) int {
	lx, rx, y := h.Edges()
	hits := 0
	if ResolveRim(b, lx, y, h.collisionRadius, bounce) {
		hits++
	}
	if ResolveRim(b, rx, y, h.collisionRadius, bounce) {
		hits++
	}
	return hits
}

// ResolveRim applies the damped bounce when the ball center is closer than
// b.R+rimRadius to the edge point (cx, cy). Tangent contact is not a hit.
func ResolveRim(b *Ball, cx, cy, rimRadius, bounce float32) bool {
	dx := b.X - cx
	dy := b.Y - cy
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist < b.R+rimRadius {
		b.VX *= -bounce
		b.VY *= bounce
		return true
	}
	return false
}

func (h *Hoop) view() HoopView {
	return HoopView{
		X:           h.spec.X,
		Y:           h.spec.Y,
		W:           h.spec.W,
		H:           h.spec.H,
		RimHeight:   h.spec.RimHeight,
		FlashFrames: h.FlashFrames,
	}
}
