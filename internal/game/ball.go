package game

import "math"

func NewBall(r float32) Ball {
	return Ball{R: r}
}

// Integrate advances an airborne ball one tick. No bounds checks; leaving
// the field is the classifier's call.
func Integrate(b *Ball, gravity float32) {
	b.VY += gravity
	b.X += b.VX
	b.Y += b.VY
}

// PlaceAt puts the ball at rest on the given point.
func PlaceAt(b *Ball, x, y float32) {
	b.X = x
	b.Y = y
	b.VX = 0
	b.VY = 0
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Finite reports whether every numeric field of the ball is usable.
func (b Ball) Finite() bool {
	return finite(b.X, b.Y, b.VX, b.VY)
}
