package game

import "math"

// AimVelocity turns a drag vector (release minus press) into a launch
// velocity: the ball flies opposite the drag, scaled and clamped to
// maxSpeed. power is the resulting speed as a percentage of maxSpeed.
func AimVelocity(dx, dy, scale, maxSpeed float32) (vx, vy float32, power int) {
	vx = -dx * scale
	vy = -dy * scale
	if !finite(vx, vy) {
		return vx, vy, 0
	}
	speed := float32(math.Hypot(float64(vx), float64(vy)))
	if speed > maxSpeed {
		k := maxSpeed / speed
		vx *= k
		vy *= k
		speed = maxSpeed
	}
	power = int(math.Round(float64(speed / maxSpeed * 100)))
	return vx, vy, power
}
