package game

import "math"

func NewPlayer(p Player) Player {
	p.ShootingFrame = 0
	return p
}

// LaunchPoint is where the ball rests in the player's hand.
func (p Player) LaunchPoint() (x, y float32) {
	return p.X + p.W, p.Y + HandOffsetY
}

// StartShot begins the throw animation.
func (p *Player) StartShot() {
	p.ShootingFrame = 1
}

// StepAnim advances the throw animation and returns to idle after maxFrames.
func (p *Player) StepAnim(maxFrames int) {
	if p.ShootingFrame > 0 {
		p.ShootingFrame++
		if p.ShootingFrame > maxFrames {
			p.ShootingFrame = 0
		}
	}
}

// StepCrowd advances the cheer countdown and the idle bob.
func StepCrowd(c *Crowd, tick uint32) {
	if c.CheerFrames > 0 {
		c.CheerFrames--
		if c.CheerFrames == 0 {
			c.Cheering = false
		}
	}
	// 2-unit bob, period ~5s at 60Hz
	phase := float32(tick%314) * 0.02
	c.Bob = 2 * float32(math.Sin(float64(phase)))
}

// Cheer starts the crowd cheering for n ticks.
func Cheer(c *Crowd, n int) {
	c.Cheering = true
	c.CheerFrames = n
}
