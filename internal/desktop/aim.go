package desktop

// aim tracks a mouse drag from press to release.
type aim struct {
	active         bool
	startX, startY int
	curX, curY     int
}

func (a *aim) press(x, y int) {
	a.active = true
	a.startX, a.startY = x, y
	a.curX, a.curY = x, y
}

func (a *aim) move(x, y int) {
	if a.active {
		a.curX, a.curY = x, y
	}
}

// release ends the drag and returns its vector. A zero-length drag is not
// a shot.
func (a *aim) release(x, y int) (dx, dy float32, ok bool) {
	if !a.active {
		return 0, 0, false
	}
	a.move(x, y)
	dx, dy = a.vector()
	a.active = false
	return dx, dy, dx != 0 || dy != 0
}

func (a *aim) vector() (dx, dy float32) {
	return float32(a.curX - a.startX), float32(a.curY - a.startY)
}
