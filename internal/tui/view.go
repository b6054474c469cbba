package tui

import "github.com/vladimirvolkov/hoopshot/internal/game"

// view maps field coordinates onto terminal cells. Row 0 holds the HUD
// and the last row the controls line.
type view struct {
	sx, sy   float32
	top      int
	floorRow int
}

func newView(f game.Field, cols, rows int) view {
	top := 1
	floorRow := rows - 2
	return view{
		sx:       f.Width / float32(cols),
		sy:       f.FloorY / float32(floorRow-top),
		top:      top,
		floorRow: floorRow,
	}
}

func (v view) cell(x, y float32) (col, row int) {
	col = int(x / v.sx)
	row = v.top + int(y/v.sy)
	return col, row
}
