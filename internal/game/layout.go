package game

import "github.com/iburimskiy/circle-bounce/internal/config"

const boundaryTop = config.ButtonY + config.ButtonHeight + 40

// boundaryOrigin is the screen position of the boundary's top-left corner:
// centred horizontally, below the button row.
func boundaryOrigin(screenW, screenH int, diameter float64) (float64, float64) {
	ox := (float64(screenW) - diameter) / 2
	oy := float64(boundaryTop)
	if free := float64(screenH-config.ViewportMarginY) - diameter; free > 0 {
		oy += free / 2
	}
	return ox, oy
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// buttonRect lays buttons out left to right in one row.
func buttonRect(i int) rect {
	return rect{
		x: config.ButtonX + i*(config.ButtonWidth+config.ButtonGap),
		y: config.ButtonY,
		w: config.ButtonWidth,
		h: config.ButtonHeight,
	}
}
