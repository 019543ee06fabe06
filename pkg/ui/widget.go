package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	colorBorder      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorTrack       = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	colorChecked     = color.RGBA{R: 100, G: 200, B: 100, A: 255}
	colorButton      = color.RGBA{R: 80, G: 120, B: 180, A: 255}
	colorButtonHover = color.RGBA{R: 100, G: 150, B: 220, A: 255}
)

// rect is a widget hit box in screen pixels.
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx <= r.X+r.W && fy >= r.Y && fy <= r.Y+r.H
}

func (r rect) hovered() bool {
	return r.contains(ebiten.CursorPosition())
}

// latch fires once per mouse press; holding the button does not repeat.
type latch struct {
	down bool
}

func (l *latch) fire(over bool) bool {
	held := over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	fired := held && !l.down
	l.down = held
	return fired
}
