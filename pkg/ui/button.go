package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per press.
type Button struct {
	rect
	Label   string
	OnClick func()
	press   latch
}

func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		rect:    rect{X: x, Y: y, W: width, H: height},
		Label:   label,
		OnClick: onClick,
	}
}

func (b *Button) Update() {
	if b.press.fire(b.hovered()) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := colorButton
	if b.hovered() {
		bg = colorButtonHover
	}
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	vector.FillRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, 2, colorBorder, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+8), int(b.Y+b.H/2-8))
}
