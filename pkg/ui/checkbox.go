package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const checkboxSize = 16

// Checkbox toggles a boolean; OnChange, when set, sees every new value.
type Checkbox struct {
	rect
	Label    string
	Value    bool
	OnChange func(bool)
	press    latch
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		rect:  rect{X: x, Y: y, W: checkboxSize, H: checkboxSize},
		Label: label,
		Value: value,
	}
}

// Toggle flips the value as a click would.
func (c *Checkbox) Toggle() {
	c.Value = !c.Value
	if c.OnChange != nil {
		c.OnChange(c.Value)
	}
}

func (c *Checkbox) Update() {
	if c.press.fire(c.hovered()) {
		c.Toggle()
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), 2, colorBorder, true)
	if c.Value {
		vector.FillRect(screen, float32(c.X+2), float32(c.Y+2), float32(c.W-4), float32(c.H-4), colorChecked, true)
	}
}
