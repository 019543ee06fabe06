// Package ui holds the small immediate-mode widgets of the window renderer.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	setY(y float64)
}

type SliderWrapper struct{ *Slider }

func (s *SliderWrapper) GetHeight() float64 { return s.H + 25 } // bar + label
func (s *SliderWrapper) setY(y float64)     { s.Y = y }

type CheckboxWrapper struct{ *Checkbox }

func (c *CheckboxWrapper) GetHeight() float64 { return c.H + 20 }
func (c *CheckboxWrapper) setY(y float64)     { c.Y = y }

type ButtonWrapper struct{ *Button }

func (b *ButtonWrapper) GetHeight() float64 { return b.H + 10 }
func (b *ButtonWrapper) setY(y float64)     { b.Y = y }

// UIPanel stacks widgets under section headers in a scrollable box.
type UIPanel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	Widgets       []UIWidget
	Labels        []string // "" for widgets drawing their own label
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
}

// PanelSection groups the widgets in [StartIndex, EndIndex).
type PanelSection struct {
	Title      string
	StartIndex int
	EndIndex   int
}

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	scrollSpeed   = 20.0
)

// NewUIPanel creates a new UI panel
func NewUIPanel(title string, x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	slider := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	return slider
}

func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, 0, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, 0, p.Width-20, 24, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	p.layout()
}

// Contains reports whether a screen point is over the panel, so callers can keep
// the mouse wheel and drags for themselves elsewhere.
func (p *UIPanel) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= p.X && fx <= p.X+p.Width && fy >= p.Y && fy <= p.Y+p.Height
}

// Update scrolls when hovered and forwards input to the widgets.
func (p *UIPanel) Update() {
	if p.Contains(ebiten.CursorPosition()) {
		if _, dy := ebiten.Wheel(); dy != 0 {
			p.ScrollOffset -= dy * scrollSpeed
			maxScroll := max(p.totalHeight()-p.Height+40, 0)
			p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
			p.layout()
		}
	}
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

// layout places every widget for the current scroll offset. Widgets keep that
// position for both hit testing and drawing.
func (p *UIPanel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	idx := 0
	for _, section := range p.sections {
		for ; idx < section.StartIndex; idx++ {
			p.Widgets[idx].setY(y + 15)
			y += p.Widgets[idx].GetHeight()
		}
		y += sectionHeight
		for ; idx < section.EndIndex && idx < len(p.Widgets); idx++ {
			p.Widgets[idx].setY(y + 15)
			y += p.Widgets[idx].GetHeight()
		}
	}
	for ; idx < len(p.Widgets); idx++ {
		p.Widgets[idx].setY(y + 15)
		y += p.Widgets[idx].GetHeight()
	}
}

func (p *UIPanel) visible(y float64) bool {
	return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-10
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, section := range p.sections {
		if p.visible(y) {
			vector.FillRect(screen,
				float32(p.X+5), float32(y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(y+3))
		}
		y += sectionHeight
		for idx := section.StartIndex; idx < section.EndIndex && idx < len(p.Widgets); idx++ {
			p.drawWidget(screen, idx, y)
			y += p.Widgets[idx].GetHeight()
		}
	}
}

func (p *UIPanel) drawWidget(screen *ebiten.Image, idx int, y float64) {
	if !p.visible(y) {
		return
	}
	if label := p.Labels[idx]; label != "" {
		ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y))
	}
	p.Widgets[idx].Draw(screen)
}

func (p *UIPanel) totalHeight() float64 {
	height := titleHeight + float64(len(p.sections))*sectionHeight
	for _, widget := range p.Widgets {
		height += widget.GetHeight()
	}
	return height
}
