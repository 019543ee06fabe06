// Package tui renders the flock in a terminal: boids are projected with the same
// orbit camera as the window and drawn as characters, nearer ones brighter.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/camera"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/simulation"
)

// terminal cells are about twice as tall as wide
const cellAspect = 2

const rotateStep = 5.0 // degrees per arrow key press

var (
	edgeStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(77, 77, 102))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// View drives one terminal session.
type View struct {
	screen  tcell.Screen
	session *simulation.Session
	camera  *camera.Orbit
	last    *simulation.Snapshot
	paused  bool
}

func NewView(screen tcell.Screen, session *simulation.Session) *View {
	cfg := session.Config()
	w, h := screen.Size()
	return &View{
		screen:  screen,
		session: session,
		camera:  camera.NewOrbit(w, h*cellAspect, cfg.WorldSize),
		last:    &simulation.Snapshot{WorldSize: cfg.WorldSize},
	}
}

// Run ticks the world at the configured rate and redraws until the user quits or
// ctx is done. The screen must already be initialised; Run does not Fini it.
func (v *View) Run(ctx context.Context) error {
	tps := v.session.Config().TicksPerSecond
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil { // screen finalised
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			quit, err := v.handleInput(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if !v.paused {
				if err := v.session.Tick(ctx, 1); err != nil {
					return fmt.Errorf("tick: %w", err)
				}
			}
			v.drain()
			drawFrame(v.screen, v.camera, v.last)
		}
	}
}

func (v *View) drain() {
	for {
		select {
		case snap := <-v.session.Snapshots():
			v.last = snap
		default:
			return
		}
	}
}

// handleInput reports whether the user asked to quit.
func (v *View) handleInput(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if quit := applyKey(v.camera, ev); quit {
			return true, nil
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			v.paused = !v.paused
			if err := v.session.SetPaused(ctx, v.paused); err != nil {
				return false, fmt.Errorf("pause: %w", err)
			}
		}
	case *tcell.EventResize:
		w, h := v.screen.Size()
		v.camera.Width, v.camera.Height = w, h*cellAspect
		v.screen.Sync()
	}
	return false, nil
}

// applyKey moves the camera for arrows, +/- and r, and reports quit keys.
func applyKey(cam *camera.Orbit, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		cam.RotY -= rotateStep
	case tcell.KeyRight:
		cam.RotY += rotateStep
	case tcell.KeyUp:
		cam.RotX -= rotateStep
	case tcell.KeyDown:
		cam.RotX += rotateStep
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			cam.Scroll(1)
		case '-':
			cam.Scroll(-1)
		case 'r':
			cam.Reset()
		}
	}
	return false
}

// cubeEdges are the 12 edges of the world, as corner sign triples.
var cubeEdges = func() [][2]geometry.Vector3D {
	var edges [][2]geometry.Vector3D
	corner := func(i int) geometry.Vector3D {
		return geometry.Vector3D{X: float64(i&1)*2 - 1, Y: float64(i>>1&1)*2 - 1, Z: float64(i>>2&1)*2 - 1}
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]geometry.Vector3D{corner(i), corner(i | bit)})
			}
		}
	}
	return edges
}()

// glyphFor picks a character by distance: the near half of the cube is drawn bold.
func glyphFor(depth, zoom, worldSize float64) (rune, tcell.Style) {
	switch {
	case depth < zoom-worldSize/4:
		return '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case depth < zoom+worldSize/4:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	default:
		return '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// drawFrame paints one snapshot: cube edges, boids, then a status line.
func drawFrame(screen tcell.Screen, cam *camera.Orbit, snap *simulation.Snapshot) {
	screen.Clear()
	w, h := screen.Size()
	projector := cam.Projector()
	toCell := func(p geometry.Vector2D) (int, int) {
		return int(math.Floor(p.X)), int(math.Floor(p.Y / cellAspect))
	}

	half := snap.WorldSize / 2
	for _, e := range cubeEdges {
		a, _, okA := projector.Project(e[0].Mul(half))
		b, _, okB := projector.Project(e[1].Mul(half))
		if !okA || !okB {
			continue
		}
		x0, y0 := toCell(a)
		x1, y1 := toCell(b)
		drawLine(screen, x0, y0, x1, y1, w, h-1)
	}

	// far boids first so near ones win a shared cell
	depths := make([]float64, len(snap.Agents))
	cells := make([][2]int, len(snap.Agents))
	visible := make([]bool, len(snap.Agents))
	for i, a := range snap.Agents {
		p, depth, ok := projector.Project(a.Position)
		if !ok {
			continue
		}
		x, y := toCell(p)
		cells[i], depths[i], visible[i] = [2]int{x, y}, depth, x >= 0 && x < w && y >= 0 && y < h-1
	}
	for _, pass := range []int{2, 1, 0} {
		for i := range snap.Agents {
			if !visible[i] {
				continue
			}
			r, style := glyphFor(depths[i], cam.Zoom, snap.WorldSize)
			if glyphRank(r) != pass {
				continue
			}
			screen.SetContent(cells[i][0], cells[i][1], r, nil, style)
		}
	}

	status := fmt.Sprintf(" tick %d  boids %d  polarization %.2f ", snap.Tick, len(snap.Agents), snap.Stats.Polarization)
	if snap.Paused {
		status += " [PAUSED] "
	}
	status += " arrows rotate  +/- zoom  r reset  space pause  q quit"
	drawText(screen, 0, h-1, w, status, statusStyle)
	screen.Show()
}

func glyphRank(r rune) int {
	switch r {
	case '@':
		return 0
	case 'o':
		return 1
	default:
		return 2
	}
}

// drawLine rasterises a segment with Bresenham, clipped to w x h.
func drawLine(screen tcell.Screen, x0, y0, x1, y1, w, h int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < w && y0 >= 0 && y0 < h {
			screen.SetContent(x0, y0, '·', nil, edgeStyle)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawText(screen tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
