package simulation

import (
	"cmp"
	"context"
	"fmt"
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/camera"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/scene"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/ui"
)

const (
	maxBatchFaces = 65535 / 3 // uint16 indices
	panelWidth    = 220.0
)

var (
	backgroundColor = color.RGBA{R: 26, G: 26, B: 51, A: 255}  // (0.1, 0.1, 0.2)
	gridColor       = color.RGBA{R: 77, G: 77, B: 102, A: 255} // (0.3, 0.3, 0.4)
	lightDirection  = geometry.Vector3D{X: 0.3, Y: 1, Z: 0.5}  // world space
	boidColor       = [3]float32{1, 1, 1}                      // white, scaled by shading
)

type shadedFace struct {
	pts   [3]geometry.Vector2D
	depth float64
	shade float32
}

// Game is the ebiten window: it paces the world, orbits the camera and draws
// the latest snapshot.
type Game struct {
	ctx       context.Context
	session   *Session
	cfg       *Config
	camera    *camera.Orbit
	lastState *Snapshot
	grid      []scene.Segment

	// UI Controls
	panel               *ui.UIPanel
	widgetShowGrid      *ui.Checkbox
	widgetPaused        *ui.Checkbox
	widgetTicksPerFrame *ui.Slider
	widgetBoidSize      *ui.Slider

	// Mouse drag state
	dragging               bool
	lastMouseX, lastMouseY int

	// per-frame buffers
	faces      []shadedFace
	vertices   []ebiten.Vertex
	indices    []uint16
	whiteImage *ebiten.Image

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// GetNewGame wires a window onto a booted session.
func GetNewGame(ctx context.Context, session *Session) *Game {
	cfg := session.Config()
	g := &Game{
		ctx:       ctx,
		session:   session,
		cfg:       cfg,
		camera:    camera.NewOrbit(cfg.ScreenWidth, cfg.ScreenHeight, cfg.WorldSize),
		lastState: &Snapshot{WorldSize: cfg.WorldSize}, // Avoid nil pointer
		grid:      scene.GridLines(cfg.WorldSize, cfg.GridStep),
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	g.whiteImage = white

	panel := ui.NewUIPanel("Boids 3D", 10, 10, panelWidth, 300)
	panel.AddSection("Simulation")
	g.widgetPaused = panel.AddCheckbox("Paused", false)
	g.widgetPaused.OnChange = func(paused bool) {
		_ = g.session.SetPaused(g.ctx, paused)
	}
	g.widgetTicksPerFrame = panel.AddSlider("Ticks per frame", 1, 10, 1)
	g.widgetTicksPerFrame.Step = 1
	g.widgetTicksPerFrame.Set(1)
	panel.EndSection()

	panel.AddSection("View")
	g.widgetShowGrid = panel.AddCheckbox("Show Grid", true)
	g.widgetBoidSize = panel.AddSlider("Boid Size", 0.05, 1, cfg.BoidSize)
	panel.AddButton("Reset Camera", g.camera.Reset)
	panel.EndSection()
	g.panel = panel

	return g
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.camera.Reset()
	}

	// 1. Update UI Panel
	g.panel.Update()

	// 2. Camera: drag and wheel belong to the panel while the cursor is over it
	g.updateCamera()

	// 3. Keep only the most recent snapshot
	for drained := false; !drained; {
		select {
		case snap := <-g.session.Snapshots():
			g.lastState = snap
		default:
			drained = true
		}
	}

	// 4. Trigger Simulation Step
	if !g.widgetPaused.Value {
		if err := g.session.Tick(g.ctx, uint32(g.widgetTicksPerFrame.Value)); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
	}
	return nil
}

func (g *Game) updateCamera() {
	mx, my := ebiten.CursorPosition()
	overPanel := g.panel.Contains(mx, my)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.dragging:
			g.camera.Drag(float64(mx-g.lastMouseX), float64(my-g.lastMouseY))
		case !overPanel:
			g.dragging = true
		}
	} else {
		g.dragging = false
	}
	g.lastMouseX, g.lastMouseY = mx, my

	if !overPanel {
		if _, dy := ebiten.Wheel(); dy != 0 {
			g.camera.Scroll(dy)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	projector := g.camera.Projector()

	// 1. Reference grid
	if g.widgetShowGrid.Value {
		for _, seg := range g.grid {
			a, _, okA := projector.Project(seg.A)
			b, _, okB := projector.Project(seg.B)
			if okA && okB {
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, gridColor, true)
			}
		}
	}

	// 2. Boids, back to front
	g.collectFaces(projector)
	g.drawFaces(screen)

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	// 4. HUD
	s := g.lastState.Stats
	status := ""
	if g.lastState.Paused {
		status = "  [PAUSED]"
	}
	hud := fmt.Sprintf("Tick: %d%s\nBoids: %d\nMean speed: %.3f\nPolarization: %.2f\nSpread: %.2f",
		g.lastState.Tick, status, s.Population, s.MeanSpeed, s.Polarization, s.MeanDistance)
	ebitenutil.DebugPrintAt(screen, hud, 10, g.cfg.ScreenHeight-90)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg,
		g.updateAvg+g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.ScreenWidth-150, 10)
}

func (g *Game) collectFaces(projector camera.Projector) {
	g.faces = g.faces[:0]
	size := g.widgetBoidSize.Value
	for _, a := range g.lastState.Agents {
		mesh := scene.BoidMesh(a.Position, a.Velocity, size)
	faces:
		for _, face := range mesh.Faces() {
			var sf shadedFace
			for k, vtx := range face {
				p, depth, ok := projector.Project(vtx)
				if !ok {
					continue faces
				}
				sf.pts[k] = p
				sf.depth += depth / 3
			}
			sf.shade = float32(scene.Shade(face, lightDirection))
			g.faces = append(g.faces, sf)
		}
	}
	slices.SortFunc(g.faces, func(a, b shadedFace) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

func (g *Game) drawFaces(screen *ebiten.Image) {
	for start := 0; start < len(g.faces); start += maxBatchFaces {
		batch := g.faces[start:min(start+maxBatchFaces, len(g.faces))]
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
		for i, f := range batch {
			for _, p := range f.pts {
				g.vertices = append(g.vertices, ebiten.Vertex{
					DstX: float32(p.X), DstY: float32(p.Y),
					SrcX: 1, SrcY: 1,
					ColorR: boidColor[0] * f.shade,
					ColorG: boidColor[1] * f.shade,
					ColorB: boidColor[2] * f.shade,
					ColorA: 1,
				})
			}
			base := uint16(3 * i)
			g.indices = append(g.indices, base, base+1, base+2)
		}
		screen.DrawTriangles(g.vertices, g.indices, g.whiteImage, &ebiten.DrawTrianglesOptions{})
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.ScreenWidth, g.cfg.ScreenHeight }
