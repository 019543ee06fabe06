package flock

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// minCellSize keeps the grid usable when every radius is zero.
const minCellSize = 1.0

type gridKey struct {
	x, y, z int
}

// grid is a uniform spatial hash: cubic cells whose edge is the largest sensing radius,
// so a query only visits the cells overlapping its bounding box.
type grid struct {
	cellSize float64
	cells    map[gridKey][]int
}

func newGrid(maxRadius float64) *grid {
	return &grid{
		cellSize: math.Max(maxRadius, minCellSize),
		cells:    make(map[gridKey][]int),
	}
}

// cellOf floors rather than truncates: the world is centred on the origin.
func (g *grid) cellOf(p geometry.Vector3D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
		z: int(math.Floor(p.Z / g.cellSize)),
	}
}

func (g *grid) Rebuild(agents []Agent) {
	// Reset slices to length 0 but keep their capacity, so steady-state ticks
	// allocate almost nothing.
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i := range agents {
		key := g.cellOf(agents[i].Position)
		g.cells[key] = append(g.cells[key], i)
	}
}

func (g *grid) Move(i int, from, to geometry.Vector3D) {
	oldKey, newKey := g.cellOf(from), g.cellOf(to)
	if oldKey == newKey {
		return
	}
	members := g.cells[oldKey]
	if k := slices.Index(members, i); k >= 0 {
		g.cells[oldKey] = slices.Delete(members, k, k+1)
	}
	g.cells[newKey] = append(g.cells[newKey], i)
}

func (g *grid) Candidates(center geometry.Vector3D, radius float64, dst []int) []int {
	lo := g.cellOf(center.Sub(geometry.Vector3D{X: radius, Y: radius, Z: radius}))
	hi := g.cellOf(center.Add(geometry.Vector3D{X: radius, Y: radius, Z: radius}))

	start := len(dst)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for z := lo.z; z <= hi.z; z++ {
				if members, ok := g.cells[gridKey{x, y, z}]; ok {
					dst = append(dst, members...)
				}
			}
		}
	}
	slices.Sort(dst[start:])
	return dst
}
