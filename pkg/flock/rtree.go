package flock

import (
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// pointTolerance gives agents a tiny box: R-tree entries need a volume.
	pointTolerance = 1e-9
)

// rtreeEntry is one agent stored in the tree. pos must not change while the entry
// is inserted, otherwise Delete cannot find it again.
type rtreeEntry struct {
	index int
	pos   geometry.Vector3D
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.pos.X, e.pos.Y, e.pos.Z}.ToRect(pointTolerance)
}

// rtree answers neighbour queries with an R-tree over agent positions.
type rtree struct {
	tree    *rtreego.Rtree
	entries []*rtreeEntry
}

func newRTree() *rtree {
	return &rtree{tree: rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren)}
}

func (r *rtree) Rebuild(agents []Agent) {
	for len(r.entries) < len(agents) {
		r.entries = append(r.entries, &rtreeEntry{index: len(r.entries)})
	}
	r.entries = r.entries[:len(agents)]

	spatials := make([]rtreego.Spatial, len(agents))
	for i := range agents {
		r.entries[i].pos = agents[i].Position
		spatials[i] = r.entries[i]
	}
	r.tree = rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, spatials...)
}

func (r *rtree) Move(i int, _, to geometry.Vector3D) {
	e := r.entries[i]
	if e.pos == to {
		return
	}
	r.tree.Delete(e)
	e.pos = to
	r.tree.Insert(e)
}

func (r *rtree) Candidates(center geometry.Vector3D, radius float64, dst []int) []int {
	box := rtreego.Point{center.X, center.Y, center.Z}.ToRect(radius + pointTolerance)
	start := len(dst)
	for _, s := range r.tree.SearchIntersect(box) {
		dst = append(dst, s.(*rtreeEntry).index)
	}
	slices.Sort(dst[start:])
	return dst
}
