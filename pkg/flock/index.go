package flock

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// NeighborIndex narrows the pairwise scan. Implementations only prune: the rules still
// test the exact distance of every candidate, so any index yields the same neighbour sets
// as the brute force scan.
type NeighborIndex interface {
	// Rebuild indexes the whole population.
	Rebuild(agents []Agent)
	// Move tells the index that agent i went from one position to another.
	Move(i int, from, to geometry.Vector3D)
	// Candidates appends to dst, in ascending order, the indices of every agent that may
	// lie strictly within radius of center.
	Candidates(center geometry.Vector3D, radius float64, dst []int) []int
}

// NewNeighborIndex builds the index selected by kind.
func NewNeighborIndex(kind IndexKind, cfg *Config) (NeighborIndex, error) {
	switch kind {
	case IndexBruteForce, "":
		return &bruteForce{}, nil
	case IndexGrid:
		return newGrid(cfg.MaxRadius()), nil
	case IndexRTree:
		return newRTree(), nil
	default:
		return nil, fmt.Errorf("unknown neighbor index %q", kind)
	}
}

// bruteForce returns everybody: the O(n²) reference scan.
type bruteForce struct {
	n int
}

func (b *bruteForce) Rebuild(agents []Agent) {
	b.n = len(agents)
}

func (b *bruteForce) Move(int, geometry.Vector3D, geometry.Vector3D) {}

func (b *bruteForce) Candidates(_ geometry.Vector3D, _ float64, dst []int) []int {
	for i := 0; i < b.n; i++ {
		dst = append(dst, i)
	}
	return dst
}
