package flock

import (
	"errors"
	"fmt"
)

// Ordering selects how a tick sequences rule evaluation and integration.
type Ordering string

const (
	// OrderingInterleaved runs apply/update/edges agent by agent in index order, so later
	// agents already see the moved state of earlier ones within the same tick.
	OrderingInterleaved Ordering = "interleaved"
	// OrderingSnapshot computes every acceleration from the state at the start of the
	// tick, then integrates every agent.
	OrderingSnapshot Ordering = "snapshot"
)

// IndexKind selects the neighbour search structure.
type IndexKind string

const (
	IndexBruteForce IndexKind = "brute"
	IndexGrid       IndexKind = "grid"
	IndexRTree      IndexKind = "rtree"
)

// Config holds every constant of the flocking model. It is fixed for the lifetime of a Flock.
type Config struct {
	// Population
	NumBoids int `json:"numBoids" toml:"numBoids"`

	// World is a cube of edge WorldSize centred on the origin
	WorldSize float64 `json:"worldSize" toml:"worldSize"`

	// Kinematic caps
	MaxSpeed float64 `json:"maxSpeed" toml:"maxSpeed"`
	MaxForce float64 `json:"maxForce" toml:"maxForce"`

	// Sensing ranges, each rule has its own
	CohesionRadius   float64 `json:"cohesionRadius" toml:"cohesionRadius"`
	AlignmentRadius  float64 `json:"alignmentRadius" toml:"alignmentRadius"`
	SeparationRadius float64 `json:"separationRadius" toml:"separationRadius"`

	// Rule weights
	CohesionForce   float64 `json:"cohesionForce" toml:"cohesionForce"`
	AlignmentForce  float64 `json:"alignmentForce" toml:"alignmentForce"`
	SeparationForce float64 `json:"separationForce" toml:"separationForce"`

	// Seed for the initial placement. 0 picks one from the clock.
	Seed int64 `json:"seed" toml:"seed"`

	Ordering      Ordering  `json:"ordering" toml:"ordering"`
	NeighborIndex IndexKind `json:"neighborIndex" toml:"neighborIndex"`
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		NumBoids:         100,
		WorldSize:        50,
		MaxSpeed:         0.3,
		MaxForce:         0.07,
		CohesionRadius:   6.0,
		AlignmentRadius:  4.0,
		SeparationRadius: 2.5,
		CohesionForce:    0.015,
		AlignmentForce:   0.075,
		SeparationForce:  0.075,
		Seed:             0,
		Ordering:         OrderingInterleaved,
		NeighborIndex:    IndexBruteForce,
	}
}

// HalfSize is the boundary coordinate on every axis.
func (c *Config) HalfSize() float64 {
	return c.WorldSize / 2
}

// MaxRadius is the largest of the three sensing ranges.
func (c *Config) MaxRadius() float64 {
	return max(c.CohesionRadius, c.AlignmentRadius, c.SeparationRadius)
}

// Validate reports every parameter that cannot drive a simulation.
func (c *Config) Validate() error {
	var errs []error
	if c.NumBoids < 0 {
		errs = append(errs, fmt.Errorf("numBoids must be >= 0, got %d", c.NumBoids))
	}
	if !(c.WorldSize > 0) {
		errs = append(errs, fmt.Errorf("worldSize must be > 0, got %v", c.WorldSize))
	}
	if !(c.MaxSpeed > 0) {
		errs = append(errs, fmt.Errorf("maxSpeed must be > 0, got %v", c.MaxSpeed))
	}
	if !(c.MaxForce >= 0) {
		errs = append(errs, fmt.Errorf("maxForce must be >= 0, got %v", c.MaxForce))
	}
	radii := []struct {
		name string
		r    float64
	}{
		{"cohesionRadius", c.CohesionRadius},
		{"alignmentRadius", c.AlignmentRadius},
		{"separationRadius", c.SeparationRadius},
	}
	for _, rr := range radii {
		if !(rr.r >= 0) {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", rr.name, rr.r))
		}
	}
	switch c.Ordering {
	case OrderingInterleaved, OrderingSnapshot:
	default:
		errs = append(errs, fmt.Errorf("unknown ordering %q", c.Ordering))
	}
	switch c.NeighborIndex {
	case IndexBruteForce, IndexGrid, IndexRTree:
	default:
		errs = append(errs, fmt.Errorf("unknown neighborIndex %q", c.NeighborIndex))
	}
	return errors.Join(errs...)
}
