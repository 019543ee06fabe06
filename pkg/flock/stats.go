package flock

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// Stats summarises the shape and motion of a population.
type Stats struct {
	Tick       uint64
	Population int

	Centroid geometry.Vector3D
	// MeanDistance is the mean distance from each agent to the centroid.
	MeanDistance float64
	MeanSpeed    float64
	// Polarization is |Σ v̂| / n: 1 when everybody heads the same way, near 0 when headings are random.
	Polarization float64
}

// ComputeStats measures agents. Tick is left for the caller to fill.
func ComputeStats(agents []Agent) Stats {
	s := Stats{Population: len(agents)}
	if len(agents) == 0 {
		return s
	}
	n := float64(len(agents))

	var heading geometry.Vector3D
	for i := range agents {
		s.Centroid = s.Centroid.Add(agents[i].Position)
		s.MeanSpeed += agents[i].Speed()
		heading = heading.Add(agents[i].Velocity.Normalize())
	}
	s.Centroid = s.Centroid.Div(n)
	s.MeanSpeed /= n
	s.Polarization = heading.Len() / n

	for i := range agents {
		s.MeanDistance += agents[i].Position.DistanceTo(s.Centroid)
	}
	s.MeanDistance /= n
	return s
}
