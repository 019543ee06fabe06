package flock

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// Agent is the kinematic state of one boid.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. https://en.wikipedia.org/wiki/Boids
// Fields are exported so renderers can read them from snapshots.
type Agent struct {
	Position geometry.Vector3D
	Velocity geometry.Vector3D

	// Acceleration only lives within a tick: zero before rules run, consumed by Update.
	Acceleration geometry.Vector3D
}

// NewAgent places an agent uniformly in the world cube, heading in a direction drawn
// uniformly on the unit sphere at full speed.
func NewAgent(rng *rand.Rand, worldSize, maxSpeed float64) Agent {
	half := worldSize / 2
	pos := geometry.Vector3D{
		X: -half + rng.Float64()*worldSize,
		Y: -half + rng.Float64()*worldSize,
		Z: -half + rng.Float64()*worldSize,
	}

	// cos(theta) uniform in [-1, 1] gives a uniform density over the sphere
	theta := math.Acos(2*rng.Float64() - 1)
	phi := 2 * math.Pi * rng.Float64()
	dir := geometry.NewVectorSpherical(theta, phi)

	return Agent{
		Position: pos,
		Velocity: dir.WithLen(maxSpeed),
	}
}

// Update integrates one tick: velocity += acceleration, capped at maxSpeed,
// position += velocity, then acceleration is cleared for the next tick.
func (a *Agent) Update(maxSpeed float64) {
	a.Velocity = a.Velocity.Add(a.Acceleration)
	if speed := a.Velocity.Len(); speed > maxSpeed {
		a.Velocity = a.Velocity.Div(speed).Mul(maxSpeed)
	}
	a.Position = a.Position.Add(a.Velocity)
	a.Acceleration = geometry.Vector3D{}
}

// Edges reflects the agent off the walls of the cube [-worldSize/2, worldSize/2]³.
// Each axis is handled on its own: the velocity component is turned back inward and the
// position clamped onto the wall.
func (a *Agent) Edges(worldSize float64) {
	half := worldSize / 2
	pos := [3]*float64{&a.Position.X, &a.Position.Y, &a.Position.Z}
	vel := [3]*float64{&a.Velocity.X, &a.Velocity.Y, &a.Velocity.Z}

	for axis := range pos {
		p, v := pos[axis], vel[axis]
		if math.Abs(*p) <= half {
			continue
		}
		if *p > half {
			*v = -math.Abs(*v)
		} else {
			*v = math.Abs(*v)
		}
		*p = math.Max(-half, math.Min(half, *p))
	}
}

// Speed is the magnitude of the velocity.
func (a *Agent) Speed() float64 {
	return a.Velocity.Len()
}
