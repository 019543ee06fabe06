package flock

import "github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"

// ApplyRules adds the cohesion, alignment and separation steering of population[self]
// to its acceleration. Every other member of population is a potential neighbour;
// self is excluded by index, never by value.
func ApplyRules(cfg *Config, self int, population []Agent) {
	candidates := make([]int, len(population))
	for i := range candidates {
		candidates[i] = i
	}
	a := &population[self]
	a.Acceleration = a.Acceleration.Add(steering(cfg, self, population, candidates))
}

// steering sums the three weighted rule contributions for population[self].
// candidates must be a superset of the agents within cfg.MaxRadius(), in ascending
// index order so that the floating point sums do not depend on the search structure.
func steering(cfg *Config, self int, population []Agent, candidates []int) geometry.Vector3D {
	me := &population[self]

	var cohesion, alignment, separation geometry.Vector3D
	var cohesionCount, alignmentCount, separationCount int

	for _, j := range candidates {
		if j == self {
			continue
		}
		other := &population[j]
		diff := me.Position.Sub(other.Position)
		distance := diff.Len()

		if distance < cfg.CohesionRadius {
			cohesion = cohesion.Add(other.Position)
			cohesionCount++
		}

		if distance < cfg.AlignmentRadius {
			alignment = alignment.Add(other.Velocity)
			alignmentCount++
		}

		if distance < cfg.SeparationRadius {
			// co-located agents contribute the raw (zero) difference
			if distance > 0 {
				diff = diff.Div(distance)
			}
			separation = separation.Add(diff)
			separationCount++
		}
	}

	var acc geometry.Vector3D
	if cohesionCount > 0 {
		target := cohesion.Div(float64(cohesionCount)).Sub(me.Position)
		acc = acc.Add(steer(target, me.Velocity, cfg.MaxSpeed, cfg.MaxForce, cfg.CohesionForce))
	}
	if alignmentCount > 0 {
		target := alignment.Div(float64(alignmentCount))
		acc = acc.Add(steer(target, me.Velocity, cfg.MaxSpeed, cfg.MaxForce, cfg.AlignmentForce))
	}
	if separationCount > 0 {
		target := separation.Div(float64(separationCount))
		acc = acc.Add(steer(target, me.Velocity, cfg.MaxSpeed, cfg.MaxForce, cfg.SeparationForce))
	}
	return acc
}

// steer turns a desired direction into a bounded, weighted steering force:
// desired at full speed, minus the current velocity, capped at maxForce, times weight.
func steer(target, velocity geometry.Vector3D, maxSpeed, maxForce, weight float64) geometry.Vector3D {
	desired := target.WithLen(maxSpeed)
	delta := desired.Sub(velocity).ClampLen(maxForce)
	return delta.Mul(weight)
}
