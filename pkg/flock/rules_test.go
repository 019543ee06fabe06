package flock

import (
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onlyRule returns the default config with every radius but one set to zero.
func onlyRule(rule string) Config {
	cfg := DefaultConfig()
	cfg.WorldSize = 1000
	cohesion, alignment, separation := cfg.CohesionRadius, cfg.AlignmentRadius, cfg.SeparationRadius
	cfg.CohesionRadius, cfg.AlignmentRadius, cfg.SeparationRadius = 0, 0, 0
	switch rule {
	case "cohesion":
		cfg.CohesionRadius = cohesion
	case "alignment":
		cfg.AlignmentRadius = alignment
	case "separation":
		cfg.SeparationRadius = separation
	}
	return cfg
}

func TestApplyRules_NoNeighbours(t *testing.T) {
	cfg := DefaultConfig()
	population := []Agent{
		{Position: geometry.Vector3D{X: -10}, Velocity: geometry.Vector3D{X: 0.3}},
		{Position: geometry.Vector3D{X: 10}, Velocity: geometry.Vector3D{Y: 0.3}},
	}

	ApplyRules(&cfg, 0, population)
	ApplyRules(&cfg, 1, population)

	assert.True(t, population[0].Acceleration.IsZero())
	assert.True(t, population[1].Acceleration.IsZero())

	// so the agent keeps flying straight at constant speed
	population[0].Update(cfg.MaxSpeed)
	assert.True(t, population[0].Position.Eq(geometry.Vector3D{X: -9.7}))
	assert.Equal(t, geometry.Vector3D{X: 0.3}, population[0].Velocity)
}

func TestApplyRules_SymmetricSeparation(t *testing.T) {
	cfg := onlyRule("separation")

	t.Run("at rest: opposite contributions", func(t *testing.T) {
		population := []Agent{
			{Position: geometry.Vector3D{X: -1}},
			{Position: geometry.Vector3D{X: 1}},
		}
		ApplyRules(&cfg, 0, population)
		ApplyRules(&cfg, 1, population)

		a0, a1 := population[0].Acceleration, population[1].Acceleration
		assert.Less(t, a0.X, 0.0, "agent 0 is pushed away from agent 1")
		assert.Greater(t, a1.X, 0.0, "agent 1 is pushed away from agent 0")
		assert.Equal(t, a0, a1.Neg())
		// desired speed 0.3 is capped at MaxForce then weighted
		assert.InDelta(t, cfg.MaxForce*cfg.SeparationForce, a1.Len(), eps)
	})

	t.Run("same velocity: equal magnitude, mirrored", func(t *testing.T) {
		v := geometry.Vector3D{Y: 0.05, Z: 0.02}
		population := []Agent{
			{Position: geometry.Vector3D{X: -0.5}, Velocity: v},
			{Position: geometry.Vector3D{X: 0.5}, Velocity: v},
		}
		ApplyRules(&cfg, 0, population)
		ApplyRules(&cfg, 1, population)

		a0, a1 := population[0].Acceleration, population[1].Acceleration
		assert.InDelta(t, a0.Len(), a1.Len(), eps)
		assert.InDelta(t, -a0.X, a1.X, eps)
		assert.InDelta(t, a0.Y, a1.Y, eps)
		assert.InDelta(t, a0.Z, a1.Z, eps)
		assert.Less(t, a0.X, 0.0)
	})
}

func TestApplyRules_CoLocatedAgents(t *testing.T) {
	cfg := onlyRule("separation")

	t.Run("identical state still excludes only self", func(t *testing.T) {
		v := geometry.Vector3D{X: 0.1}
		population := []Agent{
			{Position: geometry.Vector3D{X: 2, Y: 2, Z: 2}, Velocity: v},
			{Position: geometry.Vector3D{X: 2, Y: 2, Z: 2}, Velocity: v},
		}
		ApplyRules(&cfg, 0, population)

		// The zero difference is counted: the target is zero, no rescale, so the
		// steering is -velocity capped at MaxForce.
		want := geometry.Vector3D{X: -cfg.MaxForce * cfg.SeparationForce}
		assert.InDelta(t, want.X, population[0].Acceleration.X, eps)
		assert.Zero(t, population[0].Acceleration.Y)
		assert.Zero(t, population[0].Acceleration.Z)
	})

	t.Run("at rest gives exactly zero", func(t *testing.T) {
		population := []Agent{{}, {}}
		ApplyRules(&cfg, 1, population)
		assert.True(t, population[1].Acceleration.IsZero())
	})
}

func TestApplyRules_Cohesion(t *testing.T) {
	cfg := onlyRule("cohesion")
	population := []Agent{
		{Position: geometry.Vector3D{}},
		{Position: geometry.Vector3D{X: 3}},
		{Position: geometry.Vector3D{Y: 3}},
		{Position: geometry.Vector3D{X: 100}}, // out of range
	}
	ApplyRules(&cfg, 0, population)

	acc := population[0].Acceleration
	assert.Greater(t, acc.X, 0.0)
	assert.InDelta(t, acc.X, acc.Y, eps, "pulled toward (1.5, 1.5, 0)")
	assert.Zero(t, acc.Z)
	assert.InDelta(t, cfg.MaxForce*cfg.CohesionForce, acc.Len(), eps)
}

func TestApplyRules_Alignment(t *testing.T) {
	cfg := onlyRule("alignment")

	t.Run("matches the neighbours' heading", func(t *testing.T) {
		population := []Agent{
			{Velocity: geometry.Vector3D{X: 0.3}},
			{Position: geometry.Vector3D{X: 1}, Velocity: geometry.Vector3D{Y: 0.3}},
			{Position: geometry.Vector3D{X: -1}, Velocity: geometry.Vector3D{Y: 0.3}},
		}
		ApplyRules(&cfg, 0, population)
		acc := population[0].Acceleration
		assert.Less(t, acc.X, 0.0)
		assert.Greater(t, acc.Y, 0.0)
		assert.InDelta(t, cfg.MaxForce*cfg.AlignmentForce, acc.Len(), eps)
	})

	t.Run("already aligned gives nothing", func(t *testing.T) {
		v := geometry.Vector3D{Z: cfg.MaxSpeed}
		population := []Agent{
			{Velocity: v},
			{Position: geometry.Vector3D{X: 1}, Velocity: v},
		}
		ApplyRules(&cfg, 0, population)
		assert.InDelta(t, 0, population[0].Acceleration.Len(), eps)
	})

	t.Run("small delta is not rescaled up", func(t *testing.T) {
		population := []Agent{
			{Velocity: geometry.Vector3D{X: 0.29}},
			{Position: geometry.Vector3D{X: 1}, Velocity: geometry.Vector3D{X: 0.1}},
		}
		ApplyRules(&cfg, 0, population)
		// desired (0.3, 0, 0) - (0.29, 0, 0) = 0.01 < MaxForce
		assert.InDelta(t, 0.01*cfg.AlignmentForce, population[0].Acceleration.X, eps)
	})
}

func TestApplyRules_AddsToAcceleration(t *testing.T) {
	cfg := onlyRule("cohesion")
	population := []Agent{
		{Acceleration: geometry.Vector3D{Z: 1}},
		{Position: geometry.Vector3D{X: 1}},
	}
	ApplyRules(&cfg, 0, population)
	assert.Equal(t, 1.0, population[0].Acceleration.Z)
	assert.Greater(t, population[0].Acceleration.X, 0.0)
}

func TestApplyRules_StrictRadius(t *testing.T) {
	cfg := onlyRule("cohesion")
	population := []Agent{
		{},
		{Position: geometry.Vector3D{X: cfg.CohesionRadius}},
	}
	ApplyRules(&cfg, 0, population)
	assert.True(t, population[0].Acceleration.IsZero(), "a neighbour exactly at the radius is not sensed")
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name     string
		target   geometry.Vector3D
		velocity geometry.Vector3D
		want     geometry.Vector3D
	}{
		{"zero target, zero velocity", geometry.Vector3D{}, geometry.Vector3D{}, geometry.Vector3D{}},
		{"zero target brakes", geometry.Vector3D{}, geometry.Vector3D{X: 0.05}, geometry.Vector3D{X: -0.05 * 2}},
		{"capped at max force", geometry.Vector3D{Y: 10}, geometry.Vector3D{}, geometry.Vector3D{Y: 0.07 * 2}},
		{"target length ignored", geometry.Vector3D{X: 1000}, geometry.Vector3D{X: 0.25}, geometry.Vector3D{X: 0.05 * 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := steer(tt.target, tt.velocity, 0.3, 0.07, 2)
			assert.True(t, got.Eq(tt.want), "steer = %v; want %v", got, tt.want)
		})
	}
}

func TestSteering_IndependentOfCandidateSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumBoids = 300
	cfg.WorldSize = 20
	cfg.Seed = 99
	f, err := New(cfg)
	require.NoError(t, err)
	population := f.Agents(nil)

	for _, kind := range []IndexKind{IndexGrid, IndexRTree} {
		index, err := NewNeighborIndex(kind, &cfg)
		require.NoError(t, err)
		index.Rebuild(population)

		rng := rand.New(rand.NewPCG(5, 5))
		for range 50 {
			i := rng.IntN(len(population))
			all := applyRulesCopy(&cfg, i, population)
			candidates := index.Candidates(population[i].Position, cfg.MaxRadius(), nil)
			got := steering(&cfg, i, population, candidates)
			assert.Equal(t, all, got, "%s index changes agent %d steering", kind, i)
		}
	}
}

// applyRulesCopy runs ApplyRules on a copy and returns the acceleration it produced.
func applyRulesCopy(cfg *Config, self int, population []Agent) geometry.Vector3D {
	cp := append([]Agent(nil), population...)
	cp[self].Acceleration = geometry.Vector3D{}
	ApplyRules(cfg, self, cp)
	return cp[self].Acceleration
}
