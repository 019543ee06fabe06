package simulation

import (
	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

// AgentState is what a renderer needs to draw one boid.
type AgentState struct {
	Position geometry.Vector3D
	Velocity geometry.Vector3D
}

// Snapshot is a read-only copy of the world after a tick. Renderers only ever see
// snapshots, never the engine itself.
type Snapshot struct {
	RunID     uuid.UUID
	Tick      uint64
	WorldSize float64
	Paused    bool
	Agents    []AgentState
	Stats     flock.Stats
}

func newSnapshot(runID uuid.UUID, f *flock.Flock, agents []flock.Agent, paused bool) *Snapshot {
	s := &Snapshot{
		RunID:     runID,
		Tick:      f.Tick(),
		WorldSize: f.Config().WorldSize,
		Paused:    paused,
		Agents:    make([]AgentState, len(agents)),
		Stats:     flock.ComputeStats(agents),
	}
	s.Stats.Tick = s.Tick
	for i := range agents {
		s.Agents[i] = AgentState{Position: agents[i].Position, Velocity: agents[i].Velocity}
	}
	return s
}
