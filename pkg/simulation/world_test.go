package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.NumBoids = 40
	cfg.Seed = 7
	return cfg
}

func bootSession(t *testing.T, cfg *Config) *Session {
	t.Helper()
	ctx := context.Background()
	s, err := Boot(ctx, cfg, log.DiscardLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(ctx) })
	return s
}

// waitForTick drains snapshots until one at tick or later shows up.
func waitForTick(t *testing.T, s *Session, tick uint64) *Snapshot {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case snap := <-s.Snapshots():
			if snap.Tick >= tick {
				return snap
			}
		case <-timeout:
			t.Fatalf("no snapshot for tick %d", tick)
			return nil
		}
	}
}

func TestSession_AdvanceMatchesEngine(t *testing.T) {
	cfg := testConfig()
	s := bootSession(t, cfg)

	got, err := s.Advance(context.Background(), 100)
	require.NoError(t, err)

	f, err := flock.New(cfg.Config)
	require.NoError(t, err)
	f.Run(100)
	assert.Equal(t, f.Stats(), got)
}

func TestSession_TickPublishesSnapshots(t *testing.T) {
	cfg := testConfig()
	s := bootSession(t, cfg)
	ctx := context.Background()

	first := waitForTick(t, s, 0)
	assert.Len(t, first.Agents, cfg.NumBoids)
	assert.Equal(t, cfg.WorldSize, first.WorldSize)

	require.NoError(t, s.Tick(ctx, 3))
	snap := waitForTick(t, s, 3)
	assert.Equal(t, uint64(3), snap.Tick)
	assert.Equal(t, first.RunID, snap.RunID)
	assert.Equal(t, snap.Tick, snap.Stats.Tick)
	assert.Equal(t, cfg.NumBoids, snap.Stats.Population)
	for _, a := range snap.Agents {
		assert.LessOrEqual(t, a.Velocity.Len(), cfg.MaxSpeed+1e-12)
	}
}

func TestSession_Pause(t *testing.T) {
	s := bootSession(t, testConfig())
	ctx := context.Background()

	require.NoError(t, s.SetPaused(ctx, true))
	require.NoError(t, s.Tick(ctx, 5))
	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.Tick, "paused worlds ignore paced ticks")

	// batch advances still run
	stats, err = s.Advance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.Tick)

	require.NoError(t, s.SetPaused(ctx, false))
	require.NoError(t, s.Tick(ctx, 5))
	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), stats.Tick)
}

func TestBoot_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.WorldSize = -1
	_, err := Boot(context.Background(), cfg, log.DiscardLogger)
	assert.ErrorContains(t, err, "worldSize")
}

func TestStatsProto(t *testing.T) {
	in := flock.Stats{
		Tick:         12,
		Population:   3,
		Centroid:     geometry.Vector3D{X: 1, Y: -2, Z: 0.5},
		MeanDistance: 4.25,
		MeanSpeed:    0.3,
		Polarization: 0.9,
	}
	msg := StatsToProto(in, "run")
	assert.Equal(t, "run", msg.GetFields()["runId"].GetStringValue())

	out, err := StatsFromProto(msg)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = StatsFromProto(NewStatsRequest())
	assert.Error(t, err)

	_, err = StatsFromProto(&structpb.Struct{Fields: map[string]*structpb.Value{}})
	assert.ErrorContains(t, err, "3 components")
}
