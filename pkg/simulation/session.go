package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
)

const (
	snapshotBuffer = 10 // Buffer to avoid blocking the world
	askTimeout     = time.Minute
)

// Session is a running actor system hosting one world.
type Session struct {
	System    actor.ActorSystem
	worldPID  *actor.PID
	snapshots chan *Snapshot
	cfg       *Config
}

// Boot starts the actor system and spawns the world.
func Boot(ctx context.Context, cfg *Config, logger log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	system, err := actor.NewActorSystem("Boids3D",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	snapshots := make(chan *Snapshot, snapshotBuffer)
	pid, err := system.Spawn(ctx, "world", NewWorldActor(snapshots, cfg))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}
	return &Session{System: system, worldPID: pid, snapshots: snapshots, cfg: cfg}, nil
}

// Snapshots delivers the world after each paced tick. Frames are dropped when
// the reader falls behind.
func (s *Session) Snapshots() <-chan *Snapshot {
	return s.snapshots
}

func (s *Session) Config() *Config {
	return s.cfg
}

// Tick asks for n more ticks without waiting; ignored while paused.
func (s *Session) Tick(ctx context.Context, n uint32) error {
	return actor.Tell(ctx, s.worldPID, NewTick(n))
}

// Advance runs n ticks and waits for them.
func (s *Session) Advance(ctx context.Context, n uint64) (flock.Stats, error) {
	reply, err := actor.Ask(ctx, s.worldPID, NewAdvance(n), askTimeout)
	if err != nil {
		return flock.Stats{}, fmt.Errorf("advance %d ticks: %w", n, err)
	}
	return StatsFromProto(reply)
}

func (s *Session) SetPaused(ctx context.Context, paused bool) error {
	return actor.Tell(ctx, s.worldPID, NewPause(paused))
}

func (s *Session) Stats(ctx context.Context) (flock.Stats, error) {
	reply, err := actor.Ask(ctx, s.worldPID, NewStatsRequest(), askTimeout)
	if err != nil {
		return flock.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return StatsFromProto(reply)
}

func (s *Session) Stop(ctx context.Context) error {
	return s.System.Stop(ctx)
}
