package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WorldActor owns the flock. Its mailbox is the only way in, so every tick runs
// to completion before the next message is looked at.
type WorldActor struct {
	cfg   *Config
	flock *flock.Flock
	runID uuid.UUID

	// Communication with the renderer
	snapshotCh chan<- *Snapshot
	paused     bool
	agents     []flock.Agent // reused copy buffer

	// --- Benchmark Stats ---
	tickCount    int
	droppedCount int
	lastLogTime  time.Time
}

// NewWorldActor creates the world. snapshotCh may be nil when nobody renders.
func NewWorldActor(snapshotCh chan<- *Snapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		runID:       uuid.New(),
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	f, err := flock.New(w.cfg.Config, flock.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("world %s: %w", w.runID, err)
	}
	w.flock = f
	logger.Infof("World %s created: seed %d", w.runID, f.Config().Seed)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World %s started with %d boids", w.runID, w.flock.Len())
		w.pushSnapshot()

	// Paced ticks from a renderer
	case *wrapperspb.UInt32Value:
		if !w.paused {
			w.step(int(msg.GetValue()))
		}
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	// Batch advance, paused or not
	case *wrapperspb.UInt64Value:
		w.step(int(msg.GetValue()))
		w.logBenchmarks(ctx)
		ctx.Response(StatsToProto(w.flock.Stats(), w.runID.String()))

	case *wrapperspb.BoolValue:
		if w.paused != msg.GetValue() {
			w.paused = msg.GetValue()
			ctx.Logger().Infof("World %s paused=%t at tick %d", w.runID, w.paused, w.flock.Tick())
		}
		w.pushSnapshot()

	case *emptypb.Empty:
		ctx.Response(StatsToProto(w.flock.Stats(), w.runID.String()))

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) step(n int) {
	w.flock.Run(n)
	w.tickCount += n
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("📊 TICK RATE: %d/sec | Dropped frames: %d | Tick: %d",
			w.tickCount, w.droppedCount, w.flock.Tick())
		w.tickCount = 0
		w.droppedCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	w.agents = w.flock.Agents(w.agents[:0])
	select {
	case w.snapshotCh <- newSnapshot(w.runID, w.flock, w.agents, w.paused):
	default:
		// renderer busy, skip frame
		w.droppedCount++
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	if w.flock != nil {
		ctx.ActorSystem().Logger().Infof("World %s is shutdown at tick %d", w.runID, w.flock.Tick())
	}
	return nil
}
