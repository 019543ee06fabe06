// Package flock implements a 3D boids model: agents steer by cohesion, alignment and
// separation against their neighbours and bounce off the walls of a cubic world.
//
// A Flock is not safe for concurrent use. In the application it is owned by a single
// actor whose mailbox serialises every tick.
package flock

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tochemey/goakt/v3/log"
)

// Flock owns a fixed population and advances it one tick at a time.
type Flock struct {
	cfg    Config
	agents []Agent
	index  NeighborIndex
	tick   uint64
	logger log.Logger

	// reused between ticks
	frozen     []Agent
	candidates []int
}

// Option configures a Flock at construction.
type Option func(*Flock)

// WithLogger sets the logger, log.DiscardLogger by default.
func WithLogger(logger log.Logger) Option {
	return func(f *Flock) {
		f.logger = logger
	}
}

// WithAgents starts from the given population instead of a random one.
// cfg.NumBoids is overwritten with len(agents).
func WithAgents(agents []Agent) Option {
	return func(f *Flock) {
		f.agents = append(make([]Agent, 0, len(agents)), agents...)
	}
}

// New validates cfg and builds a flock. Unless WithAgents is given, cfg.NumBoids agents
// are placed from cfg.Seed; a zero seed is replaced by one from the clock, readable back
// through Config().Seed.
func New(cfg Config, opts ...Option) (*Flock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flock config: %w", err)
	}

	f := &Flock{logger: log.DiscardLogger}
	for _, opt := range opts {
		opt(f)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if f.agents == nil {
		rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))
		f.agents = make([]Agent, cfg.NumBoids)
		for i := range f.agents {
			f.agents[i] = NewAgent(rng, cfg.WorldSize, cfg.MaxSpeed)
		}
	}
	cfg.NumBoids = len(f.agents)
	f.cfg = cfg

	index, err := NewNeighborIndex(cfg.NeighborIndex, &f.cfg)
	if err != nil {
		return nil, err
	}
	f.index = index

	f.logger.Infof("flock ready: %d boids, world %.1f, seed %d, ordering %s, index %s",
		cfg.NumBoids, cfg.WorldSize, cfg.Seed, cfg.Ordering, cfg.NeighborIndex)
	return f, nil
}

// Step advances the whole population by one tick, in index order.
func (f *Flock) Step() {
	f.index.Rebuild(f.agents)
	if f.cfg.Ordering == OrderingSnapshot {
		f.stepSnapshot()
	} else {
		f.stepInterleaved()
	}
	f.tick++
}

// stepInterleaved applies, integrates and bounces each agent before moving on to the
// next one, so agent i sees agents 0..i-1 already at their new state.
func (f *Flock) stepInterleaved() {
	radius := f.cfg.MaxRadius()
	for i := range f.agents {
		a := &f.agents[i]
		f.candidates = f.index.Candidates(a.Position, radius, f.candidates[:0])
		a.Acceleration = a.Acceleration.Add(steering(&f.cfg, i, f.agents, f.candidates))

		from := a.Position
		a.Update(f.cfg.MaxSpeed)
		a.Edges(f.cfg.WorldSize)
		f.index.Move(i, from, a.Position)
	}
}

// stepSnapshot computes every acceleration from the state at the start of the tick.
func (f *Flock) stepSnapshot() {
	f.frozen = append(f.frozen[:0], f.agents...)
	radius := f.cfg.MaxRadius()
	for i := range f.agents {
		f.candidates = f.index.Candidates(f.frozen[i].Position, radius, f.candidates[:0])
		f.agents[i].Acceleration = f.agents[i].Acceleration.Add(steering(&f.cfg, i, f.frozen, f.candidates))
	}
	for i := range f.agents {
		f.agents[i].Update(f.cfg.MaxSpeed)
		f.agents[i].Edges(f.cfg.WorldSize)
	}
}

// Run advances n ticks.
func (f *Flock) Run(n int) {
	for range n {
		f.Step()
	}
}

// Tick is the number of ticks run so far.
func (f *Flock) Tick() uint64 {
	return f.tick
}

// Len is the population size.
func (f *Flock) Len() int {
	return len(f.agents)
}

// Config returns the effective configuration, with the seed actually used.
func (f *Flock) Config() Config {
	return f.cfg
}

// Agent returns a copy of agent i.
func (f *Flock) Agent(i int) Agent {
	return f.agents[i]
}

// Agents appends a copy of the population to dst. Callers never get to mutate
// the engine's own slice.
func (f *Flock) Agents(dst []Agent) []Agent {
	return append(dst, f.agents...)
}

// Stats measures the current population.
func (f *Flock) Stats() Stats {
	s := ComputeStats(f.agents)
	s.Tick = f.tick
	return s
}
