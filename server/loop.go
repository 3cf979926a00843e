package server

import (
	"context"
	"log"
	"time"

	"github.com/bevatsal1122/agentverse-sub000/sim"
)

type LoopConfig struct {
	Tick time.Duration
	// BroadcastEvery publishes a snapshot every n ticks.
	BroadcastEvery int
	Logger         *log.Logger
}

// Loop drives the simulation at a fixed cadence on a single goroutine.
// Queued commands and tasks run between ticks, never during one.
type Loop struct {
	sim      *sim.Simulation
	commands *sim.CommandBuffer
	hub      *Hub
	cfg      LoopConfig
	logger   *log.Logger
	tasks    chan func(*sim.Simulation)
	ticks    uint64
}

func NewLoop(s *sim.Simulation, commands *sim.CommandBuffer, hub *Hub, cfg LoopConfig) *Loop {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 50 * time.Millisecond
	}
	if cfg.BroadcastEvery <= 0 {
		cfg.BroadcastEvery = 1
	}
	return &Loop{
		sim:      s,
		commands: commands,
		hub:      hub,
		cfg:      cfg,
		logger:   logger,
		tasks:    make(chan func(*sim.Simulation), 16),
	}
}

// Do schedules fn to run on the loop goroutine before the next tick.
// It reports false if too many tasks are already waiting.
func (l *Loop) Do(fn func(*sim.Simulation)) bool {
	select {
	case l.tasks <- fn:
		return true
	default:
		return false
	}
}

// Step runs pending tasks and commands, advances the simulation by dt,
// and broadcasts on the configured cadence.
func (l *Loop) Step(dt time.Duration) {
	for pending := true; pending; {
		select {
		case fn := <-l.tasks:
			fn(l.sim)
		default:
			pending = false
		}
	}
	l.sim.ApplyAll(l.commands.Drain())
	l.sim.Tick(dt)

	l.ticks++
	if l.ticks%uint64(l.cfg.BroadcastEvery) == 0 {
		if err := l.hub.Publish(l.sim.Snapshot()); err != nil {
			l.logger.Printf("server: publish snapshot: %v", err)
		}
	}
}

// Run steps the simulation until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Step(now.Sub(last))
			last = now
		}
	}
}
