package ecs

import (
	"time"

	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
)

// World owns entities, their components, the simulation clock, the event
// bus, and the scheduled-event queue. It is driven from a single goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store

	clock  Clock
	bus    *EventBus
	timers *Timers
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		bus:    NewEventBus(),
		timers: NewTimers(),
	}
}

// Clock returns the world's simulation clock.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}

// Bus returns the world's event bus.
func (w *World) Bus() *EventBus {
	if w == nil {
		return nil
	}
	return w.bus
}

// Timers returns the world's scheduled-event queue.
func (w *World) Timers() *Timers {
	if w == nil {
		return nil
	}
	return w.timers
}

// Step advances the clock by dt and runs the scheduler once. Events
// published during the step are dispatched after every system has run.
func (w *World) Step(s *Scheduler, dt time.Duration) {
	if w == nil {
		return
	}
	w.clock.Advance(dt)
	if s != nil {
		s.Update(w)
	}
	w.bus.Dispatch()
}

func storeFor[T any](w *World, id component.ComponentID, create bool) *sparseSet[T] {
	if st, ok := w.stores[id]; ok {
		set, _ := st.(*sparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := &sparseSet[T]{}
	w.stores[id] = set
	return set
}
