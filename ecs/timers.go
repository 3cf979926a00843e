package ecs

import (
	"container/heap"
	"time"
)

// TimerKind names what a scheduled event does when it fires.
type TimerKind string

// TimerID identifies a scheduled event for cancellation.
type TimerID uint64

// ScheduledEvent is a deferred action for one entity.
type ScheduledEvent struct {
	ID     TimerID
	At     time.Duration
	Entity Entity
	Kind   TimerKind
	Data   any

	seq   uint64
	index int
}

type timerHeap []*ScheduledEvent

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	ev := x.(*ScheduledEvent)
	ev.index = len(*h)
	*h = append(*h, ev)
}
func (h *timerHeap) Pop() any {
	old := *h
	last := len(old) - 1
	ev := old[last]
	old[last] = nil
	ev.index = -1
	*h = old[:last]
	return ev
}

// Timers is a min-heap of scheduled events ordered by fire time, then by
// scheduling order.
type Timers struct {
	heap timerHeap
	byID map[TimerID]*ScheduledEvent
	seq  uint64
}

func NewTimers() *Timers {
	return &Timers{byID: make(map[TimerID]*ScheduledEvent)}
}

// Schedule queues an event to fire at simulation time at.
func (t *Timers) Schedule(at time.Duration, e Entity, kind TimerKind, data any) TimerID {
	t.seq++
	ev := &ScheduledEvent{ID: TimerID(t.seq), At: at, Entity: e, Kind: kind, Data: data, seq: t.seq}
	heap.Push(&t.heap, ev)
	t.byID[ev.ID] = ev
	return ev.ID
}

// Cancel removes a pending event. It reports whether the event was pending.
func (t *Timers) Cancel(id TimerID) bool {
	ev, ok := t.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&t.heap, ev.index)
	delete(t.byID, id)
	return true
}

// CancelKind removes every pending event of kind for e.
func (t *Timers) CancelKind(e Entity, kind TimerKind) int {
	return t.cancelWhere(func(ev *ScheduledEvent) bool { return ev.Entity == e && ev.Kind == kind })
}

// CancelEntity removes every pending event for e.
func (t *Timers) CancelEntity(e Entity) int {
	return t.cancelWhere(func(ev *ScheduledEvent) bool { return ev.Entity == e })
}

func (t *Timers) cancelWhere(match func(*ScheduledEvent) bool) int {
	var ids []TimerID
	for _, ev := range t.heap {
		if match(ev) {
			ids = append(ids, ev.ID)
		}
	}
	for _, id := range ids {
		t.Cancel(id)
	}
	return len(ids)
}

// Pending reports whether e has an event of kind queued.
func (t *Timers) Pending(e Entity, kind TimerKind) bool {
	for _, ev := range t.heap {
		if ev.Entity == e && ev.Kind == kind {
			return true
		}
	}
	return false
}

// Len returns the number of pending events.
func (t *Timers) Len() int {
	return t.heap.Len()
}

// PopDue removes and returns every event due at or before now, earliest
// first.
func (t *Timers) PopDue(now time.Duration) []ScheduledEvent {
	var out []ScheduledEvent
	for t.heap.Len() > 0 && t.heap[0].At <= now {
		ev := heap.Pop(&t.heap).(*ScheduledEvent)
		delete(t.byID, ev.ID)
		out = append(out, *ev)
	}
	return out
}
