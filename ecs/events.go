package ecs

import "sync"

// EventKind names a category of world event.
type EventKind string

// Event is a world event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Handler receives dispatched events.
type Handler func(Event)

type subscription struct {
	id      uint64
	kind    EventKind
	handler Handler
}

// EventBus queues events during a step and delivers them to subscribers
// when Dispatch runs. Subscribing with an empty kind receives everything.
// Subscribe and unsubscribe may be called from any goroutine; Publish and
// Dispatch belong to the simulation goroutine.
type EventBus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID uint64
	queue  EventQueue
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers handler for kind and returns the function that
// removes it. Calling the returned function more than once is harmless.
func (b *EventBus) Subscribe(kind EventKind, handler Handler) (unsubscribe func()) {
	if b == nil || handler == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *EventBus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *EventBus) Subscribers() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish queues evt for the next Dispatch.
func (b *EventBus) Publish(evt Event) {
	if b == nil {
		return
	}
	b.queue.Push(evt)
}

// Dispatch delivers every queued event in publish order. Events published
// by handlers are held for the following Dispatch.
func (b *EventBus) Dispatch() int {
	if b == nil {
		return 0
	}
	events := b.queue.Drain()
	if len(events) == 0 {
		return 0
	}
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	for _, evt := range events {
		for _, s := range subs {
			if s.kind == "" || s.kind == evt.Kind {
				s.handler(evt)
			}
		}
	}
	return len(events)
}
