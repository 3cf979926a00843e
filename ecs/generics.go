package ecs

import (
	"github.com/bevatsal1122/agentverse-sub000/ecs/component"
)

// CreateEntity allocates a new live entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.remove(e.id())
	}
	w.timers.CancelEntity(e)
	return w.entities.destroy(e)
}

// IsAlive reports whether e is a live handle in w.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.handle(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

// Add attaches or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	storeFor[T](w, kind.ID(), true).set(e.id(), value)
	return nil
}

// Get returns the component of the given kind on e. The pointer is live:
// writes through it update the stored component.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	set := storeFor[T](w, kind.ID(), false)
	if set == nil {
		return nil, false
	}
	return set.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	set := storeFor[T](w, kind.ID(), false)
	if set == nil {
		return false
	}
	return set.remove(e.id())
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	var found Entity
	ok := false
	ForEach(w, kind, func(e Entity, _ *T) {
		if !ok {
			found, ok = e, true
		}
	})
	return found, ok
}

// ForEach calls fn for every live entity holding kind. The id list is
// captured up front, so fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	set := storeFor[T](w, kind.ID(), false)
	if set == nil {
		return
	}
	for _, id := range set.ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		v, ok := set.get(id)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 calls fn for entities holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 calls fn for entities holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}

// Count returns how many live entities hold kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	set := storeFor[T](w, kind.ID(), false)
	if set == nil {
		return 0
	}
	return set.len()
}
