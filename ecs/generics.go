package ecs

import "github.com/milk9111/locomotion/ecs/component"

// Add stores value under kind for e, replacing any previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	s, err := storeFor(w, kind, true)
	if err != nil {
		return err
	}
	s.set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return false
	}
	return s.has(e)
}

// Get returns the stored pointer, so callers mutate components in place.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return nil, false
	}
	return s.get(e)
}

// ForEach visits every entity with kind. The entity list is copied first so
// fn may add or remove components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return
	}
	for _, e := range append([]Entity(nil), s.dense...) {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb, err := storeFor(w, kb, false)
	if err != nil || sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := sb.get(e); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc, err := storeFor(w, kc, false)
	if err != nil || sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e); ok {
			fn(e, a, b, c)
		}
	})
}

// Query returns the entities that have every listed kind, smallest store
// first.
func Query(w *World, kinds ...component.Kinded) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	smallest := 0
	for i, s := range stores {
		if len(s.entities()) < len(stores[smallest].entities()) {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range stores[smallest].entities() {
		all := true
		for i, s := range stores {
			if i != smallest && !s.has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}
