package ecs

import (
	"fmt"

	"github.com/milk9111/locomotion/ecs/component"
)

// World owns entities, their component stores and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops all of its components. It reports false
// for an entity that was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], error) {
	if !kind.Valid() {
		return nil, component.ErrInvalidComponentKind
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, nil
		}
		s := newSparseSet[T]()
		w.stores[kind.ID()] = s
		return s, nil
	}
	s, ok := raw.(*sparseSet[T])
	if !ok {
		return nil, fmt.Errorf("%w: %s", component.ErrKindMismatch, kind.Name())
	}
	return s, nil
}
