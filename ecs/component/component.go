// Package component declares the component types of the locomotion world and
// the typed handles used to store them.
package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrKindMismatch         = errors.New("ecs: component kind registered with another type")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// Kinded is any kind or handle that names a component store.
type Kinded interface {
	ID() ComponentID
}

// ComponentKind identifies one store of T. Two kinds of the same T are
// distinct stores.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is the Go type stored under k.
func (k ComponentKind[T]) Name() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// ComponentHandle is the package-level name for a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.kind.id
}
