package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// Identifier is satisfied by every ComponentKind regardless of its payload type,
// so queries can mix kinds of different component types.
type Identifier interface {
	ID() ComponentID
}

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind identifies one component type. Every call to NewComponentKind
// yields a distinct kind, even for the same T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	return ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// String is the payload type and id, for errors and logs.
func (k ComponentKind[T]) String() string {
	return fmt.Sprintf("%s(%d)", k.name, k.id)
}

// ComponentHandle is how systems name a component: declared once per type as
// a package variable, then passed to ecs.Add, ecs.Get and friends.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
