package ecs

import (
	"fmt"
	"reflect"

	"github.com/milk9111/fpsdemo/ecs/component"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// AddComponent stores value for e under kind, replacing any previous value.
func (w *World) AddComponent(e Entity, kind component.Identifier, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("%w: add %v to %s", component.ErrEntityNotAlive, kind, e)
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if isNil(value) {
		return fmt.Errorf("%w: %v on %s", component.ErrNilComponent, kind, e)
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// RemoveComponent deletes the kind from e.
func (w *World) RemoveComponent(e Entity, kind component.Identifier) bool {
	store := w.store(kind.ID(), false)
	if store == nil {
		return false
	}
	return store.Remove(e)
}

// HasComponent reports whether e carries kind.
func (w *World) HasComponent(e Entity, kind component.Identifier) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// GetComponent returns the raw value stored for e under kind.
func (w *World) GetComponent(e Entity, kind component.Identifier) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	store := w.store(kind.ID(), false)
	if store == nil || !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// isNil reports untyped and typed nil values.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
