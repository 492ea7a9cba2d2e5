package ecs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits, so a handle to a destroyed entity never aliases the
// entity that reuses its slot. Zero is never a live entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID           { return entityID(uint32(e)) }
func (e Entity) generation() generation { return generation(uint32(uint64(e) >> entityIDBits)) }

// String renders the entity as slot#generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}

// MarshalZerologObject lets log lines carry an entity as an object.
func (e Entity) MarshalZerologObject(evt *zerolog.Event) {
	evt.Uint32("slot", uint32(e.id())).Uint32("gen", uint32(e.generation()))
}
