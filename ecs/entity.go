package ecs

import "fmt"

// Entity is a generational handle: the low 32 bits hold the slot index and the
// high 32 bits the generation. A destroyed slot bumps its generation, so stale
// handles never alias a recycled entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Index returns the slot index of the handle.
func (e Entity) Index() uint32 {
	return uint32(e.id())
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.id(), e.generation())
}

// Valid reports whether the handle was ever issued. Slot 0 is reserved.
func (e Entity) Valid() bool {
	return e.id() > 0
}
