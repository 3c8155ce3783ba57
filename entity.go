package engine2d

import "fmt"

// Entity is a handle to a slot in a World. The lower 32 bits hold the slot
// index and the upper 32 bits hold the slot generation at the time the handle
// was issued. Destroying an entity bumps the generation of its slot, so any
// handle still held for the old occupant stops resolving once the slot is
// reused.
type Entity uint64

func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index encoded in the handle.
func (e Entity) Index() uint32 { return uint32(e) }

// Generation returns the slot generation encoded in the handle.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

// String formats the handle as index:generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index(), e.Generation())
}
