package core

// Actor is a generational handle into an actor table owned elsewhere
// Low 32 bits hold the slot index, high 32 bits the slot generation
// The zero value is never issued and means "no actor"
type Actor uint64

// NewActor packs a slot index and generation into a handle
func NewActor(index, generation uint32) Actor {
	return Actor(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index of the handle
func (a Actor) Index() uint32 {
	return uint32(a)
}

// Generation returns the slot generation the handle was issued with
func (a Actor) Generation() uint32 {
	return uint32(a >> 32)
}

// IsZero reports whether the handle is the null actor
func (a Actor) IsZero() bool {
	return a == 0
}
