package engine

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/influence"
	"github.com/lixenwraith/unit-influence/parameter"
)

var (
	// ErrUnknownActor is returned for handles that were never issued or whose slot was reused
	ErrUnknownActor = errors.New("unknown actor")

	// ErrDestroyed is returned when acting on a logically destroyed actor
	ErrDestroyed = errors.New("actor destroyed")
)

// LifecycleObserver receives explicit calls when actors enter or leave the world
type LifecycleObserver interface {
	ActorAdded(a core.Actor, occ influence.OccupySpace) error
	ActorRemoved(a core.Actor, occ influence.OccupySpace) error
}

// slot is one entry of the actor table
type slot struct {
	generation uint32
	inUse      bool
	destroyed  bool
	footprint  influence.Footprint
}

// World owns actor lifetime and liveness, the occupancy index holds handles only
// The table lock is never held while observers or the index run, since the index
// calls back into IsDestroyed
type World struct {
	mu        sync.RWMutex
	slots     []slot
	free      []uint32
	observers []LifecycleObserver
	live      int

	Map       Map
	Influence *influence.Index
}

// NewWorld creates an empty world over the map with its occupancy index registered
func NewWorld(m Map) *World {
	w := &World{
		slots: make([]slot, 0, parameter.InitialActorCapacity),
		Map:   m,
	}
	w.Influence = influence.NewIndex(m, w)
	w.Observe(w.Influence)
	return w
}

// Observe registers a lifecycle observer, called in registration order
func (w *World) Observe(o LifecycleObserver) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

// Spawn issues a handle for an actor with the given footprint and notifies observers
// No free-slot check is made; use Place for a checked entry
// If an observer rejects the actor, earlier observers are rolled back and the handle freed
func (w *World) Spawn(fp influence.Footprint) (core.Actor, error) {
	a, fp := w.allocate(fp)

	observers := w.observerSnapshot()
	for i, o := range observers {
		if err := o.ActorAdded(a, fp); err != nil {
			for _, prev := range observers[:i] {
				if rerr := prev.ActorRemoved(a, fp); rerr != nil {
					log.Printf("world: rollback of actor %d failed: %v", a, rerr)
				}
			}
			w.release(a)
			return 0, fmt.Errorf("spawn: %w", err)
		}
	}
	return a, nil
}

// Place spawns an actor only if every placement is free, checked and inserted atomically
// by the index; remaining observers are notified afterwards
func (w *World) Place(fp influence.Footprint) (core.Actor, error) {
	a, fp := w.allocate(fp)

	if err := w.Influence.Reserve(a, fp); err != nil {
		w.release(a)
		return 0, fmt.Errorf("place: %w", err)
	}

	for _, o := range w.observerSnapshot() {
		if o == LifecycleObserver(w.Influence) {
			continue
		}
		if err := o.ActorAdded(a, fp); err != nil {
			log.Printf("world: observer rejected placed actor %d: %v", a, err)
		}
	}
	return a, nil
}

// Kill marks the actor destroyed without removing it
// Its records stay in the index, hidden from UnitsAt, until Remove or Reshape
func (w *World) Kill(a core.Actor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slotLocked(a)
	if s == nil {
		return fmt.Errorf("%w: %d", ErrUnknownActor, a)
	}
	if !s.destroyed {
		s.destroyed = true
		w.live--
	}
	return nil
}

// Remove takes the actor out of the world, notifying observers, and invalidates its handle
// Observer failures are logged and the first one is returned; the actor is removed regardless
func (w *World) Remove(a core.Actor) error {
	fp, ok := w.Footprint(a)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownActor, a)
	}

	var first error
	for _, o := range w.observerSnapshot() {
		if err := o.ActorRemoved(a, fp); err != nil {
			log.Printf("world: observer failed removing actor %d: %v", a, err)
			if first == nil {
				first = err
			}
		}
	}

	w.release(a)
	return first
}

// RemoveDestroyed removes every destroyed actor and returns how many were removed
func (w *World) RemoveDestroyed() int {
	n := 0
	for _, a := range w.Actors() {
		if w.IsDestroyed(a) {
			if err := w.Remove(a); err == nil {
				n++
			}
		}
	}
	return n
}

// Reshape replaces the actor footprint: old cells are vacated, then the index is
// updated with the new footprint. A destroyed actor is vacated and not re-added
func (w *World) Reshape(a core.Actor, fp influence.Footprint) error {
	old, ok := w.Footprint(a)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownActor, a)
	}
	fp = slices.Clone(fp)

	if err := w.Influence.Remove(a, old); err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	if err := w.Influence.Update(a, fp); err != nil {
		// Restore the old cells so the index stays in sync with the table
		_ = w.Influence.Update(a, old)
		return fmt.Errorf("reshape: %w", err)
	}

	w.setFootprint(a, fp)
	return nil
}

// Clear removes every actor through the normal removal path
func (w *World) Clear() {
	for _, a := range w.Actors() {
		_ = w.Remove(a)
	}
}

// IsDestroyed implements influence.Liveness
// Stale and unissued handles count as destroyed
func (w *World) IsDestroyed(a core.Actor) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := w.slotLocked(a)
	return s == nil || s.destroyed
}

// Footprint returns a copy of the actor's current footprint
func (w *World) Footprint(a core.Actor) (influence.Footprint, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := w.slotLocked(a)
	if s == nil {
		return nil, false
	}
	return slices.Clone(s.footprint), true
}

// Actors returns every issued handle, destroyed-but-present actors included
func (w *World) Actors() []core.Actor {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]core.Actor, 0, len(w.slots)-len(w.free))
	for i := range w.slots {
		if w.slots[i].inUse {
			out = append(out, core.NewActor(uint32(i), w.slots[i].generation))
		}
	}
	return out
}

// LiveCount returns the number of actors present and not destroyed
func (w *World) LiveCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.live
}

// --- Table internals ---

// slotLocked resolves a handle, caller MUST hold mu
func (w *World) slotLocked(a core.Actor) *slot {
	idx := a.Index()
	if a.IsZero() || int(idx) >= len(w.slots) {
		return nil
	}
	s := &w.slots[idx]
	if !s.inUse || s.generation != a.Generation() {
		return nil
	}
	return s
}

func (w *World) allocate(fp influence.Footprint) (core.Actor, influence.Footprint) {
	fp = slices.Clone(fp)

	w.mu.Lock()
	defer w.mu.Unlock()

	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		// Generation starts at 1 so slot 0 never packs to the null actor
		w.slots = append(w.slots, slot{generation: 1})
	}

	s := &w.slots[idx]
	s.inUse = true
	s.destroyed = false
	s.footprint = fp
	w.live++
	return core.NewActor(idx, s.generation), fp
}

// release frees the slot and bumps its generation so old handles go stale
func (w *World) release(a core.Actor) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.slotLocked(a)
	if s == nil {
		return
	}
	if !s.destroyed {
		w.live--
	}
	s.inUse = false
	s.destroyed = false
	s.footprint = nil
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	w.free = append(w.free, a.Index())
}

func (w *World) setFootprint(a core.Actor, fp influence.Footprint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s := w.slotLocked(a); s != nil {
		s.footprint = fp
	}
}

func (w *World) observerSnapshot() []LifecycleObserver {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.observers)
}
