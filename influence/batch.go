package influence

import (
	"fmt"

	"github.com/lixenwraith/unit-influence/core"
)

// Batch queues reservations and commits them atomically under the index lock
// Every placement is checked against current occupants and against earlier
// entries of the same batch; any conflict rejects the whole batch
type Batch struct {
	index     *Index
	entries   []reservation
	committed bool
}

type reservation struct {
	actor core.Actor
	cells []Placement
}

// BeginBatch starts a new reservation batch
func (ix *Index) BeginBatch() *Batch {
	return &Batch{
		index:   ix,
		entries: make([]reservation, 0, 4),
	}
}

// Reserve queues the actor footprint, the footprint is read now
func (b *Batch) Reserve(a core.Actor, occ OccupySpace) {
	var cells []Placement
	if occ != nil {
		cells = occ.OccupiedCells()
	}
	b.entries = append(b.entries, reservation{actor: a, cells: cells})
}

// Len returns the number of queued reservations
func (b *Batch) Len() int {
	return len(b.entries)
}

// Commit validates and applies all queued reservations, nothing is written on error
func (b *Batch) Commit() error {
	if b.committed {
		return ErrBatchCommitted
	}
	b.committed = true

	b.index.mu.Lock()
	defer b.index.mu.Unlock()

	return b.index.reserveUnsafe(b.entries)
}

// Reserve atomically inserts the actor footprint if every placement is free
// FullCell requires an empty cell, a partition requires neither that partition
// nor a full-cell occupant. Destroyed-but-indexed records still block until removed
func (ix *Index) Reserve(a core.Actor, occ OccupySpace) error {
	var cells []Placement
	if occ != nil {
		cells = occ.OccupiedCells()
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.reserveUnsafe([]reservation{{actor: a, cells: cells}})
}

// reserveUnsafe checks then applies, caller MUST hold Lock()
func (ix *Index) reserveUnsafe(entries []reservation) error {
	// First pass: bounds, existing occupants, earlier entries of this batch
	pending := make(map[int][]SubCell)
	for _, e := range entries {
		if len(e.cells) == 0 {
			continue
		}
		if e.actor.IsZero() {
			return ErrNullActor
		}
		for _, pl := range e.cells {
			if !ix.contains(pl.Cell) {
				return fmt.Errorf("%w: (%d,%d) for actor %d", ErrOutOfBounds, pl.Cell.X, pl.Cell.Y, e.actor)
			}
			if !pl.SubCell.Valid() {
				return fmt.Errorf("%w: invalid %s at (%d,%d) for actor %d", ErrPrecondition, pl.SubCell, pl.Cell.X, pl.Cell.Y, e.actor)
			}

			idx := ix.grid.index(pl.Cell)
			c := &ix.grid.Cells[idx]
			if conflicts(c, pending[idx], pl.SubCell) {
				return fmt.Errorf("%w: %s of (%d,%d) for actor %d", ErrOccupied, pl.SubCell, pl.Cell.X, pl.Cell.Y, e.actor)
			}
			pending[idx] = append(pending[idx], pl.SubCell)
		}
	}

	// Second pass: apply, no more checks needed
	for _, e := range entries {
		ix.addUnsafe(e.actor, e.cells)
	}
	return nil
}

// conflicts treats FullCell as exclusive in both directions
func conflicts(c *Cell, pending []SubCell, sub SubCell) bool {
	if sub == FullCell {
		return len(c.records) > 0 || len(pending) > 0
	}
	if c.blocks(sub) {
		return true
	}
	for _, p := range pending {
		if p == sub || p == FullCell {
			return true
		}
	}
	return false
}
