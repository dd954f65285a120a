package influence

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/unit-influence/core"
)

// Index tracks which actors occupy every cell of a fixed grid and in which partition
// The whole grid is guarded by a single RWMutex so multi-cell footprints are applied
// all-or-nothing with respect to readers
//
// Add does not check for conflicts: movement logic must confirm a free partition
// through HasFreeSubCell/FreeSubCell first, or use Reserve which checks and inserts
// under one lock
type Index struct {
	mu     sync.RWMutex
	grid   *Grid
	bounds Bounds
	live   Liveness
}

// NewIndex creates an empty index sized to the map
// A nil Liveness treats every actor as alive
func NewIndex(bounds Bounds, live Liveness) *Index {
	w, h := bounds.Size()
	return &Index{
		grid:   NewGrid(w, h),
		bounds: bounds,
		live:   live,
	}
}

// Size returns the grid dimensions
func (ix *Index) Size() (width, height int) {
	return ix.grid.Width, ix.grid.Height
}

// contains consults the map predicate and the grid, both must agree before indexing
func (ix *Index) contains(p core.Point) bool {
	return ix.bounds.Contains(p) && ix.grid.inBounds(p)
}

func (ix *Index) destroyed(a core.Actor) bool {
	return ix.live != nil && ix.live.IsDestroyed(a)
}

// placements pulls the footprint once and validates every cell before any write
func (ix *Index) placements(a core.Actor, occ OccupySpace) ([]Placement, error) {
	if occ == nil {
		return nil, nil
	}
	cells := occ.OccupiedCells()
	if len(cells) == 0 {
		return nil, nil
	}
	if a.IsZero() {
		return nil, ErrNullActor
	}
	for _, pl := range cells {
		if !ix.contains(pl.Cell) {
			return nil, fmt.Errorf("%w: (%d,%d) for actor %d", ErrOutOfBounds, pl.Cell.X, pl.Cell.Y, a)
		}
		if !pl.SubCell.Valid() {
			return nil, fmt.Errorf("%w: invalid %s at (%d,%d) for actor %d", ErrPrecondition, pl.SubCell, pl.Cell.X, pl.Cell.Y, a)
		}
	}
	return cells, nil
}

// Add inserts one record per placement of the actor footprint
// Nil or empty footprint is a no-op
func (ix *Index) Add(a core.Actor, occ OccupySpace) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cells, err := ix.placements(a, occ)
	if err != nil {
		return err
	}
	ix.addUnsafe(a, cells)
	return nil
}

// Remove deletes every record of the actor in each footprint cell
// Removing an actor that is not present is a no-op
func (ix *Index) Remove(a core.Actor, occ OccupySpace) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cells, err := ix.placements(a, occ)
	if err != nil {
		return err
	}
	ix.removeUnsafe(a, cells)
	return nil
}

// Update removes the actor from its footprint cells, then re-adds it with the same
// footprint unless it is destroyed. Callers wanting to vacate old cells after a shape
// change must Remove with the old footprint first; the index keeps no history
func (ix *Index) Update(a core.Actor, occ OccupySpace) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cells, err := ix.placements(a, occ)
	if err != nil {
		return err
	}
	ix.removeUnsafe(a, cells)
	if !ix.destroyed(a) {
		ix.addUnsafe(a, cells)
	}
	return nil
}

// ActorAdded is the world lifecycle hook for an actor entering the world
func (ix *Index) ActorAdded(a core.Actor, occ OccupySpace) error {
	return ix.Add(a, occ)
}

// ActorRemoved is the world lifecycle hook for an actor leaving the world
func (ix *Index) ActorRemoved(a core.Actor, occ OccupySpace) error {
	return ix.Remove(a, occ)
}

// Clear removes every record, dimensions are kept
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.grid.clear()
}

// Count returns the number of records held, dead actors included
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.grid.count()
}

// --- Unsafe operation ---

// addUnsafe inserts validated placements, caller MUST hold Lock()
func (ix *Index) addUnsafe(a core.Actor, cells []Placement) {
	for _, pl := range cells {
		ix.grid.cell(pl.Cell).insert(a, pl.SubCell)
	}
}

// removeUnsafe clears validated placements, caller MUST hold Lock()
func (ix *Index) removeUnsafe(a core.Actor, cells []Placement) {
	for _, pl := range cells {
		ix.grid.cell(pl.Cell).removeActor(a)
	}
}
