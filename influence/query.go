package influence

import "github.com/lixenwraith/unit-influence/core"

// UnitsAt returns a COPY of the live actors at p, nil if out of bounds or empty
// Order is unspecified. Destroyed actors still indexed are skipped
func (ix *Index) UnitsAt(p core.Point) []core.Actor {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return nil
	}

	var out []core.Actor
	for _, r := range ix.grid.cell(p).records {
		if !ix.destroyed(r.actor) {
			out = append(out, r.actor)
		}
	}
	return out
}

// UnitsAtInto copies live actors at p into buf and returns the number copied
// Zero-alloc if buf is on stack
func (ix *Index) UnitsAtInto(p core.Point, buf []core.Actor) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return 0
	}

	n := 0
	for _, r := range ix.grid.cell(p).records {
		if n == len(buf) {
			break
		}
		if !ix.destroyed(r.actor) {
			buf[n] = r.actor
			n++
		}
	}
	return n
}

// AnyUnitsAt reports whether any record exists at p
// Coarser than UnitsAt: destroyed-but-indexed actors count
func (ix *Index) AnyUnitsAt(p core.Point) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return false
	}
	return len(ix.grid.cell(p).records) > 0
}

// AnyUnitsAtSub reports whether partition sub of p is taken
// A full-cell occupant takes every partition
func (ix *Index) AnyUnitsAtSub(p core.Point, sub SubCell) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return false
	}
	return ix.grid.cell(p).blocks(sub)
}

// HasFreeSubCell reports whether p is empty or has at least one free non-full partition
// Out of bounds cells have no room
func (ix *Index) HasFreeSubCell(p core.Point) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return false
	}

	c := ix.grid.cell(p)
	if len(c.records) == 0 {
		return true
	}
	for _, sub := range partitions {
		if !c.blocks(sub) {
			return true
		}
	}
	return false
}

// FreeSubCell returns the first partition of p with no record using it, trying
// preferred first and then the fixed partition order
//
// Only meant for callers that already know the cell can be entered: a FullCell
// preference is returned unconditionally, and a full-cell occupant (e.g. something
// crushable) does not hide free partitions here. Returns ErrNoFreeSlot otherwise
func (ix *Index) FreeSubCell(p core.Point, preferred SubCell) (SubCell, error) {
	if preferred == FullCell {
		return FullCell, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return FullCell, ErrNoFreeSlot
	}

	c := ix.grid.cell(p)
	if preferred.Valid() && !c.holds(preferred) {
		return preferred, nil
	}
	for _, sub := range partitions {
		if !c.holds(sub) {
			return sub, nil
		}
	}
	return FullCell, ErrNoFreeSlot
}

// Occupant is a read-only view of one record, for debugging and rendering
type Occupant struct {
	Actor     core.Actor
	SubCell   SubCell
	Destroyed bool
}

// OccupantsAt returns a COPY of every record at p, destroyed actors included and flagged
func (ix *Index) OccupantsAt(p core.Point) []Occupant {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.contains(p) {
		return nil
	}

	records := ix.grid.cell(p).records
	if len(records) == 0 {
		return nil
	}
	out := make([]Occupant, len(records))
	for i, r := range records {
		out[i] = Occupant{Actor: r.actor, SubCell: r.sub, Destroyed: ix.destroyed(r.actor)}
	}
	return out
}
