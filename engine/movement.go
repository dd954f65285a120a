package engine

import (
	"fmt"

	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/influence"
)

// Move shifts the actor footprint by (dx, dy), the movement policy over the index:
// the actor vacates its cells, each partition placement takes the free partition
// closest to its current one, and the new footprint is reserved atomically.
// On refusal the old footprint is restored and the error wraps the index reason
func (w *World) Move(a core.Actor, dx, dy int) error {
	old, ok := w.Footprint(a)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownActor, a)
	}
	if w.IsDestroyed(a) {
		return fmt.Errorf("%w: %d", ErrDestroyed, a)
	}

	next := make(influence.Footprint, len(old))
	for i, pl := range old {
		next[i] = influence.Placement{Cell: pl.Cell.Add(dx, dy), SubCell: pl.SubCell}
		if !w.Map.Contains(next[i].Cell) {
			return fmt.Errorf("move: %w: (%d,%d)", influence.ErrOutOfBounds, next[i].Cell.X, next[i].Cell.Y)
		}
	}

	if err := w.Influence.Remove(a, old); err != nil {
		return fmt.Errorf("move: %w", err)
	}

	if err := w.choosePartitions(next); err != nil {
		w.restore(a, old)
		return fmt.Errorf("move: %w", err)
	}
	if err := w.Influence.Reserve(a, next); err != nil {
		w.restore(a, old)
		return fmt.Errorf("move: %w", err)
	}

	w.setFootprint(a, next)
	return nil
}

// CanEnter reports whether an actor of the given partition could enter p
// Full-cell actors need an empty cell, partition actors a free partition
func (w *World) CanEnter(p core.Point, sub influence.SubCell) bool {
	if sub == influence.FullCell {
		return w.Map.Contains(p) && !w.Influence.AnyUnitsAt(p)
	}
	return w.Influence.HasFreeSubCell(p)
}

// choosePartitions rewrites partition placements to a free partition of their target cell
func (w *World) choosePartitions(fp influence.Footprint) error {
	for i := range fp {
		if fp[i].SubCell == influence.FullCell {
			continue
		}
		if !w.Influence.HasFreeSubCell(fp[i].Cell) {
			return fmt.Errorf("%w: (%d,%d)", influence.ErrNoFreeSlot, fp[i].Cell.X, fp[i].Cell.Y)
		}
		sub, err := w.Influence.FreeSubCell(fp[i].Cell, fp[i].SubCell)
		if err != nil {
			return err
		}
		fp[i].SubCell = sub
	}
	return nil
}

func (w *World) restore(a core.Actor, old influence.Footprint) {
	if err := w.Influence.Add(a, old); err != nil {
		panic(fmt.Sprintf("world: restoring actor %d footprint: %v", a, err))
	}
}
