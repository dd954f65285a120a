package influence

import "github.com/lixenwraith/unit-influence/core"

// Placement is one (cell, partition) pair of an actor footprint
type Placement struct {
	Cell    core.Point
	SubCell SubCell
}

// OccupySpace is implemented by anything with a spatial presence
// OccupiedCells is called once per mutation and never cached
type OccupySpace interface {
	OccupiedCells() []Placement
}

// Footprint is a plain list of placements satisfying OccupySpace
type Footprint []Placement

// OccupiedCells returns the footprint itself
func (f Footprint) OccupiedCells() []Placement {
	return f
}

// At returns a single-placement footprint
func At(x, y int, sub SubCell) Footprint {
	return Footprint{{Cell: core.Point{X: x, Y: y}, SubCell: sub}}
}

// Bounds is the map collaborator that defines the grid
type Bounds interface {
	Size() (width, height int)
	Contains(p core.Point) bool
}

// Liveness reports whether an actor is logically destroyed
// Destroyed actors may still be indexed until their next removal
type Liveness interface {
	IsDestroyed(a core.Actor) bool
}
