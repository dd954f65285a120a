package influence

import (
	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/parameter"
)

// record is the fact "actor occupies partition of this cell"
type record struct {
	actor core.Actor
	sub   SubCell
}

// Cell holds the unordered occupancy records of one grid cell
type Cell struct {
	records []record
}

// Grid is a dense 2D array of cells, index = y*Width + x
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid allocates an empty grid of the given dimensions
// Negative dimensions are clamped to zero
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

func (g *Grid) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) index(p core.Point) int {
	return p.Y*g.Width + p.X
}

// cell returns the cell at p, caller MUST have checked bounds
func (g *Grid) cell(p core.Point) *Cell {
	return &g.Cells[g.index(p)]
}

// insert appends a record, no conflict check
func (c *Cell) insert(a core.Actor, sub SubCell) {
	if c.records == nil {
		c.records = make([]record, 0, parameter.CellCapacityHint)
	}
	c.records = append(c.records, record{actor: a, sub: sub})
}

// removeActor deletes every record of a, tolerating duplicates
// Uses swap-remove, order is not preserved
func (c *Cell) removeActor(a core.Actor) int {
	removed := 0
	for i := len(c.records) - 1; i >= 0; i-- {
		if c.records[i].actor != a {
			continue
		}
		last := len(c.records) - 1
		c.records[i] = c.records[last]
		c.records[last] = record{}
		c.records = c.records[:last]
		removed++
	}
	return removed
}

// blocks reports whether a record occupies sub, a full-cell record blocks every partition
func (c *Cell) blocks(sub SubCell) bool {
	for _, r := range c.records {
		if r.sub == sub || r.sub == FullCell {
			return true
		}
	}
	return false
}

// holds reports whether a record uses exactly partition sub
func (c *Cell) holds(sub SubCell) bool {
	for _, r := range c.records {
		if r.sub == sub {
			return true
		}
	}
	return false
}

// clear drops all records of every cell, keeping allocated capacity
func (g *Grid) clear() {
	for i := range g.Cells {
		clear(g.Cells[i].records)
		g.Cells[i].records = g.Cells[i].records[:0]
	}
}

// count returns the total number of records
func (g *Grid) count() int {
	n := 0
	for i := range g.Cells {
		n += len(g.Cells[i].records)
	}
	return n
}
