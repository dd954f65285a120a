package engine

import (
	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/parameter"
)

// Map is the fixed-size rectangular grid the world lives on
type Map struct {
	width, height int
}

// NewMap creates a map, non-positive dimensions fall back to the defaults
func NewMap(width, height int) Map {
	if width <= 0 {
		width = parameter.DefaultGridWidth
	}
	if height <= 0 {
		height = parameter.DefaultGridHeight
	}
	return Map{width: width, height: height}
}

// Size returns the map dimensions
func (m Map) Size() (int, int) {
	return m.width, m.height
}

// Contains reports whether p lies inside the map
func (m Map) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}
