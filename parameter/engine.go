package parameter

// Spatial Grid Defaults
const (
	// DefaultGridWidth is the grid width used when no map size is configured
	DefaultGridWidth = 64

	// DefaultGridHeight is the grid height used when no map size is configured
	DefaultGridHeight = 32

	// CellCapacityHint is the initial record capacity reserved per cell on first insert
	// Five partitions plus one full-cell occupant covers the common case without regrowth
	CellCapacityHint = 6
)

// Actor Table
const (
	// InitialActorCapacity is the pre-allocated slot count of the world actor table
	InitialActorCapacity = 256
)
