package influence

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is the root of all caller contract violations
	ErrPrecondition = errors.New("precondition violation")

	// ErrOutOfBounds is returned by mutating calls given a placement outside the grid
	ErrOutOfBounds = fmt.Errorf("%w: coordinate out of bounds", ErrPrecondition)

	// ErrNullActor is returned by mutating calls given the zero actor handle
	ErrNullActor = fmt.Errorf("%w: null actor", ErrPrecondition)

	// ErrNoFreeSlot is returned by FreeSubCell when every checked partition is taken
	ErrNoFreeSlot = errors.New("no free subcell")

	// ErrOccupied is returned by reservations that would overlap an existing occupant
	ErrOccupied = errors.New("placement occupied")

	// ErrBatchCommitted is returned when a batch is committed twice
	ErrBatchCommitted = errors.New("batch already committed")
)
