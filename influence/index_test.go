package influence

import (
	"errors"
	"testing"

	"github.com/lixenwraith/unit-influence/core"
)

// TestIndex_Scenario walks the two-actor shared cell scenario
func TestIndex_Scenario(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	x, y := core.Actor(1), core.Actor(2)
	cell := pt(1, 1)

	if err := ix.Add(x, At(1, 1, TopLeft)); err != nil {
		t.Fatalf("Add X: %v", err)
	}
	assertUnits(t, ix, cell, x)
	if ix.AnyUnitsAtSub(cell, BottomRight) {
		t.Error("BottomRight should be free")
	}

	if err := ix.Add(y, At(1, 1, BottomRight)); err != nil {
		t.Fatalf("Add Y: %v", err)
	}
	assertUnits(t, ix, cell, x, y)

	if err := ix.Remove(x, At(1, 1, TopLeft)); err != nil {
		t.Fatalf("Remove X: %v", err)
	}
	assertUnits(t, ix, cell, y)
}

// TestIndex_AddMultiCellFootprint checks every placement becomes visible
func TestIndex_AddMultiCellFootprint(t *testing.T) {
	ix, _ := newTestIndex(8, 8)
	a := core.Actor(7)
	fp := Footprint{
		{Cell: pt(2, 2), SubCell: FullCell},
		{Cell: pt(3, 2), SubCell: FullCell},
		{Cell: pt(2, 3), SubCell: Center},
	}

	if err := ix.Add(a, fp); err != nil {
		t.Fatalf("Add: %v", err)
	}
	for _, pl := range fp {
		assertUnits(t, ix, pl.Cell, a)
		if !ix.AnyUnitsAtSub(pl.Cell, pl.SubCell) {
			t.Errorf("AnyUnitsAtSub(%v, %s) = false after Add", pl.Cell, pl.SubCell)
		}
	}
	if got := ix.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

// TestIndex_NilAndEmptyFootprint checks both are no-ops
func TestIndex_NilAndEmptyFootprint(t *testing.T) {
	ix, _ := newTestIndex(4, 4)

	if err := ix.Add(1, nil); err != nil {
		t.Errorf("Add(nil) = %v, want nil", err)
	}
	if err := ix.Add(1, Footprint{}); err != nil {
		t.Errorf("Add(empty) = %v, want nil", err)
	}
	if err := ix.Remove(1, nil); err != nil {
		t.Errorf("Remove(nil) = %v, want nil", err)
	}
	if err := ix.Update(1, nil); err != nil {
		t.Errorf("Update(nil) = %v, want nil", err)
	}
	if ix.Count() != 0 {
		t.Errorf("Count() = %d, want 0", ix.Count())
	}
}

// TestIndex_RemoveRestoresAndIsIdempotent checks Add/Remove/Remove
func TestIndex_RemoveRestoresAndIsIdempotent(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	other := core.Actor(9)
	a := core.Actor(3)
	fp := Footprint{{Cell: pt(0, 0), SubCell: TopRight}, {Cell: pt(1, 0), SubCell: FullCell}}

	if err := ix.Add(other, At(0, 0, Center)); err != nil {
		t.Fatal(err)
	}
	if err := ix.Add(a, fp); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := ix.Remove(a, fp); err != nil {
			t.Fatalf("Remove #%d: %v", i+1, err)
		}
		assertUnits(t, ix, pt(0, 0), other)
		assertUnits(t, ix, pt(1, 0))
		if ix.AnyUnitsAt(pt(1, 0)) {
			t.Errorf("Remove #%d left records at (1,0)", i+1)
		}
	}
}

// TestIndex_RemoveDuplicates checks duplicate Adds are all cleared
func TestIndex_RemoveDuplicates(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	a := core.Actor(5)

	for i := 0; i < 3; i++ {
		_ = ix.Add(a, At(2, 2, Center))
	}
	_ = ix.Add(6, At(2, 2, TopLeft))

	if err := ix.Remove(a, At(2, 2, Center)); err != nil {
		t.Fatal(err)
	}
	assertUnits(t, ix, pt(2, 2), 6)
	if ix.Count() != 1 {
		t.Errorf("Count() = %d, want 1", ix.Count())
	}
}

// TestIndex_RemoveAbsentActor is a silent no-op
func TestIndex_RemoveAbsentActor(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	_ = ix.Add(1, At(0, 0, Center))

	if err := ix.Remove(2, At(0, 0, Center)); err != nil {
		t.Errorf("Remove absent = %v, want nil", err)
	}
	assertUnits(t, ix, pt(0, 0), 1)
}

// TestIndex_OutOfBoundsMutation rejects the whole footprint
func TestIndex_OutOfBoundsMutation(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	fp := Footprint{{Cell: pt(0, 0), SubCell: FullCell}, {Cell: pt(4, 0), SubCell: FullCell}}

	err := ix.Add(1, fp)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Add = %v, want ErrOutOfBounds", err)
	}
	if !errors.Is(err, ErrPrecondition) {
		t.Errorf("ErrOutOfBounds should wrap ErrPrecondition")
	}
	if ix.AnyUnitsAt(pt(0, 0)) {
		t.Error("partial write at (0,0) after rejected Add")
	}

	_ = ix.Add(1, At(0, 0, FullCell))
	if err := ix.Remove(1, fp); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Remove = %v, want ErrOutOfBounds", err)
	}
	if !ix.AnyUnitsAt(pt(0, 0)) {
		t.Error("rejected Remove should not clear (0,0)")
	}
	if err := ix.Update(1, At(-1, 2, Center)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Update = %v, want ErrOutOfBounds", err)
	}
}

// TestIndex_InvalidInput checks null actors and undefined partitions
func TestIndex_InvalidInput(t *testing.T) {
	ix, _ := newTestIndex(4, 4)

	if err := ix.Add(0, At(1, 1, Center)); !errors.Is(err, ErrNullActor) {
		t.Errorf("Add(null) = %v, want ErrNullActor", err)
	}
	if err := ix.Add(1, At(1, 1, SubCell(42))); !errors.Is(err, ErrPrecondition) {
		t.Errorf("Add(bad subcell) = %v, want ErrPrecondition", err)
	}
	if ix.Count() != 0 {
		t.Errorf("Count() = %d, want 0", ix.Count())
	}
}

// TestIndex_UpdateLive re-adds a live actor
func TestIndex_UpdateLive(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	a := core.Actor(1)
	_ = ix.Add(a, At(1, 1, Center))

	if err := ix.Update(a, At(1, 1, Center)); err != nil {
		t.Fatal(err)
	}
	assertUnits(t, ix, pt(1, 1), a)
	if ix.Count() != 1 {
		t.Errorf("Update duplicated records, Count() = %d", ix.Count())
	}
}

// TestIndex_UpdateDead removes a dead actor and never re-adds it
func TestIndex_UpdateDead(t *testing.T) {
	ix, live := newTestIndex(4, 4)
	a := core.Actor(1)
	fp := Footprint{{Cell: pt(1, 1), SubCell: Center}, {Cell: pt(2, 1), SubCell: Center}}

	for _, prior := range []bool{true, false} {
		ix.Clear()
		if prior {
			_ = ix.Add(a, fp)
		}
		live.Kill(a)
		if err := ix.Update(a, fp); err != nil {
			t.Fatal(err)
		}
		for _, pl := range fp {
			if ix.AnyUnitsAt(pl.Cell) {
				t.Errorf("prior=%v: dead actor still indexed at %v", prior, pl.Cell)
			}
		}
	}
}

// TestIndex_LifecycleHooks checks the observer aliases
func TestIndex_LifecycleHooks(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	fp := At(3, 3, FullCell)

	if err := ix.ActorAdded(4, fp); err != nil {
		t.Fatal(err)
	}
	assertUnits(t, ix, pt(3, 3), 4)
	if err := ix.ActorRemoved(4, fp); err != nil {
		t.Fatal(err)
	}
	assertUnits(t, ix, pt(3, 3))
}

// TestIndex_NilLiveness treats every actor as alive
func TestIndex_NilLiveness(t *testing.T) {
	ix := NewIndex(testMap{2, 2}, nil)
	_ = ix.Add(1, At(0, 0, Center))
	assertUnits(t, ix, pt(0, 0), 1)

	if err := ix.Update(1, At(0, 0, Center)); err != nil {
		t.Fatal(err)
	}
	assertUnits(t, ix, pt(0, 0), 1)
}

// TestIndex_Clear keeps dimensions
func TestIndex_Clear(t *testing.T) {
	ix, _ := newTestIndex(5, 3)
	_ = ix.Add(1, At(4, 2, FullCell))
	_ = ix.Add(2, At(0, 0, Center))

	ix.Clear()

	if ix.Count() != 0 {
		t.Errorf("Count() = %d after Clear", ix.Count())
	}
	if w, h := ix.Size(); w != 5 || h != 3 {
		t.Errorf("Size() = %dx%d, want 5x3", w, h)
	}
	if err := ix.Add(3, At(4, 2, FullCell)); err != nil {
		t.Errorf("Add after Clear: %v", err)
	}
}

// TestIndex_FootprintReadOncePerMutation checks the provider is never re-queried
func TestIndex_FootprintReadOncePerMutation(t *testing.T) {
	ix, _ := newTestIndex(4, 4)
	occ := &countingFootprint{fp: Footprint{{Cell: pt(0, 0), SubCell: Center}, {Cell: pt(1, 0), SubCell: Center}}}

	_ = ix.Add(1, occ)
	_ = ix.Update(1, occ)
	_ = ix.Remove(1, occ)
	_ = ix.Reserve(1, occ)

	if occ.calls != 4 {
		t.Errorf("OccupiedCells called %d times for 4 mutations", occ.calls)
	}
}
