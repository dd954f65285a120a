package influence

import (
	"slices"
	"sync"
	"testing"

	"github.com/lixenwraith/unit-influence/core"
)

// testMap is a rectangular map bounds collaborator
type testMap struct {
	w, h int
}

func (m testMap) Size() (int, int) { return m.w, m.h }

func (m testMap) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < m.w && p.Y >= 0 && p.Y < m.h
}

// testLiveness marks actors destroyed without touching the index
type testLiveness struct {
	mu   sync.Mutex
	dead map[core.Actor]bool
}

func newTestLiveness() *testLiveness {
	return &testLiveness{dead: make(map[core.Actor]bool)}
}

func (l *testLiveness) Kill(a core.Actor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dead[a] = true
}

func (l *testLiveness) IsDestroyed(a core.Actor) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dead[a]
}

func newTestIndex(w, h int) (*Index, *testLiveness) {
	live := newTestLiveness()
	return NewIndex(testMap{w, h}, live), live
}

func pt(x, y int) core.Point {
	return core.Point{X: x, Y: y}
}

// assertUnits compares actors at p as a set
func assertUnits(t *testing.T, ix *Index, p core.Point, want ...core.Actor) {
	t.Helper()
	got := ix.UnitsAt(p)
	slices.Sort(got)
	want = slices.Clone(want)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("UnitsAt(%v) = %v, want %v", p, got, want)
	}
}

// countingFootprint records how often the index asks for the footprint
type countingFootprint struct {
	fp    Footprint
	calls int
}

func (c *countingFootprint) OccupiedCells() []Placement {
	c.calls++
	return c.fp
}
