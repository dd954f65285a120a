package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/engine"
	"github.com/lixenwraith/unit-influence/influence"
	"github.com/lixenwraith/unit-influence/parameter"
)

// Sandbox is the interactive state: a world, a cursor and an optional selected actor
type Sandbox struct {
	world    *engine.World
	cue      Cue
	cursor   core.Point
	selected core.Actor

	status   string
	statusAt time.Time
	now      func() time.Time
}

// NewSandbox creates a sandbox over the world with the cursor at the map center
func NewSandbox(w *engine.World, cue Cue) *Sandbox {
	width, height := w.Map.Size()
	return &Sandbox{
		world:  w,
		cue:    cue,
		cursor: core.Point{X: width / 2, Y: height / 2},
		now:    time.Now,
	}
}

// HandleKey applies one key press, returns false when the sandbox should quit
func (s *Sandbox) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		s.selected = 0
	case tcell.KeyUp:
		s.step(0, -1)
	case tcell.KeyDown:
		s.step(0, 1)
	case tcell.KeyLeft:
		s.step(-1, 0)
	case tcell.KeyRight:
		s.step(1, 0)
	case tcell.KeyRune:
		return s.handleRune(r)
	}
	return true
}

func (s *Sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'i':
		s.spawnInfantry()
	case 'v':
		s.spawnVehicle()
	case ' ':
		s.selectAtCursor()
	case 'k':
		s.kill()
	case 'x':
		s.removeDead()
	case 'c':
		s.world.Clear()
		s.selected = 0
		s.setStatus("world cleared")
	}
	return true
}

// step moves the selected actor when there is one, otherwise only the cursor
func (s *Sandbox) step(dx, dy int) {
	next := s.cursor.Add(dx, dy)

	if s.selected != 0 {
		if s.world.IsDestroyed(s.selected) {
			s.selected = 0
		} else {
			if err := s.world.Move(s.selected, dx, dy); err != nil {
				s.reject(err)
				return
			}
			log.Printf("moved actor %d by (%d,%d)", s.selected, dx, dy)
		}
	}

	if s.world.Map.Contains(next) {
		s.cursor = next
	}
}

// spawnInfantry takes the first free partition of the cursor cell, Center preferred
func (s *Sandbox) spawnInfantry() {
	if !s.world.Influence.HasFreeSubCell(s.cursor) {
		s.reject(fmt.Errorf("(%d,%d): %w", s.cursor.X, s.cursor.Y, influence.ErrNoFreeSlot))
		return
	}
	sub, err := s.world.Influence.FreeSubCell(s.cursor, influence.Center)
	if err != nil {
		s.reject(err)
		return
	}
	a, err := s.world.Place(influence.At(s.cursor.X, s.cursor.Y, sub))
	if err != nil {
		s.reject(err)
		return
	}
	log.Printf("spawned infantry %d at (%d,%d) %s", a, s.cursor.X, s.cursor.Y, sub)
	s.setStatus(fmt.Sprintf("infantry %d %s", a, sub))
}

func (s *Sandbox) spawnVehicle() {
	a, err := s.world.Place(influence.At(s.cursor.X, s.cursor.Y, influence.FullCell))
	if err != nil {
		s.reject(err)
		return
	}
	log.Printf("spawned vehicle %d at (%d,%d)", a, s.cursor.X, s.cursor.Y)
	s.setStatus(fmt.Sprintf("vehicle %d", a))
}

func (s *Sandbox) selectAtCursor() {
	units := s.world.Influence.UnitsAt(s.cursor)
	if len(units) == 0 {
		s.selected = 0
		s.setStatus("nothing here")
		return
	}
	s.selected = units[0]
	s.setStatus(fmt.Sprintf("selected %d", s.selected))
}

// kill marks the selected actor, or the first live one at the cursor, destroyed
func (s *Sandbox) kill() {
	target := s.selected
	if target == 0 {
		units := s.world.Influence.UnitsAt(s.cursor)
		if len(units) == 0 {
			s.setStatus("nothing to kill")
			return
		}
		target = units[0]
	}
	if err := s.world.Kill(target); err != nil {
		s.reject(err)
		return
	}
	if target == s.selected {
		s.selected = 0
	}
	log.Printf("killed actor %d", target)
	s.setStatus(fmt.Sprintf("killed %d (still indexed)", target))
}

// removeDead removes destroyed actors indexed at the cursor from the world
func (s *Sandbox) removeDead() {
	n := 0
	for _, o := range s.world.Influence.OccupantsAt(s.cursor) {
		if !o.Destroyed {
			continue
		}
		err := s.world.Remove(o.Actor)
		if err != nil && !errors.Is(err, engine.ErrUnknownActor) {
			s.reject(err)
			return
		}
		n++
	}
	s.setStatus(fmt.Sprintf("removed %d dead", n))
}

func (s *Sandbox) reject(err error) {
	log.Printf("refused: %v", err)
	s.cue.Reject()
	s.setStatus(err.Error())
}

func (s *Sandbox) setStatus(msg string) {
	s.status = msg
	s.statusAt = s.now()
}

// Status returns the last message while it is fresh
func (s *Sandbox) Status() string {
	if s.status == "" || s.now().Sub(s.statusAt) > parameter.StatusMessageTTL {
		return ""
	}
	return s.status
}
