package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/unit-influence/core"
	"github.com/lixenwraith/unit-influence/influence"
	"github.com/lixenwraith/unit-influence/parameter"
)

// glyphOffset is where each partition is drawn inside a cell block
var glyphOffset = map[influence.SubCell]core.Point{
	influence.TopLeft:     {X: 0, Y: 0},
	influence.Center:      {X: 1, Y: 0},
	influence.TopRight:    {X: 2, Y: 0},
	influence.BottomLeft:  {X: 0, Y: 1},
	influence.BottomRight: {X: 2, Y: 1},
}

const (
	glyphEmpty = '.'
	glyphFull  = '#'
	glyphUnit  = 'o'
	glyphDead  = 'x'
)

var (
	styleGrid     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleUnit     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleVehicle  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDead     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// viewport returns the first visible cell and the visible cell count, keeping the cursor in view
func viewport(cursor, gridLen, viewLen int) (start, n int) {
	if viewLen >= gridLen {
		return 0, gridLen
	}
	start = cursor - viewLen/2
	start = max(0, min(start, gridLen-viewLen))
	return start, viewLen
}

// Draw renders the occupancy grid and the status line
func (s *Sandbox) Draw(screen tcell.Screen) {
	screen.Clear()
	sw, sh := screen.Size()
	gw, gh := s.world.Map.Size()

	x0, nx := viewport(s.cursor.X, gw, sw/parameter.CellGlyphWidth)
	y0, ny := viewport(s.cursor.Y, gh, (sh-1)/parameter.CellGlyphHeight)

	for cy := 0; cy < ny; cy++ {
		for cx := 0; cx < nx; cx++ {
			cell := core.Point{X: x0 + cx, Y: y0 + cy}
			s.drawCell(screen, cell, cx*parameter.CellGlyphWidth, cy*parameter.CellGlyphHeight)
		}
	}

	if sh > 0 {
		drawText(screen, 0, sh-1, s.statusLine(), styleStatus)
	}
	screen.Show()
}

func (s *Sandbox) drawCell(screen tcell.Screen, cell core.Point, ox, oy int) {
	block := [parameter.CellGlyphHeight][parameter.CellGlyphWidth]rune{}
	styles := [parameter.CellGlyphHeight][parameter.CellGlyphWidth]tcell.Style{}
	for y := range block {
		for x := range block[y] {
			block[y][x] = glyphEmpty
			styles[y][x] = styleGrid
		}
	}
	block[1][1] = ' '

	for _, o := range s.world.Influence.OccupantsAt(cell) {
		style := styleUnit
		r := glyphUnit
		switch {
		case o.Destroyed:
			style, r = styleDead, glyphDead
		case o.Actor == s.selected:
			style = styleSelected
		case o.SubCell == influence.FullCell:
			style = styleVehicle
		}

		if o.SubCell == influence.FullCell {
			if !o.Destroyed {
				r = glyphFull
			}
			for y := range block {
				for x := range block[y] {
					block[y][x], styles[y][x] = r, style
				}
			}
			continue
		}
		off := glyphOffset[o.SubCell]
		block[off.Y][off.X], styles[off.Y][off.X] = r, style
	}

	for y := range block {
		for x := range block[y] {
			st := styles[y][x]
			if cell == s.cursor {
				st = st.Reverse(true)
			}
			screen.SetContent(ox+x, oy+y, block[y][x], nil, st)
		}
	}
}

func (s *Sandbox) statusLine() string {
	units := s.world.Influence.UnitsAt(s.cursor)
	line := fmt.Sprintf("(%d,%d) units=%v free=%v live=%d",
		s.cursor.X, s.cursor.Y, units,
		s.world.Influence.HasFreeSubCell(s.cursor),
		s.world.LiveCount())
	if s.selected != 0 {
		line += fmt.Sprintf(" sel=%d", s.selected)
	}
	if msg := s.Status(); msg != "" {
		line += " | " + msg
	}
	return line
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
