package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/unit-influence/engine"
	"github.com/lixenwraith/unit-influence/influence"
	"github.com/lixenwraith/unit-influence/parameter"
)

// Actor kinds understood by the scenario loader
const (
	KindInfantry = "infantry"
	KindVehicle  = "vehicle"
)

// Scenario is the sandbox start-up state loaded from YAML
type Scenario struct {
	Grid   GridConfig    `yaml:"grid"`
	Actors []ActorConfig `yaml:"actors"`
}

// GridConfig is the map size
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ActorConfig is one actor placed at start-up
type ActorConfig struct {
	Kind    string `yaml:"kind"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	SubCell string `yaml:"subcell"` // infantry only, defaults to center
	Dead    bool   `yaml:"dead"`    // killed after placement, stays indexed
}

// DefaultScenario is an empty grid of the default size
func DefaultScenario() *Scenario {
	return &Scenario{
		Grid: GridConfig{
			Width:  parameter.DefaultGridWidth,
			Height: parameter.DefaultGridHeight,
		},
	}
}

// LoadScenario reads and validates a scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML, fills defaults for zero values and validates
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if sc.Grid.Width == 0 {
		sc.Grid.Width = parameter.DefaultGridWidth
	}
	if sc.Grid.Height == 0 {
		sc.Grid.Height = parameter.DefaultGridHeight
	}
	for i := range sc.Actors {
		if sc.Actors[i].Kind == "" {
			sc.Actors[i].Kind = KindInfantry
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks dimensions and actor kinds/partitions
// Placement conflicts are left to the index when the scenario is applied
func (sc *Scenario) Validate() error {
	if sc.Grid.Width <= 0 || sc.Grid.Height <= 0 {
		return fmt.Errorf("grid %dx%d: dimensions must be positive", sc.Grid.Width, sc.Grid.Height)
	}
	for i, a := range sc.Actors {
		if _, err := a.SubCellValue(); err != nil {
			return fmt.Errorf("actor %d: %w", i, err)
		}
	}
	return nil
}

// SubCellValue resolves the partition the actor occupies
func (a ActorConfig) SubCellValue() (influence.SubCell, error) {
	switch a.Kind {
	case KindVehicle:
		if a.SubCell != "" && a.SubCell != influence.FullCell.String() {
			return influence.FullCell, fmt.Errorf("vehicle cannot use subcell %q", a.SubCell)
		}
		return influence.FullCell, nil
	case KindInfantry:
		if a.SubCell == "" {
			return influence.Center, nil
		}
		sub, err := influence.ParseSubCell(a.SubCell)
		if err != nil {
			return influence.FullCell, err
		}
		if sub == influence.FullCell {
			return influence.FullCell, fmt.Errorf("infantry cannot use subcell %q", a.SubCell)
		}
		return sub, nil
	default:
		return influence.FullCell, fmt.Errorf("unknown kind %q", a.Kind)
	}
}

// Apply places every scenario actor through the checked entry path
// Returns the first refusal, actors placed before it remain
func (sc *Scenario) Apply(w *engine.World) error {
	for i, ac := range sc.Actors {
		sub, err := ac.SubCellValue()
		if err != nil {
			return fmt.Errorf("actor %d: %w", i, err)
		}
		a, err := w.Place(influence.At(ac.X, ac.Y, sub))
		if err != nil {
			return fmt.Errorf("actor %d at (%d,%d): %w", i, ac.X, ac.Y, err)
		}
		if ac.Dead {
			if err := w.Kill(a); err != nil {
				return fmt.Errorf("actor %d: %w", i, err)
			}
		}
	}
	return nil
}
