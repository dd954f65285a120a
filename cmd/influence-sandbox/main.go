package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/unit-influence/engine"
	"github.com/lixenwraith/unit-influence/parameter"
)

var (
	scenarioFlag = flag.String("scenario", "", "YAML scenario file")
	widthFlag    = flag.Int("width", 0, "Grid width, overrides the scenario")
	heightFlag   = flag.Int("height", 0, "Grid height, overrides the scenario")
	debugFlag    = flag.Bool("debug", false, "Write debug log to "+parameter.LogDir)
	muteFlag     = flag.Bool("mute", false, "Disable the refusal tone")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	sc := DefaultScenario()
	if *scenarioFlag != "" {
		loaded, err := LoadScenario(*scenarioFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	}
	if *widthFlag > 0 {
		sc.Grid.Width = *widthFlag
	}
	if *heightFlag > 0 {
		sc.Grid.Height = *heightFlag
	}

	world := engine.NewWorld(engine.NewMap(sc.Grid.Width, sc.Grid.Height))
	if err := sc.Apply(world); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply scenario: %v\n", err)
		os.Exit(1)
	}
	log.Printf("world %dx%d with %d actors", sc.Grid.Width, sc.Grid.Height, len(world.Actors()))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSANDBOX CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cue := newCue(*muteFlag)
	defer cue.Close()
	defer screen.Fini()

	run(screen, NewSandbox(world, cue))
}

func run(screen tcell.Screen, s *Sandbox) {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	s.Draw(screen)
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.HandleKey(ev.Key(), ev.Rune()) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			s.Draw(screen)
		}
	}
}
