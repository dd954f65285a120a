package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/unit-influence/parameter"
)

// Cue signals index refusals to the user
type Cue interface {
	Reject()
	Close()
}

// silentCue is used when muted or when no audio device is available
type silentCue struct{}

func (silentCue) Reject() {}
func (silentCue) Close()  {}

// toneCue plays a short sine tone through the speaker
type toneCue struct {
	rate beep.SampleRate
}

// newCue initializes the speaker, falling back to silence on failure
func newCue(mute bool) Cue {
	if mute {
		return silentCue{}
	}

	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		// Non-fatal, the sandbox runs without sound
		log.Printf("Audio initialization failed: %v", err)
		return silentCue{}
	}
	return &toneCue{rate: rate}
}

func (c *toneCue) Reject() {
	sine, err := generators.SineTone(c.rate, parameter.RejectToneHz)
	if err != nil {
		log.Printf("Tone generation failed: %v", err)
		return
	}
	speaker.Play(beep.Take(c.rate.N(parameter.RejectToneDuration), sine))
}

func (c *toneCue) Close() {
	speaker.Close()
}
