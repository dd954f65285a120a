package parameter

import "time"

// Sandbox Timing
const (
	// FrameUpdateInterval is the redraw interval of the sandbox (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// StatusMessageTTL is how long the last error stays on the status line
	StatusMessageTTL = 3 * time.Second
)

// Sandbox Rendering
const (
	// CellGlyphWidth is the number of terminal columns used to draw one grid cell
	CellGlyphWidth = 3

	// CellGlyphHeight is the number of terminal rows used to draw one grid cell
	CellGlyphHeight = 2
)

// Audio Cue
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// RejectToneHz is the frequency of the tone played when the index refuses a placement
	RejectToneHz = 220

	// RejectToneDuration is the length of the refusal tone
	RejectToneDuration = 60 * time.Millisecond
)

// Debug Logging
const (
	// LogDir is the directory debug logs are written to
	LogDir = "logs"

	// LogFileName is the debug log file name inside LogDir
	LogFileName = "influence-sandbox.log"

	// MaxLogSize is the size above which the log is rotated on startup
	MaxLogSize = 10 * 1024 * 1024
)
