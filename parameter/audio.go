package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Orbit chime
const (
	ChimeDuration = 120 * time.Millisecond

	// ChimeBaseFrequency is used for the first body, later bodies step up by ChimeStepRatio
	ChimeBaseFrequency = 440.0
	ChimeStepRatio     = 1.25

	// ChimeVolume is a beep effects.Volume exponent (base 2)
	ChimeVolume = -1.5

	// MinChimeGap between consecutive chimes
	MinChimeGap = 80 * time.Millisecond
)
