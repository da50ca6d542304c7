package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/orbiter/engine"
	"github.com/lixenwraith/orbiter/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Chime plays a short tone per completed orbit
// Every method is safe without a speaker; Play is a no-op until Initialize succeeds
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  time.Time
	now         func() time.Time
	logger      *zap.Logger
}

// NewChime creates an uninitialized chime
func NewChime(logger *zap.Logger) *Chime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chime{
		mixer:  &beep.Mixer{},
		now:    time.Now,
		logger: logger,
	}
}

// Initialize opens the speaker, calling it again is a no-op
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	c.logger.Debug("Audio ready", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Close stops playback and releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// Play queues the tone for body, chimes closer than MinChimeGap are dropped
func (c *Chime) Play(body int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	now := c.now()
	if now.Sub(c.lastPlayed) < parameter.MinChimeGap {
		return
	}

	tone, err := Tone(body)
	if err != nil {
		c.logger.Warn("Chime tone", zap.Int("body", body), zap.Error(err))
		return
	}
	c.lastPlayed = now

	speaker.Lock()
	c.mixer.Add(tone)
	speaker.Unlock()
}

// Listener adapts the chime to simulation lap notifications
func (c *Chime) Listener() engine.LapListener {
	return func(body, _ int) {
		c.Play(body)
	}
}

// Frequency of the chime for body, stepping up per body index
func Frequency(body int) float64 {
	return parameter.ChimeBaseFrequency * math.Pow(parameter.ChimeStepRatio, float64(body))
}

// Tone builds the finite chime stream for body
func Tone(body int) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Frequency(body))
	if err != nil {
		return nil, err
	}
	d := parameter.ChimeDuration
	shaped := NewEnvelope(beep.Take(sampleRate.N(d), sine), d, d/10, d/2, sampleRate)
	return newVolume(shaped, parameter.ChimeVolume), nil
}
