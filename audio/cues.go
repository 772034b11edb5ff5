package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a short feedback sound
type Cue int

const (
	CueDebugOn Cue = iota
	CueDebugOff
	CueResize
)

// Cues plays short synthesized feedback sounds through the speaker
// All methods are no-ops until Init succeeds
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCues creates a cue player, volume is a gain multiplier in [0, 1]
func NewCues(volume float64) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences and releases the speaker
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// Play queues the cue on the mixer
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s := Streamer(cue, c.volume)
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds the sound for a cue
func Streamer(cue Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueDebugOn:
		s = beep.Seq(
			NewOscillator(660, 40*time.Millisecond, WaveSine, sampleRate),
			NewOscillator(990, 60*time.Millisecond, WaveSine, sampleRate),
		)
	case CueDebugOff:
		s = beep.Seq(
			NewOscillator(990, 40*time.Millisecond, WaveSine, sampleRate),
			NewOscillator(660, 60*time.Millisecond, WaveSine, sampleRate),
		)
	default:
		s = NewOscillator(220, 15*time.Millisecond, WaveSquare, sampleRate)
	}
	return &effects.Gain{Streamer: s, Gain: volume - 1}
}
