// Package audio plays the classroom bell. Audio is optional: every method is
// safe to call when the speaker could not be initialised.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager owns the speaker and a mixer that all sounds play through
type SoundManager struct {
	mu          sync.Mutex
	bell        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates an uninitialised sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return errors.Wrap(err, "speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether sounds will be heard
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Cleanup silences everything
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.bell != nil {
		speaker.Lock()
		sm.bell.Paused = true
		speaker.Unlock()
	}
	speaker.Clear()
	sm.initialized = false
}

// PlayBell rings the two-tone classroom chime once
func (sm *SoundManager) PlayBell() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewChime(sampleRate), Paused: false}
	sm.bell = ctrl
	speaker.Lock()
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// PlayClick plays a short high blip, used as snapshot feedback
func (sm *SoundManager) PlayClick() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	click, err := NewClick(sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(click)
	speaker.Unlock()
}

// NewClick returns a 40ms sine blip at reduced volume
func NewClick(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, 1760)
	if err != nil {
		return nil, errors.Wrap(err, "click tone")
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(40*time.Millisecond), sine),
		Base:     2,
		Volume:   -2,
	}, nil
}
