package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// ErrNotInitialized is returned when playing before Initialize succeeded.
var ErrNotInitialized = errors.New("audio: sound manager not initialized")

// SoundManager mixes cue effects and the music loop onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	sfx         bool
	musicOn     bool
	initialized bool
}

// NewSoundManager creates a sound manager with effects and music enabled.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		sfx:     true,
		musicOn: true,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// SetEnabled toggles sound effects and music independently.
func (sm *SoundManager) SetEnabled(sfx, music bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sfx = sfx
	sm.musicOn = music
	if !music && sm.music != nil {
		speaker.Lock()
		sm.music.Paused = true
		speaker.Unlock()
	}
}

// PlayCue mixes in a one-shot effect.
func (sm *SoundManager) PlayCue(c Cue) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}
	if !sm.sfx {
		return nil
	}
	s := cueStreamer(sampleRate, c)
	if s == nil {
		return nil
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// StartMusic starts the background loop, resuming it if already created.
func (sm *SoundManager) StartMusic() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}
	if !sm.musicOn {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.music != nil {
		sm.music.Paused = false
		return nil
	}
	sm.music = &beep.Ctrl{Streamer: NewPadGenerator(sampleRate)}
	sm.mixer.Add(sm.music)
	return nil
}

// StopMusic pauses the background loop.
func (sm *SoundManager) StopMusic() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music == nil {
		return nil
	}
	speaker.Lock()
	sm.music.Paused = true
	speaker.Unlock()
	return nil
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.music = nil
	sm.initialized = false
}
