package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/echo-arcade/internal/core"
)

// Player is the sound backend the dispatcher drives.
type Player interface {
	PlayCue(c Cue) error
	StartMusic() error
	StopMusic() error
}

// Dispatcher forwards signals to a Player on its own goroutine. Dispatch
// never blocks: signals that do not fit in the queue are dropped.
type Dispatcher struct {
	ch      chan core.Signal
	player  Player
	logger  *log.Logger
	dropped int
	mu      sync.Mutex
	once    sync.Once
	done    chan struct{}
}

// NewDispatcher starts a dispatcher with a queue of size buffer.
// A nil player gives a silent dispatcher that discards everything.
func NewDispatcher(player Player, logger *log.Logger, buffer int) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if buffer <= 0 {
		buffer = 32
	}
	d := &Dispatcher{
		ch:     make(chan core.Signal, buffer),
		player: player,
		logger: logger,
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch queues signals for playback.
func (d *Dispatcher) Dispatch(signals []core.Signal) {
	if d == nil {
		return
	}
	for _, s := range signals {
		select {
		case d.ch <- s:
		default:
			d.mu.Lock()
			d.dropped++
			d.mu.Unlock()
		}
	}
}

// Dropped returns how many signals were discarded on a full queue.
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Close drains the queue and stops the dispatcher. Safe to call twice.
// Dispatch must not be called after Close.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.ch)
	})
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for s := range d.ch {
		if d.player == nil {
			continue
		}
		if err := d.handle(s); err != nil {
			d.logger.Debug("audio playback failed", "signal", s, "error", err)
		}
	}
}

func (d *Dispatcher) handle(s core.Signal) error {
	switch s {
	case core.SignalRunStarted:
		return d.player.StartMusic()
	case core.SignalRunLost:
		if err := d.player.StopMusic(); err != nil {
			return err
		}
	}
	if c, ok := CueFor(s); ok {
		return d.player.PlayCue(c)
	}
	return nil
}

// Open initializes a SoundManager and wraps it in a dispatcher. When the
// audio device is unavailable the dispatcher is silent and the error is
// logged.
func Open(sfx, music bool, logger *log.Logger) (*Dispatcher, *SoundManager) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !sfx && !music {
		return NewDispatcher(nil, logger, 0), nil
	}
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
		return NewDispatcher(nil, logger, 0), nil
	}
	sm.SetEnabled(sfx, music)
	return NewDispatcher(sm, logger, 0), sm
}
