package audio

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/echo-arcade/internal/core"
)

type fakePlayer struct {
	mu      sync.Mutex
	calls   []string
	fail    error
	entered chan struct{}
	release chan struct{}
}

func (p *fakePlayer) record(call string) error {
	if p.entered != nil {
		p.entered <- struct{}{}
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
	return p.fail
}

func (p *fakePlayer) PlayCue(c Cue) error { return p.record(c.String()) }
func (p *fakePlayer) StartMusic() error   { return p.record("music-on") }
func (p *fakePlayer) StopMusic() error    { return p.record("music-off") }

func (p *fakePlayer) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		signal core.Signal
		want   Cue
		ok     bool
	}{
		{core.SignalWaveFull, CueWaveFull, true},
		{core.SignalWaveQuadrant, CueWaveQuadrant, true},
		{core.SignalWaveRejected, CueRejected, true},
		{core.SignalObstacleExploded, CueExplode, true},
		{core.SignalRunLost, CueLose, true},
		{core.SignalOrbDrained, CueNone, false},
		{core.SignalRunStarted, CueNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.signal.String(), func(t *testing.T) {
			got, ok := CueFor(tc.signal)
			if got != tc.want || ok != tc.ok {
				t.Errorf("CueFor(%v) = %v, %v, expected %v, %v", tc.signal, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDispatcherOrder(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, nil, 16)

	d.Dispatch([]core.Signal{core.SignalRunStarted, core.SignalWaveFull, core.SignalOrbDrained})
	d.Dispatch([]core.Signal{core.SignalObstacleExploded, core.SignalRunLost})
	d.Close()

	want := []string{"music-on", "wave-full", "explode", "music-off", "lose"}
	got := p.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, expected %s", i, got[i], want[i])
		}
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	p := &fakePlayer{fail: errors.New("device gone")}
	d := NewDispatcher(p, nil, 4)
	d.Dispatch([]core.Signal{core.SignalWaveFull, core.SignalWaveQuadrant})
	d.Close()

	if len(p.Calls()) != 2 {
		t.Errorf("calls = %v, expected both cues attempted", p.Calls())
	}
}

func TestDispatcherNeverBlocks(t *testing.T) {
	p := &fakePlayer{entered: make(chan struct{}), release: make(chan struct{})}
	d := NewDispatcher(p, nil, 1)

	d.Dispatch([]core.Signal{core.SignalWaveFull})
	<-p.entered // The worker is now stuck inside the player.

	done := make(chan struct{})
	go func() {
		d.Dispatch([]core.Signal{core.SignalWaveQuadrant, core.SignalWaveRejected, core.SignalRunLost})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch() blocked on a slow player")
	}

	if d.Dropped() != 2 {
		t.Errorf("Dropped() = %d, expected 2", d.Dropped())
	}

	go func() {
		for range p.entered {
		}
	}()
	close(p.release)
	d.Close()
	close(p.entered)
}

func TestSilentDispatcher(t *testing.T) {
	d := NewDispatcher(nil, nil, 0)
	d.Dispatch([]core.Signal{core.SignalWaveFull, core.SignalRunLost})
	d.Close()
	d.Close()

	var nilDispatcher *Dispatcher
	nilDispatcher.Dispatch([]core.Signal{core.SignalWaveFull})
	nilDispatcher.Close()
}

func TestOpenDisabled(t *testing.T) {
	d, sm := Open(false, false, nil)
	defer d.Close()
	if sm != nil {
		t.Error("Open() with everything disabled should not touch the speaker")
	}
}

func TestSoundManagerUninitialized(t *testing.T) {
	sm := NewSoundManager()
	if err := sm.PlayCue(CueWaveFull); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlayCue() error = %v, expected ErrNotInitialized", err)
	}
	if err := sm.StartMusic(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("StartMusic() error = %v, expected ErrNotInitialized", err)
	}
	if err := sm.StopMusic(); err != nil {
		t.Errorf("StopMusic() error = %v", err)
	}
	sm.Cleanup()
}

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 || buf[j][0] != buf[j][1] {
				t.Fatalf("sample %d out of range or unbalanced: %v", total+j, buf[j])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return total
}

func TestCueStreamersFinish(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, c := range []Cue{CueWaveFull, CueWaveQuadrant, CueRejected, CueExplode, CueLose} {
		t.Run(c.String(), func(t *testing.T) {
			s := cueStreamer(rate, c)
			if s == nil {
				t.Fatal("cueStreamer() returned nil")
			}
			if n := drain(t, s); n == 0 {
				t.Error("cue produced no samples")
			}
		})
	}
	if cueStreamer(rate, CueNone) != nil {
		t.Error("CueNone should have no sound")
	}
}

func TestSweepDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	g := NewSweepGenerator(rate, 100, 200, 0.5, 250*time.Millisecond)
	if n := drain(t, g); n != 250 {
		t.Errorf("sweep length = %d samples, expected 250", n)
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v", g.Err())
	}
}

func TestPadGeneratorLoops(t *testing.T) {
	g := NewPadGenerator(beep.SampleRate(8000))
	buf := make([][2]float64, 4000)
	for i := 0; i < 5; i++ {
		n, ok := g.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("Stream() = %d, %v, expected endless music", n, ok)
		}
	}
}
