package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// SweepGenerator plays a sine tone gliding from one frequency to another
// under a short attack and linear release.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	volume   float64
	pos      int
	total    int
	phase    float64
}

// NewSweepGenerator creates a sweep lasting d.
func NewSweepGenerator(sr beep.SampleRate, from, to, volume float64, d time.Duration) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, volume: volume, total: sr.N(d)}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		env := math.Min(float64(g.pos)/attack, 1) * (1 - progress)
		sample := g.volume * env * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseGenerator plays decaying noise mixed with a low thump.
type NoiseGenerator struct {
	sr     beep.SampleRate
	rng    *rand.Rand
	volume float64
	pos    int
	total  int
}

// NewNoiseGenerator creates a noise burst lasting d.
func NewNoiseGenerator(sr beep.SampleRate, volume float64, d time.Duration) *NoiseGenerator {
	return &NoiseGenerator{
		sr:     sr,
		rng:    rand.New(rand.NewSource(1)), //#nosec G404 -- audio noise
		volume: volume,
		total:  sr.N(d),
	}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		decay := math.Exp(-6 * float64(g.pos) / float64(g.total))

		noise := g.rng.Float64()*2 - 1
		thump := math.Sin(2 * math.Pi * 55 * t)
		sample := g.volume * decay * (0.6*noise + 0.4*thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}

// PadGenerator plays an endless slow arpeggio used as background music.
type PadGenerator struct {
	sr    beep.SampleRate
	notes []float64
	step  int
	pos   int
}

// NewPadGenerator creates the background loop.
func NewPadGenerator(sr beep.SampleRate) *PadGenerator {
	return &PadGenerator{
		sr:    sr,
		notes: []float64{110, 164.81, 196, 246.94}, // A2 E3 G3 B3
		step:  sr.N(400 * time.Millisecond),
	}
}

func (g *PadGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := g.notes[(g.pos/g.step)%len(g.notes)]
		inNote := g.pos % g.step
		t := float64(g.pos) / float64(g.sr)

		env := math.Exp(-3 * float64(inNote) / float64(g.step))
		drone := 0.04 * math.Sin(2*math.Pi*55*t)
		sample := drone + 0.06*env*math.Sin(2*math.Pi*note*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PadGenerator) Err() error {
	return nil
}

// cueStreamer builds the one-shot streamer for a cue.
func cueStreamer(sr beep.SampleRate, c Cue) beep.Streamer {
	switch c {
	case CueWaveFull:
		return NewSweepGenerator(sr, 220, 660, 0.3, 250*time.Millisecond)
	case CueWaveQuadrant:
		return NewSweepGenerator(sr, 440, 880, 0.2, 90*time.Millisecond)
	case CueRejected:
		return NewSweepGenerator(sr, 140, 110, 0.25, 120*time.Millisecond)
	case CueExplode:
		return NewNoiseGenerator(sr, 0.35, 400*time.Millisecond)
	case CueLose:
		return beep.Seq(
			NewSweepGenerator(sr, 330, 220, 0.3, 200*time.Millisecond),
			NewSweepGenerator(sr, 220, 110, 0.3, 400*time.Millisecond),
		)
	default:
		return nil
	}
}
