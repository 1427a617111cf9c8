package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	chimeHigh  = 659.25 // E5
	chimeLow   = 523.25 // C5
	chimeDecay = 3.5
	chimeGain  = 0.25
)

// ChimeGenerator produces a high tone followed by a low tone, each with an
// exponential decay. It ends after both tones have played.
type ChimeGenerator struct {
	sr    beep.SampleRate
	pos   int
	note  int // samples per tone
	total int
}

// NewChime creates a chime generator
func NewChime(sr beep.SampleRate) *ChimeGenerator {
	note := sr.N(time.Millisecond * 700)
	return &ChimeGenerator{
		sr:    sr,
		note:  note,
		total: note * 2,
	}
}

// Len is the chime length in samples
func (g *ChimeGenerator) Len() int {
	return g.total
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		freq := chimeHigh
		local := g.pos
		if g.pos >= g.note {
			freq = chimeLow
			local -= g.note
		}
		t := float64(local) / float64(g.sr)

		// 5ms attack avoids a click at each onset
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*chimeDecay)

		// Slight second partial for a bell timbre
		sample := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2.76*t)
		sample *= envelope * chimeGain

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
