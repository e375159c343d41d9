package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// square returns +1 for the first half of a phase cycle and -1 for the second.
func square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

// advance moves phase forward by one sample of freq, keeping it in [0, 1).
func advance(phase, freq float64, rate beep.SampleRate) float64 {
	phase += freq / float64(rate)
	return phase - math.Floor(phase)
}

// sweep is a square wave gliding linearly from one frequency to another.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	total    int
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

// newTone is a fixed-pitch square wave.
func newTone(rate beep.SampleRate, freq float64, d time.Duration) *sweep {
	return newSweep(rate, freq, freq, d)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		v := square(s.phase)
		samples[i] = [2]float64{v, v}
		s.phase = advance(s.phase, freq, s.rate)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise; with decay it fades linearly to silence over total samples,
// without a total it never ends.
type noise struct {
	rng   *rand.Rand
	pos   int
	total int // 0 means endless
	decay bool
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.total > 0 && n.pos >= n.total {
			return i, i > 0
		}
		v := n.rng.Float64()*2 - 1
		if n.decay && n.total > 0 {
			v *= 1 - float64(n.pos)/float64(n.total)
		}
		samples[i] = [2]float64{v, v}
		n.pos++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// siren alternates between two pitches every period, forever.
type siren struct {
	rate      beep.SampleRate
	high, low float64
	period    int
	phase     float64
	pos       int
}

func newSiren(rate beep.SampleRate, high, low float64, period time.Duration) *siren {
	return &siren{rate: rate, high: high, low: low, period: max(rate.N(period), 1)}
}

func (s *siren) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		freq := s.high
		if (s.pos/s.period)%2 == 1 {
			freq = s.low
		}
		v := square(s.phase)
		samples[i] = [2]float64{v, v}
		s.phase = advance(s.phase, freq, s.rate)
		s.pos++
	}
	return len(samples), true
}

func (s *siren) Err() error { return nil }

// Heartbeat tones.
const (
	beatHigh     = 90.0
	beatLow      = 67.0
	beatDuration = 100 * time.Millisecond
)

// heartbeat plays alternating low thumps at a tempo that can change while it runs.
// The tempo is read each sample, so retuning takes effect on the next beat.
type heartbeat struct {
	rate     beep.SampleRate
	bpm      float64
	sinceHit int // samples since the current beat started
	phase    float64
	low      bool
}

func newHeartbeat(rate beep.SampleRate, bpm float64) *heartbeat {
	return &heartbeat{rate: rate, bpm: bpm}
}

func (h *heartbeat) interval() int {
	return max(int(float64(h.rate)*60/h.bpm), 1)
}

func (h *heartbeat) Stream(samples [][2]float64) (int, bool) {
	thump := h.rate.N(beatDuration)
	for i := range samples {
		if h.sinceHit >= h.interval() {
			h.sinceHit = 0
			h.phase = 0
			h.low = !h.low
		}
		var v float64
		if h.sinceHit < thump {
			freq := beatHigh
			if h.low {
				freq = beatLow
			}
			v = square(h.phase) * (1 - float64(h.sinceHit)/float64(thump))
			h.phase = advance(h.phase, freq, h.rate)
		}
		samples[i] = [2]float64{v, v}
		h.sinceHit++
	}
	return len(samples), true
}

func (h *heartbeat) Err() error { return nil }

// newVolume scales s by a linear factor; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
