package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is the rate the speaker package opens the device at.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue envelopes.
const (
	fireDuration      = 80 * time.Millisecond
	explosionDuration = 150 * time.Millisecond
	extraLifeTone     = 100 * time.Millisecond
	extraLifeGap      = 50 * time.Millisecond
	largeUFOPeriod    = 400 * time.Millisecond
	smallUFOPeriod    = 200 * time.Millisecond
)

// Relative loudness of each cue before the master volume.
var cueVolumes = map[Cue]float64{
	CueFire:      0.25,
	CueThrust:    0.15,
	CueLargeUFO:  0.15,
	CueSmallUFO:  0.15,
	CueExplosion: 0.5,
	CueBeat:      0.6,
	CueExtraLife: 0.3,
}

// Synth is a Sink that synthesizes every cue. It is itself a beep.Streamer:
// hand it to speaker.Play, or stream it directly in tests. All methods are
// safe to call while another goroutine streams.
type Synth struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	rng    *rand.Rand
	mixer  beep.Mixer

	loops map[Cue]*beep.Ctrl
	beat  *heartbeat
	beatC *beep.Ctrl
}

var (
	_ Sink          = (*Synth)(nil)
	_ beep.Streamer = (*Synth)(nil)
)

// NewSynth creates a synthesizer producing samples at rate, scaled by volume (0..1).
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{
		rate:   rate,
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		loops:  make(map[Cue]*beep.Ctrl),
	}
}

// Stream implements beep.Streamer. It never ends; silence fills the gaps.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(samples)
	if s.mixer.Len() > 0 {
		s.mixer.Stream(samples)
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *Synth) Err() error { return nil }

// Playing reports whether a looping cue is currently running.
func (s *Synth) Playing(cue Cue) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loops[cue]
	return ok
}

// BeatPlaying reports whether the heartbeat is running.
func (s *Synth) BeatPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beat != nil
}

// BPM returns the heartbeat tempo, 0 when stopped.
func (s *Synth) BPM() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.beat == nil {
		return 0
	}
	return s.beat.bpm
}

// PlaySound implements Sink.
func (s *Synth) PlaySound(cue Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cue.Looping() {
		if _, ok := s.loops[cue]; ok {
			return
		}
		ctrl := &beep.Ctrl{Streamer: s.voice(cue)}
		s.loops[cue] = ctrl
		s.mixer.Add(ctrl)
		return
	}
	if v := s.voice(cue); v != nil {
		s.mixer.Add(v)
	}
}

// voice builds the streamer for cue at its configured loudness.
func (s *Synth) voice(cue Cue) beep.Streamer {
	var st beep.Streamer
	switch cue {
	case CueFire:
		st = newSweep(s.rate, 1200, 300, fireDuration)
	case CueThrust:
		st = &noise{rng: s.rng}
	case CueLargeUFO:
		st = newSiren(s.rate, 500, 250, largeUFOPeriod)
	case CueSmallUFO:
		st = newSiren(s.rate, 1000, 500, smallUFOPeriod)
	case CueExplosion:
		st = &noise{rng: s.rng, total: s.rate.N(explosionDuration), decay: true}
	case CueBeat:
		st = beep.Take(s.rate.N(beatDuration), newHeartbeat(s.rate, MinBPM))
	case CueExtraLife:
		st = beep.Seq(
			newTone(s.rate, 440, extraLifeTone),
			beep.Silence(s.rate.N(extraLifeGap)),
			newTone(s.rate, 660, extraLifeTone),
			beep.Silence(s.rate.N(extraLifeGap)),
			newTone(s.rate, 880, extraLifeTone),
		)
	default:
		return nil
	}
	return newVolume(st, cueVolumes[cue]*s.volume)
}

// StopSound implements Sink.
func (s *Synth) StopSound(cue Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLoop(cue)
}

func (s *Synth) stopLoop(cue Cue) {
	ctrl, ok := s.loops[cue]
	if !ok {
		return
	}
	// A Ctrl without a streamer reports drained, so the mixer drops it.
	ctrl.Streamer = nil
	delete(s.loops, cue)
}

// PlayBackgroundBeat implements Sink.
func (s *Synth) PlayBackgroundBeat(weights []float64, stage int) {
	bpm := Tempo(weights, stage)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.beat != nil {
		s.beat.bpm = bpm
		return
	}
	s.beat = newHeartbeat(s.rate, bpm)
	s.beatC = &beep.Ctrl{Streamer: newVolume(s.beat, cueVolumes[CueBeat]*s.volume)}
	s.mixer.Add(s.beatC)
}

// StopBackgroundBeat implements Sink.
func (s *Synth) StopBackgroundBeat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopBeat()
}

func (s *Synth) stopBeat() {
	if s.beat == nil {
		return
	}
	s.beatC.Streamer = nil
	s.beat = nil
	s.beatC = nil
}

// StopAll implements Sink: loops, heartbeat and one-shot cues all go silent.
func (s *Synth) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for cue := range s.loops {
		s.stopLoop(cue)
	}
	s.stopBeat()
	s.mixer.Clear()
}
