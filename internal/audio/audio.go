// Package audio turns simulation events into sound. The world talks to a
// Sink; Synth renders cues with gopxl/beep and Nop discards them.
package audio

//go:generate go tool mockgen -destination=mock/sink.go -package=mock . Sink

// Cue names a sound effect.
type Cue string

const (
	CueFire      Cue = "fire"
	CueThrust    Cue = "thrust"
	CueLargeUFO  Cue = "largeUFO"
	CueSmallUFO  Cue = "smallUFO"
	CueExplosion Cue = "explosion"
	CueBeat      Cue = "beat"
	CueExtraLife Cue = "extraLife"
)

// Looping reports whether a cue keeps playing until stopped.
func (c Cue) Looping() bool {
	return c == CueThrust || c == CueLargeUFO || c == CueSmallUFO
}

// Sink receives sound requests from the simulation. Playing a looping cue
// that is already playing does nothing; stopping a cue that is not playing
// does nothing.
type Sink interface {
	PlaySound(cue Cue)
	StopSound(cue Cue)
	// PlayBackgroundBeat starts the heartbeat, or retunes it if running, to
	// the tempo for the remaining asteroid weights on stage.
	PlayBackgroundBeat(weights []float64, stage int)
	StopBackgroundBeat()
	StopAll()
}

// Nop is a Sink that plays nothing.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) PlaySound(Cue)                     {}
func (Nop) StopSound(Cue)                     {}
func (Nop) PlayBackgroundBeat([]float64, int) {}
func (Nop) StopBackgroundBeat()               {}
func (Nop) StopAll()                          {}

// Tempo bounds in beats per minute.
const (
	MinBPM = 60.0
	MaxBPM = 120.0
)

// Tempo returns the heartbeat tempo: slow while the field is full and
// speeding up as the total asteroid weight drops below the stage's opening
// weight.
func Tempo(weights []float64, stage int) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	full := float64(min(4+2*stage, 12))
	t := 1 - total/full
	t = min(max(t, 0), 1)
	return MinBPM + t*(MaxBPM-MinBPM)
}
