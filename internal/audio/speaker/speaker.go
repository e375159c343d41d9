// Package speaker plays an audio.Synth on the system audio device.
package speaker

import (
	"fmt"
	"time"

	beepspeaker "github.com/gopxl/beep/speaker"

	"github.com/tomz197/vecteroids/internal/audio"
)

// bufferSize is the output latency of the device.
const bufferSize = 50 * time.Millisecond

// Open starts the system audio device and plays a new Synth through it.
// On failure it returns audio.Nop alongside the error so callers can carry on silently.
func Open(volume float64) (audio.Sink, error) {
	synth := audio.NewSynth(audio.DefaultSampleRate, volume)
	if err := beepspeaker.Init(audio.DefaultSampleRate, audio.DefaultSampleRate.N(bufferSize)); err != nil {
		return audio.Nop{}, fmt.Errorf("init speaker: %w", err)
	}
	beepspeaker.Play(synth)
	return synth, nil
}

// Close stops playback and releases the audio device.
func Close() {
	beepspeaker.Clear()
	beepspeaker.Close()
}
