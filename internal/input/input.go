// Package input turns a raw terminal byte stream into held-key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/vecteroids/internal/object"
)

// DefaultHoldDuration is how long a key is considered "held" after its last
// press. Terminals report key repeats, not releases, so holding relies on
// the repeat rate keeping the timestamp fresh.
const DefaultHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Space   bool
	Enter   bool
	Pressed []byte // raw bytes received this frame
}

// Controls maps the held keys onto ship controls.
func (in Input) Controls() object.Controls {
	return object.Controls{
		Thrust:      in.Up,
		RotateLeft:  in.Left,
		RotateRight: in.Right,
		Fire:        in.Space,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	space time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	closed bool
	hold   time.Duration
	state  keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: hold,
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Read drains all available bytes from the stream without blocking and
// returns the key state as of now.
func (s *Stream) Read(now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.state.apply(buf, now)
	in := s.state.input(now, s.hold)
	in.Pressed = buf
	return in
}

// apply updates key timestamps from buf, decoding CSI arrow sequences.
func (st *keyState) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				st.up = now
				i += 2
				continue
			case 'C': // Right arrow
				st.right = now
				i += 2
				continue
			case 'D': // Left arrow
				st.left = now
				i += 2
				continue
			case 'B': // Down arrow, unused
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', 0x03: // q or Ctrl-C
			st.quit = now
		case 'a', 'A', 'j', 'J':
			st.left = now
		case 'd', 'D', 'l', 'L':
			st.right = now
		case 'w', 'W', 'i', 'I':
			st.up = now
		case ' ':
			st.space = now
		case '\n', '\r':
			st.enter = now
		}
	}
}

// input builds the held-key view: a key is held if seen within hold of now.
func (st *keyState) input(now time.Time, hold time.Duration) Input {
	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < hold
	}
	return Input{
		Quit:  held(st.quit),
		Left:  held(st.left),
		Right: held(st.right),
		Up:    held(st.up),
		Space: held(st.space),
		Enter: held(st.enter),
	}
}
