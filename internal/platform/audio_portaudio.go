// Package platform supplies the concrete backends the core's abstract
// hwreg registers and the command channel transport are wired to: a
// sound card DAC, GPIO trigger/indicator lines, serial/pty command
// transports, and LAN service discovery. None of this is imported by
// internal/engine; the tick routine only ever sees the hwreg
// interfaces.
package platform

import (
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDAC drives a real stereo output device through PortAudio.
// Write is called once per tick from the real-time loop and must not
// block past the callback's own deadline; it stages the sample into a
// small ring buffer a PortAudio callback goroutine drains, the same
// producer/consumer split the teacher's audio.go keeps between the
// channel's transmit thread and the PortAudio callback.
type PortAudioDAC struct {
	stream *portaudio.Stream
	ring   chan [2]float32
}

// OpenPortAudioDAC opens the system default output device at
// sampleRate and starts streaming. ringSize bounds how many ticks of
// output can be buffered ahead of the sound card; a full ring drops
// the oldest pending sample rather than blocking Write.
func OpenPortAudioDAC(sampleRate int, ringSize int) (*PortAudioDAC, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("platform: portaudio init: %w", err)
	}

	d := &PortAudioDAC{ring: make(chan [2]float32, ringSize)}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(sampleRate), 0, d.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("platform: open default stream: %w", err)
	}
	d.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("platform: start stream: %w", err)
	}
	return d, nil
}

// callback fills out with whatever samples are pending in the ring,
// repeating silence once it runs dry rather than underrunning with
// garbage.
func (d *PortAudioDAC) callback(out [][]float32) {
	for i := range out[0] {
		select {
		case sample := <-d.ring:
			out[0][i] = sample[0]
			out[1][i] = sample[1]
		default:
			out[0][i] = 0
			out[1][i] = 0
		}
	}
}

// Write implements hwreg.DAC. left/right are the engine's full-scale
// integer samples (0 or AmpOppchn); they are normalized to PortAudio's
// [-1, 1] float32 range.
func (d *PortAudioDAC) Write(left, right int) {
	sample := [2]float32{normalize(left), normalize(right)}
	select {
	case d.ring <- sample:
	default:
		// Ring is full: drop the oldest pending sample so the newest
		// one (this tick's) still gets through instead of blocking.
		select {
		case <-d.ring:
		default:
		}
		select {
		case d.ring <- sample:
		default:
		}
	}
}

func normalize(v int) float32 {
	return float32(math.Max(-1, math.Min(1, float64(v)/32767.0)))
}

// Close stops and releases the stream and terminates PortAudio.
func (d *PortAudioDAC) Close() error {
	if d.stream == nil {
		return nil
	}
	if err := d.stream.Stop(); err != nil {
		return fmt.Errorf("platform: stop stream: %w", err)
	}
	if err := d.stream.Close(); err != nil {
		return fmt.Errorf("platform: close stream: %w", err)
	}
	return portaudio.Terminate()
}
