package platform

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOTrigger drives the parallel trigger port (§6) as a bundle of
// GPIO output lines, one per bit of the trigger code (codes 1..11 fit
// in four bits). Grounded on the teacher's ptt.go GPIO line handling,
// generalized from a single PTT line to a multi-bit output bus and
// moved off the teacher's direct /sys/class/gpio cgo path onto the
// pure-Go go-gpiocdev character-device API.
type GPIOTrigger struct {
	lines *gpiocdev.Lines
}

// OpenGPIOTrigger requests the given offsets on chip (e.g. "gpiochip0")
// as outputs, most-significant bit first.
func OpenGPIOTrigger(chip string, offsets []int) (*GPIOTrigger, error) {
	lines, err := gpiocdev.RequestLines(chip, offsets, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("platform: request trigger lines on %s: %w", chip, err)
	}
	return &GPIOTrigger{lines: lines}, nil
}

// Set implements hwreg.TriggerPort: it writes code's bits out across
// the requested lines, most-significant first.
func (g *GPIOTrigger) Set(code int) {
	values := make([]int, len(g.lines.Offsets()))
	for i := range values {
		shift := len(values) - 1 - i
		values[i] = (code >> shift) & 1
	}
	_ = g.lines.SetValues(values)
}

// Close releases the underlying GPIO lines.
func (g *GPIOTrigger) Close() error {
	return g.lines.Close()
}

// GPIOIndicator drives the two-state status light (§4.4) off a single
// GPIO output line: high for "on", low for "dim".
type GPIOIndicator struct {
	line *gpiocdev.Line
}

// OpenGPIOIndicator requests offset on chip as an output.
func OpenGPIOIndicator(chip string, offset int) (*GPIOIndicator, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("platform: request indicator line on %s: %w", chip, err)
	}
	return &GPIOIndicator{line: line}, nil
}

// On implements hwreg.Indicator.
func (g *GPIOIndicator) On() { _ = g.line.SetValue(1) }

// Dim implements hwreg.Indicator.
func (g *GPIOIndicator) Dim() { _ = g.line.SetValue(0) }

// Close releases the underlying GPIO line.
func (g *GPIOIndicator) Close() error {
	return g.line.Close()
}
