// Package hwreg defines the abstract output-register surface the
// engine writes to each tick: a stereo DAC, a trigger port, and a
// two-state indicator light. §1 and §6 of the specification place
// the real devices behind these registers out of scope for the core;
// internal/platform supplies concrete backends (sound card, GPIO),
// and the tests in internal/engine use the recording fakes in fakes.go.
package hwreg

// DAC is the per-tick stereo sample output. Write must not block and
// must not allocate: it is called from the real-time tick routine.
type DAC interface {
	Write(left, right int)
}

// TriggerPort is the write-only parallel port used by downstream
// acquisition hardware to time-stamp stimulus events.
type TriggerPort interface {
	Set(code int)
}

// Indicator is the two-state status light (§4.4: "indicators ON" /
// "indicators DIM").
type Indicator interface {
	On()
	Dim()
}

// Registers bundles the three output registers the engine drives.
// A nil field is valid and simply discards writes to that register,
// so callers that only care about a subset (e.g. bench tooling that
// wants DAC samples but no real trigger hardware) can leave the rest
// unset.
type Registers struct {
	DAC       DAC
	Trigger   TriggerPort
	Indicator Indicator
}

func (r Registers) WriteDAC(left, right int) {
	if r.DAC != nil {
		r.DAC.Write(left, right)
	}
}

func (r Registers) SetTrigger(code int) {
	if r.Trigger != nil {
		r.Trigger.Set(code)
	}
}

func (r Registers) IndicatorOn() {
	if r.Indicator != nil {
		r.Indicator.On()
	}
}

func (r Registers) IndicatorDim() {
	if r.Indicator != nil {
		r.Indicator.Dim()
	}
}
