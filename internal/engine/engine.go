package engine

import (
	"fmt"

	"github.com/eeglab/adapterprobe/internal/hwreg"
)

// TickResult is what one call to Engine.Tick computed and (gated by
// AudioActive/TriggerActive) pushed to the output registers. Tests
// assert on this directly rather than poking at hardware fakes for
// every invariant in spec.md §8.
type TickResult struct {
	Counter0      int
	DAC0          int
	DAC1          int
	TriggerFired  bool
	TriggerCode   TriggerCode
	AudioActive   bool
	TriggerActive bool
}

// Engine is the owning record for one run of the Adapter-Probe
// paradigm: the immutable Config plus every piece of mutable runtime
// state from §3. There is exactly one Engine per acquisition channel;
// its address should stay fixed for the life of a run since Tick is
// called from a real-time context.
type Engine struct {
	cfg *Config

	// pattern is owned by the host and must not be mutated while the
	// engine runs; the engine only ever reads it.
	pattern []byte
	loop    bool

	jitterSrc *jitterSource

	counter0      int
	counter1      int // reserved; zeroed by Start/Resume, never otherwise read (spec.md §9)
	patternOffset int

	trial   trial
	jitter  int

	audioActive   bool
	triggerActive bool

	registers hwreg.Registers
}

// NewEngine builds an Engine for one run. pattern must be non-empty;
// it is the fixed-length cyclic byte buffer the pattern sequencer
// consumes. seed1/seed2 pre-seed the non-blocking jitter RNG (§5);
// passing the same seeds across runs reproduces the same jitter
// sequence.
func NewEngine(cfg *Config, pattern []byte, loop bool, registers hwreg.Registers, seed1, seed2 uint64) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("engine: nil config")
	}
	if len(pattern) == 0 {
		return nil, fmt.Errorf("engine: pattern buffer must not be empty")
	}

	e := &Engine{
		cfg:       cfg,
		pattern:   pattern,
		loop:      loop,
		jitterSrc: newJitterSource(seed1, seed2),
		registers: registers,
	}
	e.Init()
	return e, nil
}

// Init is §4.4's init: zero the counters and pattern offset, drop
// both output gates, and turn the indicator on. Two consecutive Init
// calls leave identical state (the round-trip law in spec.md §8).
func (e *Engine) Init() {
	e.counter0 = 0
	e.counter1 = 0
	e.patternOffset = 0
	e.audioActive = false
	e.triggerActive = false
	e.registers.IndicatorOn()
}

// Start is §4.4's start: dim the indicator, zero counter0/counter1,
// and raise both gates.
func (e *Engine) Start() {
	e.registers.IndicatorDim()
	e.counter0 = 0
	e.counter1 = 0
	e.triggerActive = true
	e.audioActive = true
}

// Stop is §4.4's stop: drop the audio gate and turn the indicator on.
// It does not reset counters or trigger_active.
func (e *Engine) Stop() {
	e.audioActive = false
	e.registers.IndicatorOn()
}

// Pause is §4.4's pause: identical in effect to Stop, kept as a
// separate entry point because the command channel (§6) and the '@'
// pattern marker (§4.1) distinguish the two intents even though the
// state transition is the same.
func (e *Engine) Pause() {
	e.audioActive = false
	e.registers.IndicatorOn()
}

// Resume is §4.4's resume: dim the indicator, zero counter0/counter1,
// and raise the audio gate. It deliberately leaves trigger_active
// untouched, so a paused trial resumes emitting triggers iff they
// were enabled before the pause.
func (e *Engine) Resume() {
	e.registers.IndicatorDim()
	e.counter0 = 0
	e.counter1 = 0
	e.audioActive = true
}

// advancePatternOffset moves to the next pattern byte, wrapping per
// §4.1's buffer-wrap rule: on wrap, if the experiment does not loop,
// Stop fires exactly once (edge-triggered, §5) before the offset
// resets to 0.
func (e *Engine) advancePatternOffset() {
	e.patternOffset++
	if e.patternOffset == len(e.pattern) {
		if !e.loop {
			e.Stop()
		}
		e.patternOffset = 0
	}
}

// advanceIfTrialBoundary is §4.1's advance_if_trial_boundary: Tick
// calls it only when counter0 has just wrapped to 0. '.' is a
// modifier, not a trial — it draws the jitter and re-reads — so the
// loop only returns once it has consumed a byte that is not '.'.
func (e *Engine) advanceIfTrialBoundary() {
	for {
		code := e.pattern[e.patternOffset]

		if code == codeJitter {
			e.jitter = e.jitterSrc.draw(e.cfg.AdapterTotalDurRandMax)
			e.advancePatternOffset()
			continue
		}

		switch code {
		case codePause:
			e.Pause()
		default:
			if tr, ok := trialTable[code]; ok {
				e.trial = tr
			}
			// Any other byte is a silent no-op on the trial tuple,
			// by design (spec.md §7): forward compatibility with
			// pattern bytes this engine does not yet know.
		}

		e.advancePatternOffset()
		return
	}
}

// Tick advances the engine by one sample. It is the hard real-time
// hot path: integer arithmetic only, no allocation, no blocking
// calls. The ordering matches spec.md §5 exactly: pattern-boundary
// decode, trigger emission test, region evaluation, the DAC stage
// (adapter then probe), then the counter advance.
func (e *Engine) Tick() TickResult {
	if e.counter0 == 0 {
		e.advanceIfTrialBoundary()
	}

	// patternOffset > 0 excludes the trial whose decode just wrapped
	// the pattern buffer back to its start (advancePatternOffset
	// above): the source never fires a trigger on that trial, so a
	// looping single-byte pattern never fires one at all.
	fire := e.triggerActive && e.patternOffset > 0 && e.counter0 == e.cfg.triggerInstant()

	r := e.cfg.evaluateRegions(e.counter0, e.trial, e.jitter)
	dac0, dac1 := e.cfg.computeDAC(e.counter0, e.trial, r)

	res := TickResult{
		Counter0:      e.counter0,
		DAC0:          dac0,
		DAC1:          dac1,
		TriggerFired:  fire,
		TriggerCode:   e.trial.Trigger,
		AudioActive:   e.audioActive,
		TriggerActive: e.triggerActive,
	}

	if fire {
		e.registers.SetTrigger(int(e.trial.Trigger))
	}
	if e.audioActive {
		e.registers.WriteDAC(dac0, dac1)
	} else {
		e.registers.WriteDAC(0, 0)
	}

	e.counter0 = (e.counter0 + 1) % e.cfg.SOA
	return res
}

// Config returns the engine's immutable timing table.
func (e *Engine) Config() *Config { return e.cfg }

// Counter0 returns the current within-trial sample index.
func (e *Engine) Counter0() int { return e.counter0 }

// PatternOffset returns the current index into the pattern buffer.
func (e *Engine) PatternOffset() int { return e.patternOffset }

// Jitter returns the most recent adapter-ISI jitter draw (0 until a
// '.' byte has been decoded at least once).
func (e *Engine) Jitter() int { return e.jitter }

// CurrentPatternByte returns the pattern byte most recently decoded
// at a trial boundary, e.g. for session-log histogram rows.
func (e *Engine) CurrentPatternByte() byte {
	off := e.patternOffset - 1
	if off < 0 {
		off = len(e.pattern) - 1
	}
	return e.pattern[off]
}

// AudioActive reports the current state of the audio output gate.
func (e *Engine) AudioActive() bool { return e.audioActive }

// TriggerActive reports the current state of the trigger output gate.
func (e *Engine) TriggerActive() bool { return e.triggerActive }

// SetTriggerActive allows the command channel (§6) to flip the
// trigger gate independently of Start/Stop/Pause/Resume, e.g. to
// silence trigger output mid-run without pausing audio.
func (e *Engine) SetTriggerActive(active bool) { e.triggerActive = active }
