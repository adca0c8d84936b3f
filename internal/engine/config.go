// Package engine implements the Adapter-Probe clicktrain stimulus
// scheduling and sample-generation state machine. The tick routine
// (Engine.Tick) is the hard real-time hot path: it performs only
// integer arithmetic, never allocates, and never blocks.
package engine

import (
	"fmt"
	"math"
)

// Variant selects one of the three near-duplicate paradigm timings
// the original kernel modules hard-coded as separate source files
// (exp_0021a.h, exp_0021a1.h, exp_0021a2.h in original_source/).
//
// All three sibling files enable "continuous" adapter timing
// unconditionally (ap_offset = 1.0s, adapter_period1 = 4*probe_period);
// the "DISCRETE" branch spec.md §3's table also lists is dead code in
// every shipped variant, never actually selected. The three variants
// differ only in adapter_total_dur_base and whether jitter is drawn
// at all — see DESIGN.md for this Open Question resolution.
type Variant struct {
	Name string

	// AdapterTotalDurBaseSeconds is the fixed portion of the adapter
	// duration before any jitter is added.
	AdapterTotalDurBaseSeconds float64

	// AdapterTotalDurRandMax is the number of 10ms jitter steps drawn
	// on a '.' pattern byte, or 0 for no jitter.
	AdapterTotalDurRandMax int
}

var (
	// JitteredAdapter jitters adapter duration 0-90ms in 10ms steps
	// on top of a 750ms base, for a 750-840ms total.
	JitteredAdapter = Variant{Name: "jittered", AdapterTotalDurBaseSeconds: 0.75, AdapterTotalDurRandMax: 10}

	// FixedAdapter850 fixes adapter duration at 850ms, no jitter.
	FixedAdapter850 = Variant{Name: "fixed-850ms", AdapterTotalDurBaseSeconds: 0.85, AdapterTotalDurRandMax: 0}

	// FixedAdapter800 fixes adapter duration at 800ms, no jitter.
	FixedAdapter800 = Variant{Name: "fixed-800ms", AdapterTotalDurBaseSeconds: 0.80, AdapterTotalDurRandMax: 0}
)

// Config is the immutable, once-computed timing table of §3. All
// fields are sample counts at the configured sample rate so the tick
// routine never touches a float.
type Config struct {
	SampleRate int
	Variant    Variant

	SOA                    int
	APOffset               int
	ClickPeriod            int
	HiPeriod               int
	ProbePeriod            int
	AdapterPeriod0         int
	AdapterPeriod1         int
	AdapterBurstStart      int
	IAI                    int
	AdapterTotalDurBase    int
	AdapterTotalDurRandMax int
	LRDelta200             int
	LRDelta600             int
	StimInstant            int
}

// samples converts a duration in seconds to an integer sample count,
// biased the way the original fixed-point conversion was (a small
// epsilon added before the cast) so that values intended to land on
// an exact sample boundary do not round down from floating-point
// slop.
func samples(seconds float64, rate int) int {
	return int(math.Round(seconds*float64(rate) + 1e-6))
}

// New computes the timing table for one sample rate and paradigm
// variant and validates the §3 invariants. It is called once, before
// real-time entry; a non-nil error means the configuration must be
// rejected and the engine must not start.
func New(sampleRate int, variant Variant) (*Config, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("engine: sample rate must be positive, got %d", sampleRate)
	}

	var c Config
	c.SampleRate = sampleRate
	c.Variant = variant

	c.SOA = samples(4.0, sampleRate)
	c.APOffset = samples(1.0, sampleRate)
	c.ClickPeriod = samples(0.01, sampleRate)
	c.HiPeriod = samples(0.0005, sampleRate)
	c.ProbePeriod = 5 * c.ClickPeriod
	c.AdapterPeriod0 = c.ProbePeriod
	c.AdapterPeriod1 = 4 * c.ProbePeriod
	c.AdapterBurstStart = samples(0.2, sampleRate)
	c.IAI = samples(0.2, sampleRate)
	c.LRDelta200 = samples(0.0002, sampleRate)
	c.LRDelta600 = samples(0.0006, sampleRate)
	c.StimInstant = samples(0.2, sampleRate)
	c.AdapterTotalDurBase = samples(variant.AdapterTotalDurBaseSeconds, sampleRate)
	c.AdapterTotalDurRandMax = variant.AdapterTotalDurRandMax

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.StimInstant+c.APOffset+c.ProbePeriod > c.SOA {
		return fmt.Errorf("engine: probe does not fit in trial: stim_instant(%d)+ap_offset(%d)+probe_period(%d) > soa(%d)",
			c.StimInstant, c.APOffset, c.ProbePeriod, c.SOA)
	}
	if c.StimInstant < c.LRDelta600/2 {
		return fmt.Errorf("engine: stim_instant(%d) underflows lr_delta600/2(%d)", c.StimInstant, c.LRDelta600/2)
	}
	if c.HiPeriod >= c.ClickPeriod {
		return fmt.Errorf("engine: hi_period(%d) must be less than click_period(%d)", c.HiPeriod, c.ClickPeriod)
	}
	if c.AdapterTotalDurBase+c.AdapterTotalDurRandMax*c.ClickPeriod+c.APOffset > c.SOA {
		return fmt.Errorf("engine: adapter duration plus ap_offset exceeds soa")
	}
	return nil
}
