package engine

// AmpOppchn is the signed DAC value representing the "high" phase of
// a click (§4.3, GLOSSARY). Both channels are full-scale 16-bit
// samples; the name is kept from the source paradigm ("opposite
// channel" amplitude) because it is what the hardware register
// surface and test fixtures refer to it as.
const AmpOppchn = 32767

// mod is floor-mod: C's truncating % can go negative for negative
// operands, but every local offset fed to it here is non-negative in
// practice because it is only evaluated inside an active window
// (counter0 >= anchor). Kept as floor-mod defensively rather than
// relying on that.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// clickValue is the click-phase computation of §4.3: "hi" iff the
// local offset modulo click_period falls inside hi_period.
func clickValue(localOffset, clickPeriod, hiPeriod int) int {
	if mod(localOffset, clickPeriod) < hiPeriod {
		return AmpOppchn
	}
	return 0
}

// adapterCenterLocalOffset reproduces, character for character, the
// ambiguous expression from the original kernel source for the
// center-adapter click phase:
//
//	stim_local_offset = counter0 - stim_instant % probe_period
//
// Under standard operator precedence this is counter0 minus
// (stim_instant mod probe_period), not (counter0 minus stim_instant)
// mod probe_period. spec.md §9 leaves it an open question whether
// that was intentional; per its own instruction ("must reproduce the
// source expression exactly unless the ambiguity is resolved") this
// implementation keeps the literal reading rather than "fixing" it.
func (c *Config) adapterCenterLocalOffset(counter0 int) int {
	return counter0 - c.StimInstant%c.ProbePeriod
}

// computeDAC runs the adapter stage and then the probe stage, in
// that order: the probe stage overwrites whatever the adapter stage
// wrote inside the probe's own active window (§4.3/§9, "probe writes
// last"). Each stage only touches a channel inside the window it
// actually tests; outside of it, the channel keeps whatever the
// previous stage left (0, at the very start of the tick).
func (c *Config) computeDAC(counter0 int, t trial, r regions) (dac0, dac1 int) {
	_, leadA, lagA := c.adapterAnchors()

	switch t.AdapterType {
	case Center:
		if r.AdapterCenter {
			v := clickValue(c.adapterCenterLocalOffset(counter0), c.ClickPeriod, c.HiPeriod)
			dac0, dac1 = v, v
		}
	case LeftLead:
		if r.AdapterLead {
			dac0 = clickValue(counter0-leadA, c.ClickPeriod, c.HiPeriod)
		}
		if r.AdapterLag {
			dac1 = clickValue(counter0-lagA, c.ClickPeriod, c.HiPeriod)
		}
	case RightLead:
		if r.AdapterLead {
			dac1 = clickValue(counter0-leadA, c.ClickPeriod, c.HiPeriod)
		}
		if r.AdapterLag {
			dac0 = clickValue(counter0-lagA, c.ClickPeriod, c.HiPeriod)
		}
	}

	_, leadP, lagP := c.probeAnchors(t.ProbeITD)

	switch t.ProbeType {
	case Center:
		if r.ProbeCenter {
			lo := counter0 - c.StimInstant - c.APOffset
			v := clickValue(lo, c.ClickPeriod, c.HiPeriod)
			dac0, dac1 = v, v
		}
	case LeftLead:
		if r.ProbeLead {
			dac0 = clickValue(counter0-leadP, c.ClickPeriod, c.HiPeriod)
		}
		if r.ProbeLag {
			dac1 = clickValue(counter0-lagP, c.ClickPeriod, c.HiPeriod)
		}
	case RightLead:
		if r.ProbeLead {
			dac1 = clickValue(counter0-leadP, c.ClickPeriod, c.HiPeriod)
		}
		if r.ProbeLag {
			dac0 = clickValue(counter0-lagP, c.ClickPeriod, c.HiPeriod)
		}
	}

	return dac0, dac1
}

// triggerInstant is the one sample offset per trial (§4.3) at which
// the trigger code is written: stim_instant_center + ap_offset.
func (c *Config) triggerInstant() int {
	return c.StimInstant + c.APOffset
}
