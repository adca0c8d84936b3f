package engine

// regions holds the six boolean time windows evaluated once per tick
// from counter0 alone (§4.2). The output stage reads only the windows
// matching the trial's AdapterType/ProbeType (the center window, or
// the lead/lag pair), but all six are always computed.
type regions struct {
	AdapterCenter bool
	AdapterLead   bool
	AdapterLag    bool
	ProbeCenter   bool
	ProbeLead     bool
	ProbeLag      bool
}

// adapterAnchors returns the three adapter window anchors. Per §4.2
// these always use the 600us offsets regardless of the trial's ITD
// choice — only the probe windows follow the trial's ITD.
func (c *Config) adapterAnchors() (center, lead, lag int) {
	half := c.LRDelta600 / 2
	return c.StimInstant, c.StimInstant - half, c.StimInstant + half
}

// probeAnchors returns the three probe window anchors for the given
// trial ITD selection. For a center probe (itdNone) the lead/lag
// anchors are unused by the output stage but are returned equal to
// the center anchor for completeness.
func (c *Config) probeAnchors(t itd) (center, lead, lag int) {
	center = c.StimInstant + c.APOffset
	var half int
	switch t {
	case itd200:
		half = c.LRDelta200 / 2
	case itd600:
		half = c.LRDelta600 / 2
	default:
		return center, center, center
	}
	return center, c.StimInstant-half+c.APOffset, c.StimInstant+half+c.APOffset
}

// adapterEnd is the total adapter duration for the current trial:
// the base duration plus whatever jitter was drawn on the last '.'
// byte, in sample units.
func (c *Config) adapterEnd(jitter int) int {
	return c.AdapterTotalDurBase + jitter*c.ClickPeriod
}

// adapterWindow implements the adapter window predicate of §4.2: an
// initial short-burst phase followed by a long-burst phase, both
// repeated every iai samples until adapterEnd elapses.
func (c *Config) adapterWindow(counter0, anchor, adapterEnd int) bool {
	if counter0 < anchor || counter0 >= anchor+adapterEnd {
		return false
	}
	tau := (counter0 - anchor) % c.IAI
	if counter0 < anchor+c.AdapterBurstStart {
		return tau < c.AdapterPeriod0
	}
	return tau < c.AdapterPeriod1
}

// probeWindow implements the probe window predicate of §4.2: a
// single contiguous window of probe_period samples.
func (c *Config) probeWindow(counter0, anchor int) bool {
	return counter0 >= anchor && counter0 < anchor+c.ProbePeriod
}

// evaluateRegions computes all six windows for one tick, given the
// currently decoded trial and jitter.
func (c *Config) evaluateRegions(counter0 int, t trial, jitter int) regions {
	adapterCenterA, adapterLeadA, adapterLagA := c.adapterAnchors()
	_, probeLeadA, probeLagA := c.probeAnchors(t.ProbeITD)
	probeCenterA := c.StimInstant + c.APOffset

	end := c.adapterEnd(jitter)

	return regions{
		AdapterCenter: c.adapterWindow(counter0, adapterCenterA, end),
		AdapterLead:   c.adapterWindow(counter0, adapterLeadA, end),
		AdapterLag:    c.adapterWindow(counter0, adapterLagA, end),
		ProbeCenter:   c.probeWindow(counter0, probeCenterA),
		ProbeLead:     c.probeWindow(counter0, probeLeadA),
		ProbeLag:      c.probeWindow(counter0, probeLagA),
	}
}
