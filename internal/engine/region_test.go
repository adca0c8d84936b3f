package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterWindow_ShortBurstThenLongBurst(t *testing.T) {
	var cfg, err = New(1000, JitteredAdapter)
	require.NoError(t, err)

	var anchor = cfg.StimInstant

	// Inside the initial-burst phase (before adapter_burst_start), the
	// active fraction of each iai cycle is adapter_period0.
	assert.True(t, cfg.adapterWindow(anchor, anchor, 900))
	assert.True(t, cfg.adapterWindow(anchor+cfg.AdapterPeriod0-1, anchor, 900))
	assert.False(t, cfg.adapterWindow(anchor+cfg.AdapterPeriod0, anchor, 900))

	// Past adapter_burst_start, the active fraction widens to
	// adapter_period1 (the long-burst phase). adapter_period1 equals iai
	// here, so the long-burst phase has no gap until the duration ends.
	var longBurstStart = anchor + cfg.AdapterBurstStart
	assert.True(t, cfg.adapterWindow(longBurstStart, anchor, 900))
	assert.True(t, cfg.adapterWindow(longBurstStart+cfg.AdapterPeriod1-1, anchor, 900))
	assert.True(t, cfg.adapterWindow(longBurstStart+cfg.AdapterPeriod1, anchor, 900))
}

func TestAdapterWindow_FalseOutsideDuration(t *testing.T) {
	var cfg, err = New(1000, FixedAdapter800)
	require.NoError(t, err)

	var anchor = cfg.StimInstant
	var end = cfg.adapterEnd(0)

	assert.False(t, cfg.adapterWindow(anchor-1, anchor, end))
	assert.True(t, cfg.adapterWindow(anchor+end-1, anchor, end), "last sample of the duration must still be in window")
	assert.False(t, cfg.adapterWindow(anchor+end, anchor, end))
}

func TestProbeWindow_ContiguousRange(t *testing.T) {
	var cfg, err = New(1000, FixedAdapter800)
	require.NoError(t, err)

	var anchor = cfg.StimInstant + cfg.APOffset

	assert.False(t, cfg.probeWindow(anchor-1, anchor))
	assert.True(t, cfg.probeWindow(anchor, anchor))
	assert.True(t, cfg.probeWindow(anchor+cfg.ProbePeriod-1, anchor))
	assert.False(t, cfg.probeWindow(anchor+cfg.ProbePeriod, anchor))
}

func TestEvaluateRegions_OutsideAnyWindowIsAllFalse(t *testing.T) {
	var cfg, err = New(1000, FixedAdapter800)
	require.NoError(t, err)

	var tr = trialTable['A']
	var r = cfg.evaluateRegions(cfg.SOA-1, tr, 0)

	assert.False(t, r.AdapterCenter)
	assert.False(t, r.AdapterLead)
	assert.False(t, r.AdapterLag)
	assert.False(t, r.ProbeCenter)
	assert.False(t, r.ProbeLead)
	assert.False(t, r.ProbeLag)
}

func TestAdapterAnchors_AlwaysUse600usOffsetRegardlessOfTrialITD(t *testing.T) {
	var cfg, err = New(50000, JitteredAdapter)
	require.NoError(t, err)

	var _, lead600, lag600 = cfg.adapterAnchors()

	// Trial 'B' selects the 200us probe ITD, but the adapter anchors
	// must still be the 600us ones (spec.md §4.2).
	var trialB = trialTable['B']
	var r = cfg.evaluateRegions(lead600, trialB, 0)
	assert.True(t, r.AdapterLead)

	var r2 = cfg.evaluateRegions(lag600, trialB, 0)
	assert.True(t, r2.AdapterLag)
}

func TestProbeAnchors_FollowTrialITD(t *testing.T) {
	var cfg, err = New(50000, JitteredAdapter)
	require.NoError(t, err)

	var trialB = trialTable['B'] // 200us ITD
	var _, lead200, _ = cfg.probeAnchors(itd200)
	var r = cfg.evaluateRegions(lead200, trialB, 0)
	assert.True(t, r.ProbeLead)

	var _, lead600, _ = cfg.probeAnchors(itd600)
	assert.NotEqual(t, lead200, lead600, "200us and 600us anchors must differ at a realistic sample rate")
}
