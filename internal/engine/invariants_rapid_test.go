package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genTrial draws any of the twelve named pattern bytes.
func genTrial(t *rapid.T) byte {
	var letters = []byte("ABCDEFGHIJKL")
	return letters[rapid.IntRange(0, len(letters)-1).Draw(t, "trialByte")]
}

// TestInvariant_ComputeDACNeverExceedsGateRange checks, across random
// trials/counters/jitters, that computeDAC only ever produces 0 or
// AmpOppchn on either channel (spec.md §8 invariant 1).
func TestInvariant_ComputeDACNeverExceedsGateRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var variant = [...]Variant{JitteredAdapter, FixedAdapter850, FixedAdapter800}[rapid.IntRange(0, 2).Draw(rt, "variant")]
		var cfg, err = New(1000, variant)
		require.NoError(rt, err)

		var tr = trialTable[genTrial(rt)]
		var counter0 = rapid.IntRange(0, cfg.SOA-1).Draw(rt, "counter0")
		var jitter = rapid.IntRange(0, maxInt(cfg.AdapterTotalDurRandMax-1, 0)).Draw(rt, "jitter")

		var r = cfg.evaluateRegions(counter0, tr, jitter)
		var d0, d1 = cfg.computeDAC(counter0, tr, r)

		if d0 != 0 && d0 != AmpOppchn {
			rt.Fatalf("dac0 out of gate range: %d", d0)
		}
		if d1 != 0 && d1 != AmpOppchn {
			rt.Fatalf("dac1 out of gate range: %d", d1)
		}
	})
}

// TestInvariant_CenterTrialsDriveBothChannelsEqually is spec.md §8
// invariant 2: a trial whose adapter and probe are both center-type
// must never produce differing left/right samples.
func TestInvariant_CenterTrialsDriveBothChannelsEqually(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var cfg, err = New(1000, FixedAdapter800)
		require.NoError(rt, err)

		var tr = trialTable['K'] // center/center
		var counter0 = rapid.IntRange(0, cfg.SOA-1).Draw(rt, "counter0")

		var r = cfg.evaluateRegions(counter0, tr, 0)
		var d0, d1 = cfg.computeDAC(counter0, tr, r)
		if d0 != d1 {
			rt.Fatalf("center/center trial produced differing channels at counter0=%d: %d != %d", counter0, d0, d1)
		}
	})
}

// TestInvariant_OutsideAllWindowsProducesSilence is spec.md §8
// invariant 3: if all six regions are false, computeDAC must return
// (0, 0) regardless of which trial is active.
func TestInvariant_OutsideAllWindowsProducesSilence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var cfg, err = New(1000, FixedAdapter800)
		require.NoError(rt, err)

		var tr = trialTable[genTrial(rt)]
		var d0, d1 = cfg.computeDAC(rapid.IntRange(0, cfg.SOA-1).Draw(rt, "counter0"), tr, regions{})
		if d0 != 0 || d1 != 0 {
			rt.Fatalf("computeDAC must be silent when every region is false, got (%d, %d)", d0, d1)
		}
	})
}

// TestInvariant_JitterDrawIsAlwaysInRange is spec.md §8 invariant 4:
// jitterSource.draw never returns a value outside [0, randMax), and
// returns exactly 0 for a non-jittering variant.
func TestInvariant_JitterDrawIsAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var seed1 = rapid.Uint64().Draw(rt, "seed1")
		var seed2 = rapid.Uint64().Draw(rt, "seed2")
		var randMax = rapid.IntRange(0, 50).Draw(rt, "randMax")

		var src = newJitterSource(seed1, seed2)
		var v = src.draw(randMax)

		if randMax <= 0 {
			if v != 0 {
				rt.Fatalf("draw with randMax<=0 must be 0, got %d", v)
			}
			return
		}
		if v < 0 || v >= randMax {
			rt.Fatalf("draw(%d) out of range: %d", randMax, v)
		}
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
