// Command adapterprobe-bench runs the engine for N ticks against a
// given pattern and dumps a CSV of (counter0, dac0, dac1, trigger) to
// stdout, with no hardware required. In the spirit of the teacher's
// cmd/gen_tone: a quick standalone program for exercising one piece of
// the stack offline.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/eeglab/adapterprobe/internal/engine"
	"github.com/eeglab/adapterprobe/internal/hwreg"
)

func main() {
	var sampleRate = pflag.IntP("sample-rate", "r", 1000, "Sample rate in Hz.")
	var variantName = pflag.StringP("variant", "v", engine.FixedAdapter800.Name, "Paradigm variant: jittered, fixed-850ms, fixed-800ms.")
	var pattern = pflag.StringP("pattern", "p", "K", "Pattern buffer (A-L, @, .).")
	var loop = pflag.BoolP("loop", "l", true, "Loop the pattern buffer.")
	var ticks = pflag.IntP("ticks", "n", 4000, "Number of ticks to run.")
	var seed1 = pflag.Uint64P("seed1", "1", 1, "First jitter RNG seed.")
	var seed2 = pflag.Uint64P("seed2", "2", 2, "Second jitter RNG seed.")
	pflag.Parse()

	variant, err := variantByName(*variantName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := engine.New(*sampleRate, variant)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adapterprobe-bench:", err)
		os.Exit(1)
	}

	eng, err := engine.NewEngine(cfg, []byte(*pattern), *loop, hwreg.Registers{}, *seed1, *seed2)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adapterprobe-bench:", err)
		os.Exit(1)
	}
	eng.Start()

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"counter0", "dac0", "dac1", "trigger_code"}); err != nil {
		fmt.Fprintln(os.Stderr, "adapterprobe-bench:", err)
		os.Exit(1)
	}

	for i := 0; i < *ticks; i++ {
		res := eng.Tick()
		trig := ""
		if res.TriggerFired {
			trig = strconv.Itoa(int(res.TriggerCode))
		}
		row := []string{strconv.Itoa(res.Counter0), strconv.Itoa(res.DAC0), strconv.Itoa(res.DAC1), trig}
		if err := w.Write(row); err != nil {
			fmt.Fprintln(os.Stderr, "adapterprobe-bench:", err)
			os.Exit(1)
		}
	}
}

func variantByName(name string) (engine.Variant, error) {
	switch name {
	case engine.JitteredAdapter.Name:
		return engine.JitteredAdapter, nil
	case engine.FixedAdapter850.Name:
		return engine.FixedAdapter850, nil
	case engine.FixedAdapter800.Name:
		return engine.FixedAdapter800, nil
	default:
		return engine.Variant{}, fmt.Errorf("adapterprobe-bench: unknown variant %q", name)
	}
}
