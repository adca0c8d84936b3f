// Package expconfig loads the experiment descriptor a run is launched
// from: sample rate, paradigm variant, pattern buffer, loop flag, and
// RNG seeds. Grounded on the teacher's deviceid.go, which reads a
// small auxiliary YAML file (tocalls.yaml) with gopkg.in/yaml.v3; this
// generalizes that to a fully-typed descriptor via struct tags rather
// than an untyped map, since the engine's own §3 invariants demand the
// fields actually be right, not just present.
package expconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eeglab/adapterprobe/internal/engine"
	"github.com/eeglab/adapterprobe/internal/hwreg"
)

// Experiment is the on-disk shape of one experiment descriptor.
type Experiment struct {
	SampleRate  int    `yaml:"sample_rate"`
	VariantName string `yaml:"variant"`
	Pattern     string `yaml:"pattern"`
	Loop        bool   `yaml:"loop"`
	Seed1       uint64 `yaml:"seed1"`
	Seed2       uint64 `yaml:"seed2"`
}

// variantsByName maps the descriptor's variant string to the engine's
// Variant value, by the same name engine.Variant.Name already carries.
var variantsByName = map[string]engine.Variant{
	engine.JitteredAdapter.Name: engine.JitteredAdapter,
	engine.FixedAdapter850.Name: engine.FixedAdapter850,
	engine.FixedAdapter800.Name: engine.FixedAdapter800,
}

// Load reads and parses an experiment descriptor from path.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("expconfig: read %s: %w", path, err)
	}

	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("expconfig: parse %s: %w", path, err)
	}
	return &exp, nil
}

// Variant resolves the descriptor's VariantName to an engine.Variant.
func (e *Experiment) Variant() (engine.Variant, error) {
	v, ok := variantsByName[e.VariantName]
	if !ok {
		return engine.Variant{}, fmt.Errorf("expconfig: unknown variant %q", e.VariantName)
	}
	return v, nil
}

// NewEngine builds a ready-to-run engine.Engine from the descriptor
// and the supplied output registers.
func (e *Experiment) NewEngine(registers hwreg.Registers) (*engine.Engine, error) {
	v, err := e.Variant()
	if err != nil {
		return nil, err
	}

	cfg, err := engine.New(e.SampleRate, v)
	if err != nil {
		return nil, fmt.Errorf("expconfig: build config: %w", err)
	}

	eng, err := engine.NewEngine(cfg, []byte(e.Pattern), e.Loop, registers, e.Seed1, e.Seed2)
	if err != nil {
		return nil, fmt.Errorf("expconfig: build engine: %w", err)
	}
	return eng, nil
}
