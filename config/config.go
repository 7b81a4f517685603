// Package config handles intcode.toml machine configuration.
package config

import (
	"iter"
	"maps"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/memory"
	"github.com/ezrec/intcode/pipeline"
)

// FILENAME is the configuration file searched for by Find.
const FILENAME = "intcode.toml"

// Config is an intcode.toml configuration.
type Config struct {
	Machine   Machine   `toml:"machine"`
	Pipeline  Pipeline  `toml:"pipeline"`
	Assembler Assembler `toml:"assembler"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Machine configures every machine created.
type Machine struct {
	MemorySize int  `toml:"memory-size"`
	StepLimit  int  `toml:"step-limit"`
	Verbose    bool `toml:"verbose"`
}

// Pipeline configures the amplifier phase search.
type Pipeline struct {
	PhaseBase  int64 `toml:"phase-base"`
	PhaseCount int   `toml:"phase-count"`
	Feedback   bool  `toml:"feedback"`
}

// Assembler configures the assembler.
type Assembler struct {
	Define map[string]string `toml:"define"` // Predefined equates.
}

// Default returns the default configuration.
func Default() (cfg *Config) {
	cfg = &Config{
		Machine: Machine{
			MemorySize: memory.DEFAULT_SIZE,
			StepLimit:  intcode.DEFAULT_STEP_LIMIT,
		},
		Pipeline: Pipeline{
			PhaseBase:  0,
			PhaseCount: 5,
		},
	}

	return
}

// Validate checks the configuration values.
func (cfg *Config) Validate() (err error) {
	switch {
	case cfg.Machine.MemorySize <= 0:
		err = ErrMemorySize
	case cfg.Machine.StepLimit <= 0:
		err = ErrStepLimit
	case cfg.Pipeline.PhaseCount < 0:
		err = ErrPhaseCount
	}

	return
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrUnknownKey, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = keys
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Load reads a configuration file.
func Load(path string) (cfg *Config, err error) {
	defer func() {
		if err != nil {
			err = &ErrConfig{Path: path, Err: err}
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg, err = Parse(string(data))
	if err != nil {
		return
	}

	cfg.Path, err = filepath.Abs(path)
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Find walks up from dir looking for FILENAME. Returns an empty path if
// none is found.
func Find(dir string) (path string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return
	}

	for {
		candidate := filepath.Join(dir, FILENAME)
		if _, serr := os.Stat(candidate); serr == nil {
			path = candidate
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// NewMachine creates a machine with program, as configured.
func (cfg *Config) NewMachine(program []int64) (m *intcode.Machine) {
	m = intcode.NewMachineSize(program, cfg.Machine.MemorySize)
	m.StepLimit = cfg.Machine.StepLimit
	m.Verbose = cfg.Machine.Verbose
	return
}

// Defines returns an iterator over the assembler predefines, with the
// machine equates first.
func (cfg *Config) Defines() iter.Seq2[string, string] {
	machine := map[string]string{
		"MEMORY_SIZE": strconv.Itoa(cfg.Machine.MemorySize),
	}

	return internal.IterSeq2Concat(maps.All(machine), maps.All(cfg.Assembler.Define))
}

// NewAssembler creates an assembler with the configured predefines.
func (cfg *Config) NewAssembler() (asm *intcode.Assembler) {
	asm = &intcode.Assembler{Verbose: cfg.Machine.Verbose}
	for equ, value := range cfg.Defines() {
		asm.Predefine(equ, value)
	}
	return
}

// NewPipeline creates a pipeline, as configured.
func (cfg *Config) NewPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Verbose:    cfg.Machine.Verbose,
		StepLimit:  cfg.Machine.StepLimit,
		MemorySize: cfg.Machine.MemorySize,
	}
}
