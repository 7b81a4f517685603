package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/intcode"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.Equal(10000, cfg.Machine.MemorySize)
	assert.Equal(10000, cfg.Machine.StepLimit)
	assert.False(cfg.Machine.Verbose)
	assert.Equal(int64(0), cfg.Pipeline.PhaseBase)
	assert.Equal(5, cfg.Pipeline.PhaseCount)
	assert.False(cfg.Pipeline.Feedback)
	assert.NoError(cfg.Validate())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	text := []string{
		"[machine]",
		"memory-size = 2048",
		"verbose = true",
		"",
		"[pipeline]",
		"phase-base = 5",
		"feedback = true",
		"",
		"[assembler.define]",
		"NOUN = \"12\"",
		"VERB = \"$(NOUN + 1)\"",
	}

	cfg, err := Parse(strings.Join(text, "\n"))
	assert.NoError(err)
	assert.Equal(2048, cfg.Machine.MemorySize)
	assert.Equal(10000, cfg.Machine.StepLimit)
	assert.True(cfg.Machine.Verbose)
	assert.Equal(int64(5), cfg.Pipeline.PhaseBase)
	assert.Equal(5, cfg.Pipeline.PhaseCount)
	assert.True(cfg.Pipeline.Feedback)
	assert.Equal(map[string]string{"NOUN": "12", "VERB": "$(NOUN + 1)"}, cfg.Assembler.Define)

	cfg, err = Parse("")
	assert.NoError(err)
	assert.Equal(Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("[machine]\nmemory-size = 0\n")
	assert.Equal(ErrMemorySize, err)

	_, err = Parse("[machine]\nstep-limit = -1\n")
	assert.Equal(ErrStepLimit, err)

	_, err = Parse("[pipeline]\nphase-count = -1\n")
	assert.Equal(ErrPhaseCount, err)

	_, err = Parse("[machine]\nmemory = 10\n[cpu]\nticks = 1\n")
	assert.True(errors.Is(err, ErrUnknownKey{}))
	var unknown ErrUnknownKey
	if assert.True(errors.As(err, &unknown)) {
		assert.Contains([]string(unknown), "machine.memory")
		assert.Contains([]string(unknown), "cpu.ticks")
	}

	_, err = Parse("[machine\n")
	assert.Error(err)

	_, err = Parse("[machine]\nmemory-size = \"big\"\n")
	assert.Error(err)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, FILENAME)
	err := os.WriteFile(path, []byte("[machine]\nstep-limit = 50\n"), 0o644)
	assert.NoError(err)

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(50, cfg.Machine.StepLimit)
	assert.Equal(path, cfg.Path)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(errors.Is(err, os.ErrNotExist))
	var cerr *ErrConfig
	if assert.True(errors.As(err, &cerr)) {
		assert.Equal(filepath.Join(dir, "missing.toml"), cerr.Path)
	}

	bad := filepath.Join(dir, "bad.toml")
	assert.NoError(os.WriteFile(bad, []byte("[machine]\nmemory-size = -5\n"), 0o644))
	_, err = Load(bad)
	assert.True(errors.Is(err, ErrMemorySize))
}

func TestFind(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	assert.NoError(os.MkdirAll(deep, 0o755))

	path, err := Find(deep)
	assert.NoError(err)
	if path != "" {
		// A configuration above the temporary directory.
		assert.False(strings.HasPrefix(path, root))
	}

	want := filepath.Join(root, "a", FILENAME)
	assert.NoError(os.WriteFile(want, []byte(""), 0o644))

	path, err = Find(deep)
	assert.NoError(err)
	assert.Equal(want, path)

	path, err = Find(filepath.Join(root, "a"))
	assert.NoError(err)
	assert.Equal(want, path)
}

func TestConfig_New(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.Machine.MemorySize = 64
	cfg.Machine.StepLimit = 20
	cfg.Assembler.Define = map[string]string{"BUF": "60"}

	m := cfg.NewMachine([]int64{1105, 1, 0})
	assert.Equal(64, m.Memory.Len())
	assert.True(errors.Is(m.Run(), intcode.ErrStepLimit))
	assert.Equal(20, m.Steps)

	asm := cfg.NewAssembler()
	prog, err := asm.Parse(strings.NewReader(".data BUF, MEMORY_SIZE"))
	assert.NoError(err)
	assert.Equal([]int64{60, 64}, prog.Binary())

	pl := cfg.NewPipeline()
	assert.Equal(64, pl.MemorySize)
	assert.Equal(20, pl.StepLimit)
	assert.False(pl.Verbose)
}

func TestConfig_Defines(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	cfg.Assembler.Define = map[string]string{"MEMORY_SIZE": "5", "NOUN": "12"}

	var keys []string
	values := map[string]string{}
	for equ, value := range cfg.Defines() {
		keys = append(keys, equ)
		values[equ] = value
	}

	assert.Equal("MEMORY_SIZE", keys[0])
	assert.Equal(3, len(keys))
	assert.Equal(map[string]string{"MEMORY_SIZE": "5", "NOUN": "12"}, values)
}
