package config

import (
	"errors"
	"strings"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrMemorySize = errors.New(f("memory-size must be positive"))
	ErrStepLimit  = errors.New(f("step-limit must be positive"))
	ErrPhaseCount = errors.New(f("phase-count must not be negative"))
)

// ErrConfig indicates the configuration file of an error.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrUnknownKey lists configuration keys that are not understood.
type ErrUnknownKey []string

func (err ErrUnknownKey) Error() string {
	return f("unknown keys: %v", strings.Join(err, ", "))
}

func (err ErrUnknownKey) Is(target error) bool {
	_, ok := target.(ErrUnknownKey)
	return ok
}
