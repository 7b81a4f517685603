package pipeline

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrPhases   = errors.New(f("no phases"))
	ErrNoOutput = errors.New(f("no output"))
	ErrStalled  = errors.New(f("feedback loop stalled"))
	ErrNotFound = errors.New(f("no inputs produce the target"))
)

// ErrStage indicates the pipeline stage of an error.
type ErrStage struct {
	Stage int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d %v", err.Stage, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}
