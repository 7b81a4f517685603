package channel

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrNoData = errors.New(f("channel empty"))
	ErrClosed = errors.New(f("channel closed"))
)

// ErrValue is an unparseable value in a tape.
type ErrValue struct {
	Index int
	Text  string
}

func (err *ErrValue) Error() string {
	return f("value %d '%v' is not a number", err.Index, err.Text)
}
