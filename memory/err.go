package memory

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrMode = errors.New(f("parameter mode invalid"))
)

// ErrAddress is an out-of-bounds or negative address.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %v out of bounds", int64(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}
