package intcode

// State is the execution state of a Machine.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_READY   = State(0) // ready
	STATE_WAITING = State(1) // waiting
	STATE_HALTED  = State(2) // halted
	STATE_PANIC   = State(3) // panic
)

// Terminal returns true if no further instruction can execute.
func (state State) Terminal() bool {
	return state == STATE_HALTED || state == STATE_PANIC
}
