package intcode

import (
	"fmt"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// Op is an IntCode operation, the two least significant decimal digits of
// an instruction word.
type Op int

const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JT   = Op(5)  // jt
	OP_JF   = Op(6)  // jf
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_ARB  = Op(9)  // arb
	OP_HALT = Op(99) // halt
)

// opInfo describes the operand layout of an operation.
type opInfo struct {
	name  string
	arity int
	dst   int // Index of the destination operand, or -1.
}

var _op_info = map[Op]opInfo{
	OP_ADD:  {"add", 3, 2},
	OP_MUL:  {"mul", 3, 2},
	OP_IN:   {"in", 1, 0},
	OP_OUT:  {"out", 1, -1},
	OP_JT:   {"jt", 2, -1},
	OP_JF:   {"jf", 2, -1},
	OP_LT:   {"lt", 3, 2},
	OP_EQ:   {"eq", 3, 2},
	OP_ARB:  {"arb", 1, -1},
	OP_HALT: {"halt", 0, -1},
}

// Valid returns true if op is a known operation.
func (op Op) Valid() bool {
	_, ok := _op_info[op]
	return ok
}

// Arity returns the number of operands op takes.
func (op Op) Arity() int {
	return _op_info[op].arity
}

// Width returns the number of cells op occupies, including the instruction word.
func (op Op) Width() int64 {
	return int64(op.Arity()) + 1
}

// Destination returns the index of the operand op writes to, or -1 if op
// does not write memory.
func (op Op) Destination() int {
	info, ok := _op_info[op]
	if !ok {
		return -1
	}
	return info.dst
}

func (op Op) String() string {
	info, ok := _op_info[op]
	if !ok {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return info.name
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Op            // Operation.
	Modes []memory.Mode // One addressing mode per operand.
}

// Decode splits an instruction word into its operation and the addressing
// modes of its operands. Mode digits beyond the arity of the operation are
// not examined.
func Decode(word int64) (inst Instruction, err error) {
	inst.Op = Op(word % 100)
	if !inst.Op.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	arity := inst.Op.Arity()
	if arity > 0 {
		inst.Modes = make([]memory.Mode, arity)
	}

	digits := word / 100
	for n := range arity {
		mode := memory.Mode(digits % 10)
		if !mode.Valid() {
			err = ErrOpcodeMode
			return
		}
		inst.Modes[n] = mode
		digits /= 10
	}

	return
}

// Encode builds an instruction word from an operation and its operand modes.
func Encode(op Op, modes ...memory.Mode) (word int64) {
	word = int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return
}

// Word returns the instruction word encoding inst.
func (inst Instruction) Word() int64 {
	return Encode(inst.Op, inst.Modes...)
}

// String returns the instruction as op.mode.mode...
func (inst Instruction) String() string {
	words := []string{inst.Op.String()}
	for _, mode := range inst.Modes {
		words = append(words, mode.String())
	}
	return strings.Join(words, ".")
}
