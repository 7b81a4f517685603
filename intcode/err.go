package intcode

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrHalted      = errors.New(f("machine halted"))
	ErrStepLimit   = errors.New(f("step limit exceeded, probably stuck in a loop"))
	ErrInputClosed = errors.New(f("input closed"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrOpcodeMode    = errors.New(f("parameter mode invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandDestination = errors.New(f("destination cannot be immediate"))
	ErrOperandSyntax      = errors.New(f("operand syntax"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode is a fault raised while executing the instruction at Ip.
type ErrOpcode struct {
	Ip   int64
	Word int64
	Err  error
}

func (err *ErrOpcode) Error() string {
	return f("ip %v opcode %v: %v", err.Ip, err.Word, err.Err)
}

func (err *ErrOpcode) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrProgramSyntax is an unparseable cell in program text.
type ErrProgramSyntax struct {
	Index int
	Text  string
}

func (err *ErrProgramSyntax) Error() string {
	return f("cell %d '%v' is not a number", err.Index, err.Text)
}
