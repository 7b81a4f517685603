package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/memory"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	const (
		P = memory.MODE_POSITION
		I = memory.MODE_IMMEDIATE
		R = memory.MODE_RELATIVE
	)

	table := [](struct {
		word  int64
		op    Op
		modes []memory.Mode
	}){
		{1, OP_ADD, []memory.Mode{P, P, P}},
		{1002, OP_MUL, []memory.Mode{P, I, P}},
		{21101, OP_ADD, []memory.Mode{I, I, R}},
		{3, OP_IN, []memory.Mode{P}},
		{203, OP_IN, []memory.Mode{R}},
		{104, OP_OUT, []memory.Mode{I}},
		{1105, OP_JT, []memory.Mode{I, I}},
		{2006, OP_JF, []memory.Mode{P, R}},
		{1207, OP_LT, []memory.Mode{R, I, P}},
		{108, OP_EQ, []memory.Mode{I, P, P}},
		{109, OP_ARB, []memory.Mode{I}},
		{99, OP_HALT, nil},
		// Mode digits beyond the arity are ignored.
		{1104, OP_OUT, []memory.Mode{I}},
		{2299, OP_HALT, nil},
	}

	for _, entry := range table {
		inst, err := Decode(entry.word)
		assert.NoError(err, entry.word)
		assert.Equal(entry.op, inst.Op, entry.word)
		assert.Equal(entry.modes, inst.Modes, entry.word)
		assert.Equal(entry.op.Arity(), len(inst.Modes), entry.word)
	}
}

func TestDecode_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []int64{0, 10, 98, 100, -1, -99, 1000} {
		_, err := Decode(word)
		assert.Equal(ErrOpcodeInvalid, err, word)
	}

	for _, word := range []int64{301, 3001, 30001, 904, 4005} {
		_, err := Decode(word)
		assert.Equal(ErrOpcodeMode, err, word)
	}
}

func TestOp(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    Op
		name  string
		arity int
		dst   int
	}){
		{OP_ADD, "add", 3, 2},
		{OP_MUL, "mul", 3, 2},
		{OP_IN, "in", 1, 0},
		{OP_OUT, "out", 1, -1},
		{OP_JT, "jt", 2, -1},
		{OP_JF, "jf", 2, -1},
		{OP_LT, "lt", 3, 2},
		{OP_EQ, "eq", 3, 2},
		{OP_ARB, "arb", 1, -1},
		{OP_HALT, "halt", 0, -1},
	}

	for _, entry := range table {
		assert.True(entry.op.Valid(), entry.name)
		assert.Equal(entry.name, entry.op.String())
		assert.Equal(entry.arity, entry.op.Arity(), entry.name)
		assert.Equal(int64(entry.arity+1), entry.op.Width(), entry.name)
		assert.Equal(entry.dst, entry.op.Destination(), entry.name)
	}

	assert.False(Op(42).Valid())
	assert.Equal("Op(42)", Op(42).String())
	assert.Equal(-1, Op(42).Destination())
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int64(1002), Encode(OP_MUL, memory.MODE_POSITION, memory.MODE_IMMEDIATE, memory.MODE_POSITION))
	assert.Equal(int64(21101), Encode(OP_ADD, memory.MODE_IMMEDIATE, memory.MODE_IMMEDIATE, memory.MODE_RELATIVE))
	assert.Equal(int64(204), Encode(OP_OUT, memory.MODE_RELATIVE))
	assert.Equal(int64(99), Encode(OP_HALT))

	inst, err := Decode(1207)
	assert.NoError(err)
	assert.Equal(int64(1207), inst.Word())
	assert.Equal("lt.relative.immediate.position", inst.String())
}

func FuzzDecode(f *testing.F) {
	for _, word := range []int64{1, 99, 1002, 21101, 203, 301, -5, 0, 1125899906842624} {
		f.Add(word)
	}

	f.Fuzz(func(t *testing.T, word int64) {
		assert := assert.New(t)

		inst, err := Decode(word)
		if err != nil {
			assert.Contains([]error{ErrOpcodeInvalid, ErrOpcodeMode}, err)
			return
		}

		assert.True(inst.Op.Valid())
		assert.Equal(inst.Op.Arity(), len(inst.Modes))
		for _, mode := range inst.Modes {
			assert.True(mode.Valid())
		}

		again, err := Decode(inst.Word())
		assert.NoError(err)
		assert.Equal(inst, again)

		// Any decodable word executes to a state without a Go panic.
		m := NewMachineSize([]int64{word, 0, 0, 0, 99}, 8)
		m.StepLimit = 16
		_ = m.Run()
	})
}
