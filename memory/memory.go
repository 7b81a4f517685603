// Package memory implements the flat IntCode memory tape.
//
// The tape is a fixed number of signed 64-bit cells, zero filled beyond
// whatever program is loaded into it. Operands are read through one of
// three addressing modes: immediate (the cell is the value), position (the
// cell points at the value) and relative (the cell is an offset from the
// machine's relative base).
package memory

import (
	"slices"
)

const (
	DEFAULT_SIZE = 10000 // Default number of cells in a tape.
)

// Memory is a fixed size tape of cells.
type Memory struct {
	Data []int64
}

// NewMemory creates a tape of at least size cells, holding a copy of program
// at address 0.
func NewMemory(program []int64, size int) (mem *Memory) {
	size = max(size, len(program))

	mem = &Memory{
		Data: make([]int64, size),
	}
	copy(mem.Data, program)

	return
}

// Len returns the number of addressable cells.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// check verifies that addr is addressable.
func (mem *Memory) check(addr int64) (err error) {
	if addr < 0 || addr >= int64(len(mem.Data)) {
		err = ErrAddress(addr)
	}
	return
}

// Read returns the cell at addr.
func (mem *Memory) Read(addr int64) (value int64, err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	value = mem.Data[addr]
	return
}

// Write stores value into the cell at addr.
func (mem *Memory) Write(addr int64, value int64) (err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	mem.Data[addr] = value
	return
}

// ReadIndirect reads the pointer at addr, and returns the cell it points to.
func (mem *Memory) ReadIndirect(addr int64) (value int64, err error) {
	ptr, err := mem.Read(addr)
	if err != nil {
		return
	}

	return mem.Read(ptr)
}

// ReadMode returns an operand value, with the cell at addr interpreted
// according to mode.
func (mem *Memory) ReadMode(addr int64, base int64, mode Mode) (value int64, err error) {
	switch mode {
	case MODE_IMMEDIATE:
		value, err = mem.Read(addr)
	case MODE_POSITION:
		value, err = mem.ReadIndirect(addr)
	case MODE_RELATIVE:
		var offset int64
		offset, err = mem.Read(addr)
		if err != nil {
			return
		}
		value, err = mem.Read(offset + base)
	default:
		err = ErrMode
	}

	return
}

// Address resolves a destination operand at addr into the address it names.
// Destinations are never dereferenced twice: position and immediate modes
// both name the address stored in the cell, relative mode adds base to it.
func (mem *Memory) Address(addr int64, base int64, mode Mode) (dst int64, err error) {
	dst, err = mem.Read(addr)
	if err != nil {
		return
	}

	switch mode {
	case MODE_POSITION, MODE_IMMEDIATE:
	case MODE_RELATIVE:
		dst += base
	default:
		err = ErrMode
		return
	}

	err = mem.check(dst)
	return
}

// Clear zeros every cell.
func (mem *Memory) Clear() {
	clear(mem.Data)
}

// Load clears the tape, then copies program in at address 0.
// Cells beyond the tape length are dropped.
func (mem *Memory) Load(program []int64) {
	mem.Clear()
	copy(mem.Data, program)
}

// Cells returns a copy of the first count cells. A count
// beyond the tape length, or negative, returns every cell.
func (mem *Memory) Cells(count int) []int64 {
	if count < 0 || count > len(mem.Data) {
		count = len(mem.Data)
	}
	return slices.Clone(mem.Data[:count])
}

// Clone returns an independent snapshot of the tape.
func (mem *Memory) Clone() *Memory {
	return &Memory{
		Data: slices.Clone(mem.Data),
	}
}
