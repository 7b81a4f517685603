// Package intcode implements the IntCode virtual machine, and an
// assembler and disassembler for its instruction set.
//
// A Machine executes one instruction at a time against a flat memory tape
// (see package memory), reading input from and writing output to data
// streams (see package channel). Execution suspends, without error, when an
// input instruction finds no data; the driver writes more input and calls
// Run again. Halting is permanent. Decode and addressing faults leave the
// machine in the panic state and are returned from every later Step or Run.
//
// The assembler provides a small assembly language for IntCode, supporting
// labels, equates, and compile-time $(...) expressions evaluated with
// starlark.
package intcode
