package intcode

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/intcode/channel"
	"github.com/ezrec/intcode/memory"
)

const (
	DEFAULT_STEP_LIMIT = 10000 // Instructions executed per Run before giving up.
)

// Machine is the execution context of a single IntCode program.
type Machine struct {
	Verbose   bool // Set to enable verbose logging.
	StepLimit int  // Instructions per Run. Zero selects DEFAULT_STEP_LIMIT.

	Memory       *memory.Memory  // Memory tape.
	Ip           int64           // Current instruction pointer.
	RelativeBase int64           // Relative base register.
	Input        *channel.Stream // Input stream.
	Output       *channel.Stream // Output stream.
	State        State           // Execution state.
	Fault        error           // Fault that moved the machine into STATE_PANIC.

	Steps int // Instructions executed since construction or reset.

	program []int64
}

// NewMachine creates a machine with program loaded into a memory of
// memory.DEFAULT_SIZE cells.
func NewMachine(program []int64) *Machine {
	return NewMachineSize(program, memory.DEFAULT_SIZE)
}

// NewMachineSize creates a machine with program loaded into a memory of at
// least size cells.
func NewMachineSize(program []int64, size int) (m *Machine) {
	m = &Machine{
		Memory:  memory.NewMemory(program, size),
		Input:   channel.NewStream(),
		Output:  channel.NewStream(),
		program: slices.Clone(program),
	}

	return
}

// Reset reloads the original program, and clears the registers, streams,
// and statistics.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("intcode: reset")
	}

	m.Memory.Load(m.program)
	m.Ip = 0
	m.RelativeBase = 0
	m.State = STATE_READY
	m.Fault = nil
	m.Steps = 0
	m.Input.Reset()
	m.Output.Reset()
}

// AttachInput replaces the input stream.
func (m *Machine) AttachInput(input *channel.Stream) {
	if input == nil {
		input = channel.NewStream()
	}
	m.Input = input
}

// IsHalted returns true once a halt instruction has executed.
func (m *Machine) IsHalted() bool {
	return m.State == STATE_HALTED
}

// IsWaiting returns true if the machine is suspended waiting for input.
func (m *Machine) IsWaiting() bool {
	return m.State == STATE_WAITING
}

// DumpMemory returns an independent snapshot of memory.
func (m *Machine) DumpMemory() *memory.Memory {
	return m.Memory.Clone()
}

// DumpOutput returns an independent snapshot of the output stream, with its
// read position at the first value ever written.
func (m *Machine) DumpOutput() (output *channel.Stream) {
	output = m.Output.Snapshot()
	output.Rewind()
	return
}

// ClearOutput resets the live output stream.
func (m *Machine) ClearOutput() {
	m.Output.Reset()
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{"ip", "base", "state", "steps", "input", "output"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%06d", m.Ip)
			if word, err := m.Memory.Read(m.Ip); err == nil {
				if inst, err := Decode(word); err == nil {
					strval += " " + inst.String()
				}
			}
		case "base":
			strval = fmt.Sprintf("%06d", m.RelativeBase)
		case "state":
			strval = m.State.String()
			if m.Fault != nil {
				strval += " " + m.Fault.Error()
			}
		case "steps":
			strval = fmt.Sprintf("%d", m.Steps)
		case "input":
			strval = fmt.Sprintf("%d/%d", m.Input.ReadIndex, m.Input.WriteIndex)
		case "output":
			strval = fmt.Sprintf("%d/%d", m.Output.ReadIndex, m.Output.WriteIndex)
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// operand reads the value of operand n of the instruction at ip.
func (m *Machine) operand(ip int64, inst Instruction, n int) (value int64, err error) {
	return m.Memory.ReadMode(ip+1+int64(n), m.RelativeBase, inst.Modes[n])
}

// destination resolves the address written by operand n of the instruction at ip.
func (m *Machine) destination(ip int64, inst Instruction, n int) (addr int64, err error) {
	return m.Memory.Address(ip+1+int64(n), m.RelativeBase, inst.Modes[n])
}

// operands reads the values of the first count operands.
func (m *Machine) operands(ip int64, inst Instruction, count int) (values []int64, err error) {
	values = make([]int64, count)
	for n := range count {
		values[n], err = m.operand(ip, inst, n)
		if err != nil {
			err = fmt.Errorf("%v: %w", f("operand %d", n+1), err)
			return
		}
	}

	return
}

// fail moves the machine into the panic state.
func (m *Machine) fail(ip int64, word int64, err error) error {
	m.State = STATE_PANIC
	m.Fault = &ErrOpcode{Ip: ip, Word: word, Err: err}

	if m.Verbose {
		log.Printf("intcode: %v", m.Fault)
	}

	return m.Fault
}

// Step executes a single instruction.
//
// A waiting machine retries its pending input instruction. A halted
// machine returns ErrHalted; a panicked machine returns its fault.
func (m *Machine) Step() (err error) {
	switch m.State {
	case STATE_HALTED:
		err = ErrHalted
		return
	case STATE_PANIC:
		err = m.Fault
		return
	case STATE_WAITING:
		m.State = STATE_READY
	}

	ip := m.Ip

	word, err := m.Memory.Read(ip)
	if err != nil {
		return m.fail(ip, word, err)
	}

	inst, err := Decode(word)
	if err != nil {
		return m.fail(ip, word, err)
	}

	if m.Verbose {
		log.Printf("intcode: %06d: %v", ip, inst)
	}

	next := ip + inst.Op.Width()

	switch inst.Op {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var args []int64
		args, err = m.operands(ip, inst, 2)
		if err != nil {
			break
		}
		var dst int64
		dst, err = m.destination(ip, inst, 2)
		if err != nil {
			break
		}
		a, b := args[0], args[1]
		var result int64
		switch inst.Op {
		case OP_ADD:
			result = a + b
		case OP_MUL:
			result = a * b
		case OP_LT:
			if a < b {
				result = 1
			}
		case OP_EQ:
			if a == b {
				result = 1
			}
		}
		err = m.Memory.Write(dst, result)
	case OP_IN:
		var dst int64
		dst, err = m.destination(ip, inst, 0)
		if err != nil {
			break
		}
		var value int64
		value, err = m.Input.TryRead()
		if errors.Is(err, channel.ErrNoData) {
			// Suspend without advancing; Run will retry.
			if m.Verbose {
				log.Printf("intcode: %06d: waiting for input", ip)
			}
			m.State = STATE_WAITING
			err = nil
			return
		}
		if err != nil {
			err = errors.Join(ErrInputClosed, err)
			break
		}
		err = m.Memory.Write(dst, value)
	case OP_OUT:
		var value int64
		value, err = m.operand(ip, inst, 0)
		if err != nil {
			break
		}
		m.Output.Write(value)
	case OP_JT, OP_JF:
		var args []int64
		args, err = m.operands(ip, inst, 2)
		if err != nil {
			break
		}
		if (args[0] != 0) == (inst.Op == OP_JT) {
			next = args[1]
		}
	case OP_ARB:
		var delta int64
		delta, err = m.operand(ip, inst, 0)
		if err != nil {
			break
		}
		m.RelativeBase += delta
	case OP_HALT:
		m.State = STATE_HALTED
		m.Steps++
		if m.Verbose {
			log.Printf("intcode: %06d: halted after %d steps", ip, m.Steps)
		}
		return
	default:
		err = ErrOpcodeInvalid
	}

	if err != nil {
		return m.fail(ip, word, err)
	}

	m.Ip = next
	m.Steps++

	return
}

// Run executes instructions until the machine halts or waits for input.
// Both are normal returns. More than StepLimit instructions in a single Run
// returns ErrStepLimit; the machine remains ready, and may be Run again.
func (m *Machine) Run() (err error) {
	limit := m.StepLimit
	if limit <= 0 {
		limit = DEFAULT_STEP_LIMIT
	}

	for steps := 0; ; steps++ {
		if m.State == STATE_HALTED {
			return
		}
		if steps >= limit {
			err = ErrStepLimit
			return
		}

		err = m.Step()
		if err != nil {
			return
		}

		if m.State == STATE_WAITING {
			return
		}
	}
}
