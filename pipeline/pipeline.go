// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package pipeline

import (
	"log"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/memory"
)

// Pipeline connects IntCode machines, each running the same program.
type Pipeline struct {
	Verbose    bool // If set, enables verbose logging.
	StepLimit  int  // Step limit of each machine Run. Zero selects the default.
	MemorySize int  // Memory size of each machine. Zero selects the default.
}

// machine creates a new machine for program.
func (pl *Pipeline) machine(program []int64) (m *intcode.Machine) {
	size := pl.MemorySize
	if size <= 0 {
		size = memory.DEFAULT_SIZE
	}

	m = intcode.NewMachineSize(program, size)
	m.Verbose = pl.Verbose
	m.StepLimit = pl.StepLimit

	return
}

// drain removes every output of a machine, returning the values.
func drain(m *intcode.Machine) (values []int64) {
	values = m.Output.ReadAll()
	m.ClearOutput()
	return
}

// Series runs one machine per phase in a chain. Each machine receives its
// phase, then the last output of the machine before it; the first receives
// a signal of 0. Returns the last output of the final machine.
func (pl *Pipeline) Series(program []int64, phases []int64) (signal int64, err error) {
	if len(phases) == 0 {
		err = ErrPhases
		return
	}

	for n, phase := range phases {
		m := pl.machine(program)
		m.Input.Write(phase)
		m.Input.Write(signal)

		err = m.Run()
		if err != nil {
			err = &ErrStage{Stage: n, Err: err}
			return
		}

		output := drain(m)
		if len(output) == 0 {
			err = &ErrStage{Stage: n, Err: ErrNoOutput}
			return
		}

		signal = output[len(output)-1]
		if pl.Verbose {
			log.Printf("pipeline: stage %d phase %d signal %d", n, phase, signal)
		}
	}

	return
}

// Feedback runs one machine per phase in a loop. The outputs of each
// machine feed the input of the next, and the outputs of the final machine
// feed the first, until every machine has halted. Returns the last output
// of the final machine.
func (pl *Pipeline) Feedback(program []int64, phases []int64) (signal int64, err error) {
	if len(phases) == 0 {
		err = ErrPhases
		return
	}

	machines := make([]*intcode.Machine, len(phases))
	for n, phase := range phases {
		machines[n] = pl.machine(program)
		machines[n].Input.Write(phase)
	}
	machines[0].Input.Write(0)

	var produced bool
	for round := 0; ; round++ {
		var progress bool
		var halted int

		for n, m := range machines {
			if m.IsHalted() {
				halted++
				continue
			}

			err = m.Run()
			if err != nil {
				err = &ErrStage{Stage: n, Err: err}
				return
			}

			output := drain(m)
			next := machines[(n+1)%len(machines)]
			for _, value := range output {
				next.Input.Write(value)
			}

			if len(output) > 0 {
				progress = true
				if n == len(machines)-1 {
					signal = output[len(output)-1]
					produced = true
				}
			}

			if m.IsHalted() {
				progress = true
				halted++
			}
		}

		if pl.Verbose {
			log.Printf("pipeline: round %d halted %d signal %d", round, halted, signal)
		}

		if halted == len(machines) {
			break
		}

		if !progress {
			err = ErrStalled
			return
		}
	}

	if !produced {
		err = &ErrStage{Stage: len(machines) - 1, Err: ErrNoOutput}
		return
	}

	return
}

// best finds the phase ordering of base..base+count-1 with the largest
// signal from run.
func (pl *Pipeline) best(run func(phases []int64) (int64, error), base int64, count int) (signal int64, phases []int64, err error) {
	if count <= 0 {
		err = ErrPhases
		return
	}

	values := make([]int64, count)
	for n := range values {
		values[n] = base + int64(n)
	}

	for perm := range internal.Permutations(values) {
		var value int64
		value, err = run(perm)
		if err != nil {
			phases = perm
			return
		}
		if phases == nil || value > signal {
			signal = value
			phases = perm
		}
	}

	if pl.Verbose {
		log.Printf("pipeline: best phases %v signal %d", phases, signal)
	}

	return
}

// BestSeries returns the largest signal from Series over every ordering of
// the phases base..base+count-1, with the ordering that produced it.
func (pl *Pipeline) BestSeries(program []int64, base int64, count int) (signal int64, phases []int64, err error) {
	return pl.best(func(phases []int64) (int64, error) {
		return pl.Series(program, phases)
	}, base, count)
}

// BestFeedback returns the largest signal from Feedback over every ordering
// of the phases base..base+count-1, with the ordering that produced it.
func (pl *Pipeline) BestFeedback(program []int64, base int64, count int) (signal int64, phases []int64, err error) {
	return pl.best(func(phases []int64) (int64, error) {
		return pl.Feedback(program, phases)
	}, base, count)
}

// Search finds the noun and verb, each in [0, limit), which when stored
// in cells 1 and 2 leave target in cell 0 after the program halts.
// Combinations that fault or do not halt are skipped.
func (pl *Pipeline) Search(program []int64, target int64, limit int64) (noun int64, verb int64, err error) {
	m := pl.machine(program)

	for noun = 0; noun < limit; noun++ {
		for verb = 0; verb < limit; verb++ {
			m.Reset()
			if m.Memory.Write(1, noun) != nil || m.Memory.Write(2, verb) != nil {
				continue
			}

			if m.Run() != nil || !m.IsHalted() {
				continue
			}

			value, _ := m.Memory.Read(0)
			if value == target {
				if pl.Verbose {
					log.Printf("pipeline: noun %d verb %d target %d", noun, verb, target)
				}
				return
			}
		}
	}

	noun, verb = 0, 0
	err = ErrNotFound
	return
}

// Series runs phases in a chain with a default Pipeline.
func Series(program []int64, phases []int64) (int64, error) {
	return (&Pipeline{}).Series(program, phases)
}

// Feedback runs phases in a loop with a default Pipeline.
func Feedback(program []int64, phases []int64) (int64, error) {
	return (&Pipeline{}).Feedback(program, phases)
}

// BestSeries searches phase orderings for Series with a default Pipeline.
func BestSeries(program []int64, base int64, count int) (int64, []int64, error) {
	return (&Pipeline{}).BestSeries(program, base, count)
}

// BestFeedback searches phase orderings for Feedback with a default Pipeline.
func BestFeedback(program []int64, base int64, count int) (int64, []int64, error) {
	return (&Pipeline{}).BestFeedback(program, base, count)
}

// Search finds the noun and verb for target with a default Pipeline.
func Search(program []int64, target int64, limit int64) (int64, int64, error) {
	return (&Pipeline{}).Search(program, target, limit)
}
