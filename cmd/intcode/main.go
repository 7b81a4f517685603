// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/channel"
	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/intcode"
)

// patch is a single -set ADDR=EXPR memory patch.
type patch struct {
	addr int64
	expr string
}

// patchList collects repeated -set flags.
type patchList []patch

func (pl *patchList) String() string {
	words := make([]string, len(*pl))
	for n, p := range *pl {
		words[n] = fmt.Sprintf("%d=%v", p.addr, p.expr)
	}
	return strings.Join(words, " ")
}

func (pl *patchList) Set(value string) (err error) {
	addr, expr, ok := strings.Cut(value, "=")
	if !ok {
		err = fmt.Errorf("%v: expected ADDR=EXPR", value)
		return
	}

	n, err := strconv.ParseInt(strings.TrimSpace(addr), 0, 64)
	if err != nil {
		return
	}
	if n < 0 {
		err = fmt.Errorf("%v: negative address", value)
		return
	}

	*pl = append(*pl, patch{addr: n, expr: expr})
	return
}

// defineList collects repeated -D flags.
type defineList map[string]string

func (dl defineList) String() string {
	words := make([]string, 0, len(dl))
	for equ, value := range dl {
		words = append(words, equ+"="+value)
	}
	return strings.Join(words, " ")
}

func (dl defineList) Set(value string) (err error) {
	equ, val, ok := strings.Cut(value, "=")
	if !ok {
		val = "1"
	}
	dl[equ] = val
	return
}

// apply patches program, growing it as needed.
func (pl patchList) apply(program []int64, vars map[string]int64) (patched []int64, err error) {
	patched = program
	for _, p := range pl {
		var value int64
		value, err = intcode.Eval(p.expr, vars)
		if err != nil {
			return
		}
		for int64(len(patched)) <= p.addr {
			patched = append(patched, 0)
		}
		patched[p.addr] = value
	}

	return
}

func main() {
	var compile string
	var program_file string
	var config_file string
	var inputs string
	var tape string
	var output string
	var list bool
	var save bool
	var amp string
	var search int64
	var dump int64
	var verbose bool
	var patches patchList
	defines := defineList{}

	flag.StringVar(&compile, "c", "", ".ica file to assemble")
	flag.StringVar(&program_file, "p", "", "Program text file to load")
	flag.StringVar(&config_file, "config", "", "intcode.toml configuration, default is to search parent directories")
	flag.StringVar(&inputs, "i", "", "Comma separated input values")
	flag.StringVar(&tape, "t", "", "Tape input file, '-' for stdin")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.BoolVar(&list, "l", false, "List the program, do not execute")
	flag.BoolVar(&save, "s", false, "Save the program text, do not execute")
	flag.StringVar(&amp, "amp", "", "Amplifier phase search: series, feedback, or best (from configuration)")
	flag.Int64Var(&search, "search", -1, "Search for the noun and verb producing this value")
	flag.Int64Var(&dump, "dump", -1, "Print this memory cell after execution")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(&patches, "set", "ADDR=EXPR memory patch, may be repeated")
	flag.Var(defines, "D", "NAME=VALUE assembler equate, may be repeated")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := loadConfig(config_file)
	if verbose {
		cfg.Machine.Verbose = true
	}

	var program []int64
	var err error
	vars := map[string]int64{
		"MEMORY_SIZE": int64(cfg.Machine.MemorySize),
	}

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := cfg.NewAssembler()
		for equ, value := range defines {
			asm.Predefine(equ, value)
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		program = prog.Binary()
		for label, ip := range asm.Label {
			vars[label] = int64(ip)
		}
	case len(program_file) != 0:
		program, err = intcode.LoadProgram(program_file)
		if err != nil {
			log.Fatalf("%v: %v", program_file, err)
		}
	default:
		log.Fatalf("%v: one of -c or -p is required", os.Args[0])
	}

	program, err = patches.apply(program, vars)
	if err != nil {
		log.Fatalf("-set: %v", err)
	}

	out := io.Writer(os.Stdout)
	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		out = ouf
	}

	switch {
	case list:
		for line := range intcode.Disassemble(program) {
			fmt.Fprintln(out, line)
		}
	case save:
		fmt.Fprintln(out, intcode.FormatProgram(program))
	case len(amp) != 0:
		runAmplifiers(cfg, program, amp, out)
	case search >= 0:
		noun, verb, err := cfg.NewPipeline().Search(program, search, 100)
		if err != nil {
			log.Fatalf("-search %v: %v", search, err)
		}
		fmt.Fprintln(out, 100*noun+verb)
	default:
		runMachine(cfg, program, inputs, tape, dump, out)
	}
}

// loadConfig loads the named configuration file, or the nearest
// intcode.toml, or the defaults.
func loadConfig(path string) (cfg *config.Config) {
	var err error
	if len(path) == 0 {
		path, err = config.Find(".")
		if err != nil {
			log.Fatalf("%v: %v", config.FILENAME, err)
		}
	}

	if len(path) == 0 {
		cfg = config.Default()
		return
	}

	cfg, err = config.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return
}

// runAmplifiers searches amplifier phase orderings.
func runAmplifiers(cfg *config.Config, program []int64, mode string, out io.Writer) {
	var feedback bool
	switch mode {
	case "series":
	case "feedback":
		feedback = true
	case "best":
		feedback = cfg.Pipeline.Feedback
	default:
		log.Fatalf("-amp %v: expected series, feedback, or best", mode)
	}

	pl := cfg.NewPipeline()
	best := pl.BestSeries
	if feedback {
		best = pl.BestFeedback
	}

	signal, phases, err := best(program, cfg.Pipeline.PhaseBase, cfg.Pipeline.PhaseCount)
	if err != nil {
		log.Fatalf("-amp %v: phases %v: %v", mode, phases, err)
	}

	fmt.Fprintln(out, signal, phases)
}

// runMachine executes program on a single machine.
func runMachine(cfg *config.Config, program []int64, inputs string, tape string, dump int64, out io.Writer) {
	m := cfg.NewMachine(program)

	if len(inputs) != 0 {
		in := &channel.Tape{Input: strings.NewReader(inputs)}
		_, err := in.Fetch(m.Input)
		if err != nil {
			log.Fatalf("-i: %v", err)
		}
	}

	if len(tape) != 0 {
		in := &channel.Tape{Input: os.Stdin}
		if tape != "-" {
			inf, err := os.Open(tape)
			if err != nil {
				log.Fatalf("%v: %v", tape, err)
			}
			defer inf.Close()
			in.Input = inf
		}
		_, err := in.Fetch(m.Input)
		if err != nil {
			log.Fatalf("%v: %v", tape, err)
		}
	}

	err := m.Run()

	store := &channel.Tape{Output: out}
	if _, serr := store.Store(m.Output); serr != nil {
		log.Fatalf("%v: %v", os.Args[0], serr)
	}

	if err != nil {
		log.Print(m.String())
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if m.IsWaiting() {
		log.Fatalf("%v: %v", os.Args[0], intcode.ErrInputClosed)
	}

	if dump >= 0 {
		value, err := m.Memory.Read(dump)
		if err != nil {
			log.Fatalf("-dump %v: %v", dump, err)
		}
		fmt.Fprintln(out, value)
	}

	if cfg.Machine.Verbose {
		log.Print(m.String())
	}
}
