// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": strconv.Itoa(memory.DEFAULT_SIZE),
}

// EQUATE_DEPTH bounds the chain of equates naming equates.
const EQUATE_DEPTH = 16

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Assembler is a two pass assembler for IntCode.
//
// The first pass assigns addresses to every label and opcode; the second
// encodes operands, so labels may be referenced before they are defined.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// mnemonicMap maps instruction names to operations.
var mnemonicMap = map[string]Op{
	"add":  OP_ADD,
	"mul":  OP_MUL,
	"in":   OP_IN,
	"out":  OP_OUT,
	"jt":   OP_JT,
	"jf":   OP_JF,
	"lt":   OP_LT,
	"eq":   OP_EQ,
	"arb":  OP_ARB,
	"halt": OP_HALT,
}

// splitWords splits a line of text into words, separated by spaces or
// commas. Bracketed operands, $(...) expressions, and character quotes
// are kept whole. A ';' outside of those starts a comment.
func splitWords(line string) (words []string, err error) {
	var word strings.Builder
	var depth int
	var quote bool

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

scan:
	for n := 0; n < len(line); n++ {
		c := line[n]
		switch {
		case quote:
			word.WriteByte(c)
			if c == '\\' && n+1 < len(line) {
				n++
				word.WriteByte(line[n])
			} else if c == '\'' {
				quote = false
			}
		case c == '\'':
			quote = true
			word.WriteByte(c)
		case c == '(' || c == '[':
			depth++
			word.WriteByte(c)
		case c == ')' || c == ']':
			depth--
			if depth < 0 {
				err = ErrOperandSyntax
				return
			}
			word.WriteByte(c)
		case depth == 0 && c == ';':
			break scan
		case depth == 0 && (c == ',' || c == ' ' || c == '\t'):
			flush()
		default:
			word.WriteByte(c)
		}
	}

	if quote || depth != 0 {
		err = ErrOperandSyntax
		return
	}

	flush()
	return
}

// charOf returns the value of a quoted character.
func charOf(word string) (value int64, err error) {
	str := word[1 : len(word)-1]
	if len(str) > 1 && str[0] == '\\' {
		switch str[1:] {
		case "\\":
			str = "\\"
		case "'":
			str = "'"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "t":
			str = "\t"
		case "e":
			str = "\033"
		case "0":
			str = "\000"
		}
	}
	if len(str) != 1 {
		err = ErrParseNumber(word)
		return
	}

	value = int64(str[0])
	return
}

// vars returns every numeric equate and label, for $(...) evaluation.
func (asm *Assembler) vars() (vars map[string]int64) {
	vars = make(map[string]int64, len(asm.Equate)+len(asm.Label))
	for key, str := range asm.Equate {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		vars[key] = value
	}
	for key, ip := range asm.Label {
		vars[key] = int64(ip)
	}

	return
}

// valueOf returns the value of a single operand word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	for range EQUATE_DEPTH {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	switch {
	case len(word) == 0:
		err = ErrOpcodeValueMissing
		return
	case strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")"):
		return Eval(word[2:len(word)-1], asm.vars())
	case len(word) >= 3 && word[0] == '\'' && word[len(word)-1] == '\'':
		return charOf(word)
	}

	ip, ok := asm.Label[word]
	if ok {
		value = int64(ip)
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		if identifier.MatchString(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
		return
	}

	return
}

// operandOf returns the addressing mode and value of an operand word.
//
//	N        immediate
//	[N]      position
//	[rb+N]   relative, also [rb] and [rb-N]
func (asm *Assembler) operandOf(word string) (mode memory.Mode, value int64, err error) {
	if !strings.HasPrefix(word, "[") || !strings.HasSuffix(word, "]") {
		mode = memory.MODE_IMMEDIATE
		value, err = asm.valueOf(word)
		return
	}

	inner := strings.TrimSpace(word[1 : len(word)-1])
	if inner == "rb" {
		mode = memory.MODE_RELATIVE
		return
	}

	if rest, ok := strings.CutPrefix(inner, "rb"); ok {
		rest = strings.TrimSpace(rest)
		if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			mode = memory.MODE_RELATIVE
			value, err = asm.valueOf(strings.TrimSpace(rest[1:]))
			if rest[0] == '-' {
				value = -value
			}
			return
		}
	}

	mode = memory.MODE_POSITION
	value, err = asm.valueOf(inner)
	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Cells)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var words []string
		words, err = splitWords(line)
		if err != nil {
			return
		}

		asm.Equate["LINENO"] = strconv.Itoa(lineno)

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final encoding of operands, now that all labels are known.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		lineno = op.LineNo
		line = strings.Join(op.Words, " ")
		asm.Equate["LINENO"] = strconv.Itoa(lineno)

		err = asm.link(op)
		if err != nil {
			return
		}
	}

	line = ""
	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text, assigning
// addresses but not yet encoding operands.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !identifier.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		value := words[2]
		if strings.HasPrefix(value, "$(") {
			var v64 int64
			v64, err = asm.valueOf(value)
			if err != nil {
				return
			}
			value = strconv.FormatInt(v64, 10)
		}
		asm.Equate[words[1]] = value
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !identifier.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// Alternate syntax substitutions
	switch {
	case words[0] == "hlt":
		words = append([]string{"halt"}, words[1:]...)
	case words[0] == "jnz":
		words = append([]string{"jt"}, words[1:]...)
	case words[0] == "jz":
		words = append([]string{"jf"}, words[1:]...)
	case len(words) == 2 && words[0] == "jmp":
		// jmp TARGET => jt 1 TARGET
		words = []string{"jt", "1", words[1]}
	case len(words) == 3 && words[0] == "mov":
		// mov SRC DST => add SRC 0 DST
		words = []string{"add", words[1], "0", words[2]}
	default:
		// unchanged
	}

	var cells []int64

	switch words[0] {
	case ".data":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		cells = make([]int64, len(words)-1)
	default:
		op, ok := mnemonicMap[words[0]]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		args := len(words) - 1
		if args < op.Arity() {
			err = ErrOpcodeValueMissing
			return
		}
		if args > op.Arity() {
			err = ErrOpcodeExtraArgs
			return
		}
		cells = make([]int64, op.Width())
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  words,
		Cells:  cells,
	})

	return
}

// link encodes the cells of an opcode.
func (asm *Assembler) link(op *Opcode) (err error) {
	if op.Words[0] == ".data" {
		for n, word := range op.Words[1:] {
			op.Cells[n], err = asm.valueOf(word)
			if err != nil {
				return
			}
		}
		return
	}

	code := mnemonicMap[op.Words[0]]
	modes := make([]memory.Mode, code.Arity())
	for n, word := range op.Words[1:] {
		modes[n], op.Cells[1+n], err = asm.operandOf(word)
		if err != nil {
			err = fmt.Errorf("%v: %w", f("operand %d", n+1), err)
			return
		}
		if n == code.Destination() && modes[n] == memory.MODE_IMMEDIATE {
			err = ErrOperandDestination
			return
		}
	}
	op.Cells[0] = Encode(code, modes...)

	if asm.Verbose {
		log.Printf("%v: %06d %v", op.LineNo, op.Ip, op.Cells)
	}

	return
}
