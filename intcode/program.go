package intcode

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"
)

// Opcode is a line of assembled code with its source location and cells.
type Opcode struct {
	LineNo int      // Source line number.
	Ip     int      // Address of the first cell.
	Words  []string // Source words, after alias substitution.
	Cells  []int64  // Assembled cells.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a single cell within a program listing.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the opcode covering address ip. The Opcode is nil if no
// opcode covers it.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Cells) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Codes returns an iterator over every assembled cell and its address.
func (prog *Program) Codes() iter.Seq2[int, int64] {
	return func(yield func(ip int, cell int64) bool) {
		for _, op := range prog.Opcodes {
			for n, cell := range op.Cells {
				if !yield(op.Ip+n, cell) {
					return
				}
			}
		}
	}
}

// Binary returns the assembled program as memory cells, starting at address 0.
func (prog *Program) Binary() (cells []int64) {
	for ip, cell := range prog.Codes() {
		for len(cells) <= ip {
			cells = append(cells, 0)
		}
		cells[ip] = cell
	}

	return
}

// ParseProgram reads comma separated program text. The first non-empty
// line holds the program.
func ParseProgram(input io.Reader) (program []int64, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		for n, word := range strings.Split(line, ",") {
			word = strings.TrimSpace(word)
			if len(word) == 0 && n == strings.Count(line, ",") {
				// Trailing comma.
				break
			}
			var value int64
			value, err = strconv.ParseInt(word, 10, 64)
			if err != nil {
				err = &ErrProgramSyntax{Index: n, Text: word}
				return
			}
			program = append(program, value)
		}
		return
	}

	err = scanner.Err()
	return
}

// LoadProgram reads comma separated program text from a file.
func LoadProgram(path string) (program []int64, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ParseProgram(inf)
}

// FormatProgram returns program as comma separated text.
func FormatProgram(program []int64) string {
	words := make([]string, len(program))
	for n, value := range program {
		words[n] = strconv.FormatInt(value, 10)
	}
	return strings.Join(words, ",")
}
