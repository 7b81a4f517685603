package intcode

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// Listing is a single disassembled line.
type Listing struct {
	Ip    int         // Address of the first cell.
	Cells []int64     // Cells covered by this line.
	Inst  Instruction // Decoded instruction; Op is zero for data.
	Text  string      // Assembly text, accepted by the Assembler.
}

// IsData returns true if the line is raw data rather than an instruction.
func (l Listing) IsData() bool {
	return l.Inst.Op == 0
}

func (l Listing) String() string {
	return fmt.Sprintf("%06d: %v", l.Ip, l.Text)
}

// formatOperand returns the assembly text of an operand.
func formatOperand(mode memory.Mode, value int64) string {
	switch mode {
	case memory.MODE_POSITION:
		return "[" + strconv.FormatInt(value, 10) + "]"
	case memory.MODE_RELATIVE:
		switch {
		case value == 0:
			return "[rb]"
		case value < 0:
			return "[rb-" + strconv.FormatUint(uint64(-value), 10) + "]"
		default:
			return "[rb+" + strconv.FormatInt(value, 10) + "]"
		}
	default:
		return strconv.FormatInt(value, 10)
	}
}

// decodeLine decodes the listing line at ip. Cells that do not re-assemble
// to themselves are listed as data.
func decodeLine(cells []int64, ip int) (l Listing) {
	word := cells[ip]
	l = Listing{
		Ip:    ip,
		Cells: cells[ip : ip+1],
		Text:  ".data " + strconv.FormatInt(word, 10),
	}

	inst, err := Decode(word)
	if err != nil || inst.Word() != word {
		return
	}

	width := int(inst.Op.Width())
	if ip+width > len(cells) {
		return
	}

	dst := inst.Op.Destination()
	if dst >= 0 && inst.Modes[dst] == memory.MODE_IMMEDIATE {
		return
	}

	operands := make([]string, len(inst.Modes))
	for n, mode := range inst.Modes {
		operands[n] = formatOperand(mode, cells[ip+1+n])
	}

	l.Inst = inst
	l.Cells = cells[ip : ip+width]
	l.Text = strings.TrimSpace(inst.Op.String() + " " + strings.Join(operands, ", "))

	return
}

// Disassemble returns an iterator over the listing of a program.
func Disassemble(cells []int64) iter.Seq[Listing] {
	return func(yield func(l Listing) bool) {
		for ip := 0; ip < len(cells); {
			l := decodeLine(cells, ip)
			if !yield(l) {
				return
			}
			ip += len(l.Cells)
		}
	}
}
