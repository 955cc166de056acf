package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/atats/memory"
)

// Statement is a line of assembled code with its source location and
// generated bytes.
type Statement struct {
	LineNo      int          // Source line number.
	Address     uint16       // Address of the first byte.
	Words       []string     // Source words.
	Bytes       []byte       // Encoded bytes.
	LinkLabel   string       // Label resolved by the link pass.
	Instruction *Instruction // Instruction, or nil for data.

	linkPart byte // Byte of the linked label to use: '<', '>' or 0.
	size     int  // Byte count, known before linking.
}

// Program is an assembled program.
type Program struct {
	Statements []Statement
}

// Debug locates the statement containing an address.
type Debug struct {
	*Statement
	Index int // Byte offset of the address within the statement.
}

// Debug finds the statement containing the address.
// The Statement is nil if no statement covers it.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if address >= st.Address && int(address) < int(st.Address)+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(address - st.Address),
			}
			break
		}
	}

	return
}

// Start returns the address of the first instruction.
func (prog *Program) Start() (address uint16, ok bool) {
	for _, st := range prog.Statements {
		if st.Instruction != nil {
			return st.Address, true
		}
	}
	return
}

// Instructions iterates over the address and instruction of each statement
// that is code.
func (prog *Program) Instructions() iter.Seq2[uint16, Instruction] {
	return func(yield func(address uint16, inst Instruction) bool) {
		for _, st := range prog.Statements {
			if st.Instruction == nil {
				continue
			}
			if !yield(st.Address, *st.Instruction) {
				return
			}
		}
	}
}

// Binary returns the ROM bank image of the program.
//
// Unused bytes are zero. If the program does not place the reset vector,
// it is set to the first instruction.
func (prog *Program) Binary() (bin []byte, err error) {
	bin = make([]byte, memory.ROM_BANK_SIZE)
	used := make([]bool, memory.ROM_BANK_SIZE)

	for _, st := range prog.Statements {
		for n, b := range st.Bytes {
			address := int(st.Address) + n
			index := address - int(memory.ROM_OFFSET)
			switch {
			case index < 0 || index >= memory.ROM_BANK_SIZE:
				err = ErrProgramOutside
			case used[index]:
				err = ErrProgramOverlap
			}
			if err != nil {
				err = ErrSyntax{LineNo: st.LineNo, Line: strings.Join(st.Words, " "), Err: err}
				bin = nil
				return
			}
			used[index] = true
			bin[index] = b
		}
	}

	reset := int(memory.RES_VECTOR - memory.ROM_OFFSET)
	if !used[reset] && !used[reset+1] {
		start, ok := prog.Start()
		if ok {
			bin[reset] = byte(start)
			bin[reset+1] = byte(start >> 8)
		}
	}

	return
}
