// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log"

	"github.com/ezrec/atats/cpu"
	"github.com/ezrec/atats/internal"
	"github.com/ezrec/atats/memory"
)

// Emulator state. Machine + Memory + Program.
type Emulator struct {
	Verbose      bool           // If set, enables verbose logging.
	*cpu.Machine                // Reference to the processor.
	Memory       *memory.Memory // Memory built by the last Reset.
	Program      *cpu.Program   // Reference to the currently running program listing.
	Rom          *memory.Rom    // ROM image; if nil, the Program binary is used.
	Bank         uint8          // ROM bank selected at reset.
	MaxTicks     int            // Tick limit for RunParallel; zero or less for no limit.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: cpu.NewMachine(nil),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(memory.Defines(), emu.Machine.Defines())
}

// Assemble parses a program, with the emulator defines and the
// additional equates predefined. The assembled program replaces any ROM.
func (emu *Emulator) Assemble(input io.Reader, predefine map[string]string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	for key, value := range predefine {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Rom = nil

	return
}

// rom returns the ROM to reset with.
func (emu *Emulator) rom() (rom *memory.Rom, err error) {
	if emu.Rom != nil {
		rom = emu.Rom.Clone()
		return
	}

	bin, err := emu.Program.Binary()
	if err != nil {
		return
	}

	bank, err := memory.NewRomBank(bin)
	if err != nil {
		return
	}

	rom = memory.NewRom(bank)
	return
}

// Reset rebuilds memory, selects the reset bank and resets the machine.
func (emu *Emulator) Reset() (err error) {
	rom, err := emu.rom()
	if err != nil {
		return
	}

	emu.Memory = memory.NewMemory(rom)
	emu.Memory.Verbose = emu.Verbose

	err = emu.Memory.SelectBank(emu.Bank)
	if err != nil {
		return
	}

	emu.Machine.Memory = emu.Memory
	emu.Machine.Verbose = emu.Verbose

	err = emu.Machine.Reset()
	return
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.PC)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
// The program is done when an instruction leaves the program counter
// unchanged, as a 'JMP *' does.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	pc := emu.PC
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: pc, Err: err}
		}
	}()

	err = emu.Step()
	if err != nil {
		return
	}

	done = emu.PC == pc
	if done && emu.Verbose {
		log.Printf("emu: %04x: done after %d ticks", pc, emu.Ticks)
	}

	return
}

// Run ticks until the program is done, an error occurs, the context is
// cancelled or maxTicks ticks have run. A maxTicks of zero or less
// does not limit the run.
func (emu *Emulator) Run(ctx context.Context, maxTicks int) (err error) {
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrTickLimit
	return
}

// Disassemble writes a listing of every ROM bank of the last Reset, or of
// the ROM the next Reset would build. Bytes that do not decode are listed
// as data.
func (emu *Emulator) Disassemble(w io.Writer) (err error) {
	var rom *memory.Rom
	if emu.Memory != nil {
		rom = emu.Memory.Rom
	} else {
		rom, err = emu.rom()
		if err != nil {
			return
		}
	}

	banks := rom.Banks()
	for index := range banks {
		if banks > 1 {
			_, err = fmt.Fprintf(w, "; bank %d\n", index)
			if err != nil {
				return
			}
		}

		data := rom.Bank(index).Bytes()
		for offset := 0; offset < len(data); {
			origin := memory.ROM_OFFSET + uint16(offset)
			dis := cpu.NewDisassembler(data[offset:], origin)
			for address, inst := range dis.All() {
				err = emu.list(w, address, inst.String())
				if err != nil {
					return
				}
				offset += inst.Size()
			}
			if dis.Err() != nil {
				err = emu.list(w, memory.ROM_OFFSET+uint16(offset), fmt.Sprintf(".byte $%02X", data[offset]))
				if err != nil {
					return
				}
				offset++
			}
		}
	}

	return
}

// list writes a single listing line, with its source line if known.
func (emu *Emulator) list(w io.Writer, address uint16, text string) (err error) {
	dbg := emu.Program.Debug(address)
	if emu.Rom == nil && dbg.Statement != nil && dbg.Index == 0 {
		_, err = fmt.Fprintf(w, "%04X: %-16s; line %d\n", address, text, dbg.LineNo)
		return
	}

	_, err = fmt.Fprintf(w, "%04X: %s\n", address, text)
	return
}
