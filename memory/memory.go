package memory

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/atats/internal"
)

const (
	NMI_VECTOR = uint16(0xfffa) // Non-maskable interrupt vector.
	RES_VECTOR = uint16(0xfffc) // Reset vector.
	IRQ_VECTOR = uint16(0xfffe) // Interrupt request vector.
)

var _memory_defines = map[string]string{
	"RAM_OFFSET":    fmt.Sprintf("0x%x", RAM_OFFSET),
	"RAM_SIZE":      fmt.Sprintf("0x%x", RAM_SIZE),
	"STACK_PAGE":    fmt.Sprintf("0x%x", STACK_PAGE),
	"ROM_OFFSET":    fmt.Sprintf("0x%x", ROM_OFFSET),
	"ROM_BANK_SIZE": fmt.Sprintf("0x%x", ROM_BANK_SIZE),
	"NMI_VECTOR":    fmt.Sprintf("0x%x", NMI_VECTOR),
	"RES_VECTOR":    fmt.Sprintf("0x%x", RES_VECTOR),
	"IRQ_VECTOR":    fmt.Sprintf("0x%x", IRQ_VECTOR),
}

// Memory is the complete address space: RAM, Stack and ROM.
type Memory struct {
	Verbose bool // Set to log bank switches.

	Ram   Ram
	Stack Stack
	Rom   *Rom
}

// NewMemory creates a memory with cleared RAM and Stack over a ROM.
func NewMemory(rom *Rom) (mem *Memory) {
	mem = &Memory{
		Rom: rom,
	}

	return
}

// Defines for the memory map.
func Defines() iter.Seq2[string, string] {
	return internal.SortedAll(_memory_defines)
}

// Clone copies RAM and Stack; ROM banks are shared.
func (mem *Memory) Clone() *Memory {
	return &Memory{
		Verbose: mem.Verbose,
		Ram:     mem.Ram,
		Stack:   mem.Stack,
		Rom:     mem.Rom.Clone(),
	}
}

// Banks returns the number of ROM banks.
func (mem *Memory) Banks() int {
	return mem.Rom.Banks()
}

// SelectedBank returns the active ROM bank index.
func (mem *Memory) SelectedBank() uint8 {
	return mem.Rom.Selected()
}

// SelectBank switches the active ROM bank.
func (mem *Memory) SelectBank(bank uint8) (err error) {
	err = mem.Rom.SelectBank(bank)
	if mem.Verbose {
		log.Printf("mem: select bank %d: %v", bank, err)
	}

	return
}

// Read dispatches to RAM, then Stack, then ROM.
func (mem *Memory) Read(address uint16) (value uint8, err error) {
	value, err = mem.Ram.Read(address)
	if err == nil {
		return
	}

	value, err = mem.Stack.Read(address)
	if err == nil {
		return
	}

	return mem.Rom.Read(address)
}

// Write dispatches to RAM, then Stack.
func (mem *Memory) Write(address uint16, value uint8) (err error) {
	err = mem.Ram.Write(address, value)
	if err == nil {
		return
	}

	return mem.Stack.Write(address, value)
}
