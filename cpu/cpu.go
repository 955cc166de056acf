package cpu

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/atats/internal"
	"github.com/ezrec/atats/memory"
)

// InterruptKind selects an interrupt source and its vector.
type InterruptKind int

//go:generate go tool stringer -linecomment -type=InterruptKind
const (
	INT_RESET = InterruptKind(0) // reset
	INT_NMI   = InterruptKind(1) // nmi
	INT_IRQ   = InterruptKind(2) // irq
)

// Vector returns the address of the interrupt vector.
func (kind InterruptKind) Vector() uint16 {
	switch kind {
	case INT_RESET:
		return memory.RES_VECTOR
	case INT_NMI:
		return memory.NMI_VECTOR
	default:
		return memory.IRQ_VECTOR
	}
}

// Maskable returns true if the interrupt disable flag blocks the interrupt.
func (kind InterruptKind) Maskable() bool {
	return kind == INT_IRQ
}

var _cpu_defines = map[string]string{
	"FLAG_CARRY":     fmt.Sprintf("0x%x", uint8(FLAG_CARRY)),
	"FLAG_ZERO":      fmt.Sprintf("0x%x", uint8(FLAG_ZERO)),
	"FLAG_INTERRUPT": fmt.Sprintf("0x%x", uint8(FLAG_INTERRUPT)),
	"FLAG_DECIMAL":   fmt.Sprintf("0x%x", uint8(FLAG_DECIMAL)),
	"FLAG_BREAK":     fmt.Sprintf("0x%x", uint8(FLAG_BREAK)),
	"FLAG_UNUSED":    fmt.Sprintf("0x%x", uint8(FLAG_UNUSED)),
	"FLAG_OVERFLOW":  fmt.Sprintf("0x%x", uint8(FLAG_OVERFLOW)),
	"FLAG_NEGATIVE":  fmt.Sprintf("0x%x", uint8(FLAG_NEGATIVE)),
}

// Registers is the register file.
type Registers struct {
	RA uint8  // Accumulator.
	RX uint8  // X index.
	RY uint8  // Y index.
	SP uint8  // Stack pointer, offset into the stack page.
	PC uint16 // Program counter.
	SR Status // Status flags.
}

// Machine is the processor attached to its memory.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Registers

	Memory memory.Bus // Memory the processor runs against.

	Ticks int // Instructions executed.

	fault error
}

// NewMachine creates a machine with a zeroed register file.
func NewMachine(mem memory.Bus) (m *Machine) {
	m = &Machine{
		Memory: mem,
	}

	return
}

// Defines for the cpu.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return internal.SortedAll(_cpu_defines)
}

// String returns the current register state.
func (m *Machine) String() (text string) {
	regs := []string{"pc", "sr", "ra", "rx", "ry", "sp", "fault"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", m.PC)
		case "sr":
			strval = m.SR.String()
		case "ra":
			strval = fmt.Sprintf("%02X", m.RA)
		case "rx":
			strval = fmt.Sprintf("%02X", m.RX)
		case "ry":
			strval = fmt.Sprintf("%02X", m.RY)
		case "sp":
			strval = fmt.Sprintf("%02X", m.SP)
		case "fault":
			strval = "-"
			if m.fault != nil {
				strval = m.fault.Error()
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Fault returns the captured fault, or nil.
func (m *Machine) Fault() error {
	return m.fault
}

// ClearFault forgets the captured fault.
func (m *Machine) ClearFault() {
	m.fault = nil
}

// Reset clears the machine state and delivers the reset interrupt.
func (m *Machine) Reset() (err error) {
	if m.Verbose {
		log.Printf("cpu: reset")
	}

	m.Registers = Registers{}
	m.Ticks = 0
	m.fault = nil

	err = m.Interrupt(INT_RESET)
	return
}

// SelectBank switches the active ROM bank.
func (m *Machine) SelectBank(bank uint8) (err error) {
	err = wrapError(m.PC, m.Memory.SelectBank(bank))
	return
}

// push writes a byte to the stack page.
func (m *Machine) push(value uint8) (err error) {
	err = m.Memory.Write(memory.STACK_PAGE|uint16(m.SP), value)
	if err != nil {
		return
	}

	m.SP--
	return
}

// pop reads a byte from the stack page.
func (m *Machine) pop() (value uint8, err error) {
	value, err = m.Memory.Read(memory.STACK_PAGE | uint16(m.SP+1))
	if err != nil {
		return
	}

	m.SP++
	return
}

// push16 pushes the high byte, then the low byte.
func (m *Machine) push16(value uint16) (err error) {
	err = m.push(uint8(value >> 8))
	if err != nil {
		return
	}

	err = m.push(uint8(value))
	return
}

// pop16 pops the low byte, then the high byte.
func (m *Machine) pop16() (value uint16, err error) {
	lo, err := m.pop()
	if err != nil {
		return
	}
	hi, err := m.pop()
	if err != nil {
		return
	}

	value = uint16(lo) | uint16(hi)<<8
	return
}

// Interrupt delivers an interrupt, pushing PC+2 and the status. Reset and
// NMI push the status with Break and Unused clear; a request pushes it as is.
// A maskable interrupt is ignored while the interrupt disable flag is set.
func (m *Machine) Interrupt(kind InterruptKind) (err error) {
	if kind.Maskable() && m.SR.Get(FLAG_INTERRUPT) {
		if m.Verbose {
			log.Printf("cpu: %v masked", kind)
		}
		return
	}

	if m.Verbose {
		log.Printf("cpu: %04x: %v", m.PC, kind)
	}

	sr := m.SR
	if !kind.Maskable() {
		sr &^= FLAG_BREAK | FLAG_UNUSED
	}

	err = m.enter(m.PC+2, sr, kind.Vector())
	err = wrapError(m.PC, err)
	return
}

// enter pushes the return address and status, then jumps through a vector.
func (m *Machine) enter(ret uint16, sr Status, vector uint16) (err error) {
	err = m.push16(ret)
	if err != nil {
		return
	}

	err = m.push(uint8(sr))
	if err != nil {
		return
	}

	m.SR.Set(FLAG_INTERRUPT, true)

	pc, err := m.readPointer(vector, vector+1)
	if err != nil {
		return
	}

	m.PC = pc
	return
}

// FetchDecodeExecute runs one instruction at the program counter.
func (m *Machine) FetchDecodeExecute() (err error) {
	pc := m.PC
	defer func() {
		err = wrapError(pc, err)
	}()

	inst, err := DecodeInstruction(MemorySource{Memory: m.Memory, Pc: &m.PC})
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("cpu: %04x: %v", pc, inst)
	}

	err = m.Execute(inst)
	if err != nil {
		return
	}

	m.Ticks++
	return
}

// Step runs one instruction.
//
// A failure is captured as the fault and a non-maskable interrupt is
// delivered so the program can handle it. A failure while a fault is
// already captured, or during delivery of the interrupt, is returned.
func (m *Machine) Step() (err error) {
	err = m.FetchDecodeExecute()
	if err == nil {
		return
	}

	if m.fault != nil {
		if m.Verbose {
			log.Printf("cpu: fatal: %v", err)
		}
		return
	}

	if m.Verbose {
		log.Printf("cpu: fault: %v", err)
	}

	m.fault = err
	err = m.Interrupt(INT_NMI)
	return
}

// Steps runs up to count instructions, stopping at the first returned error.
func (m *Machine) Steps(count int) (err error) {
	for range count {
		err = m.Step()
		if err != nil {
			return
		}
	}

	return
}
