package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/atats/memory"
)

// overflowingAdd adds two bytes, reporting unsigned carry and signed overflow.
func overflowingAdd(a, b uint8) (sum uint8, carry, overflow bool) {
	sum = a + b
	carry = sum < a
	overflow = (a^sum)&(b^sum)&0x80 != 0
	return
}

// overflowingSub subtracts two bytes, reporting unsigned borrow and signed overflow.
func overflowingSub(a, b uint8) (diff uint8, borrow, overflow bool) {
	diff = a - b
	borrow = a < b
	overflow = (a^b)&(a^diff)&0x80 != 0
	return
}

// bit returns 1 for true.
func bit(value bool) uint8 {
	if value {
		return 1
	}
	return 0
}

// adc adds with carry into the accumulator.
func (m *Machine) adc(value uint8) {
	partial, c1, v1 := overflowingAdd(m.RA, value)
	result, c2, v2 := overflowingAdd(partial, bit(m.SR.Get(FLAG_CARRY)))

	m.SR.Set(FLAG_CARRY, c1 || c2)
	m.SR.Set(FLAG_OVERFLOW, v1 || v2)
	m.RA = result
	m.SR.UpdateFromByte(result)
}

// sbc subtracts with borrow from the accumulator.
func (m *Machine) sbc(value uint8) {
	partial, b1, v1 := overflowingSub(m.RA, value)
	result, b2, v2 := overflowingSub(partial, bit(!m.SR.Get(FLAG_CARRY)))

	m.SR.Set(FLAG_CARRY, !b1 && !b2)
	m.SR.Set(FLAG_OVERFLOW, v1 || v2)
	m.RA = result
	m.SR.UpdateFromByte(result)
}

// compare subtracts without storing the result.
func (m *Machine) compare(reg, value uint8) {
	diff, borrow, _ := overflowingSub(reg, value)
	m.SR.Set(FLAG_CARRY, !borrow)
	m.SR.UpdateFromByte(diff)
}

// shift applies a shift or rotate to the operand in place.
func (m *Machine) shift(mn Mnemonic, op Operand) (err error) {
	value, err := m.ReadOperand(op)
	if err != nil {
		return
	}

	carry := bit(m.SR.Get(FLAG_CARRY))

	var result uint8
	switch mn {
	case ASL:
		m.SR.Set(FLAG_CARRY, value&0x80 != 0)
		result = value << 1
	case LSR:
		m.SR.Set(FLAG_CARRY, value&0x01 != 0)
		result = value >> 1
	case ROL:
		m.SR.Set(FLAG_CARRY, value&0x80 != 0)
		result = value<<1 | carry
	case ROR:
		m.SR.Set(FLAG_CARRY, value&0x01 != 0)
		result = value>>1 | carry<<7
	}

	m.SR.UpdateFromByte(result)
	err = m.WriteOperand(op, result)
	return
}

// step adds delta to the operand in place.
func (m *Machine) step(op Operand, delta uint8) (err error) {
	value, err := m.ReadOperand(op)
	if err != nil {
		return
	}

	value += delta
	m.SR.UpdateFromByte(value)
	err = m.WriteOperand(op, value)
	return
}

// load reads the operand into a register.
func (m *Machine) load(reg *uint8, op Operand) (err error) {
	value, err := m.ReadOperand(op)
	if err != nil {
		return
	}

	*reg = value
	m.SR.UpdateFromByte(value)
	return
}

// transfer copies a register, updating flags from the destination.
func (m *Machine) transfer(dst *uint8, src uint8) {
	*dst = src
	m.SR.UpdateFromByte(src)
}

// branch jumps to the relative target when the condition holds.
func (m *Machine) branch(cond bool, op Operand) (err error) {
	target, err := m.OperandAddress(op)
	if err != nil {
		return
	}

	if cond {
		m.PC = target
	}
	return
}

// pullStatus replaces the status with a pulled byte, keeping Break and Unused.
func (m *Machine) pullStatus() (err error) {
	value, err := m.pop()
	if err != nil {
		return
	}

	const kept = FLAG_BREAK | FLAG_UNUSED
	m.SR = (Status(value) &^ kept) | (m.SR & kept)
	return
}

// Execute runs a decoded instruction. The program counter must already
// point past the instruction.
func (m *Machine) Execute(inst Instruction) (err error) {
	mn := inst.Mnemonic
	op := inst.operand()

	if !mn.Valid() {
		err = ErrMnemonic(mn)
		return
	}

	if mn.Type() == TYPE_IMP && op.AddrMode() != MODE_IMPL {
		err = ErrAddrMode{Mode: op.AddrMode(), Type: TYPE_IMP}
		return
	}

	var value uint8
	var address uint16

	switch mn {
	case LDA:
		err = m.load(&m.RA, op)
	case LDX:
		err = m.load(&m.RX, op)
	case LDY:
		err = m.load(&m.RY, op)
	case STA:
		err = m.WriteOperand(op, m.RA)
	case STX:
		err = m.WriteOperand(op, m.RX)
	case STY:
		err = m.WriteOperand(op, m.RY)
	case ORA, AND, EOR, ADC, SBC, CMP, CPX, CPY, BIT:
		value, err = m.ReadOperand(op)
		if err != nil {
			return
		}
		switch mn {
		case ORA:
			m.RA |= value
			m.SR.UpdateFromByte(m.RA)
		case AND:
			m.RA &= value
			m.SR.UpdateFromByte(m.RA)
		case EOR:
			m.RA ^= value
			m.SR.UpdateFromByte(m.RA)
		case ADC:
			m.adc(value)
		case SBC:
			m.sbc(value)
		case CMP:
			m.compare(m.RA, value)
		case CPX:
			m.compare(m.RX, value)
		case CPY:
			m.compare(m.RY, value)
		case BIT:
			m.SR.Set(FLAG_NEGATIVE, value&0x80 != 0)
			m.SR.Set(FLAG_OVERFLOW, value&0x40 != 0)
			m.SR.Set(FLAG_ZERO, m.RA&value == 0)
		}
	case INC:
		err = m.step(op, 1)
	case DEC:
		err = m.step(op, 0xff)
	case INX:
		m.transfer(&m.RX, m.RX+1)
	case INY:
		m.transfer(&m.RY, m.RY+1)
	case DEX:
		m.transfer(&m.RX, m.RX-1)
	case DEY:
		m.transfer(&m.RY, m.RY-1)
	case ASL, LSR, ROL, ROR:
		err = m.shift(mn, op)
	case BPL:
		err = m.branch(!m.SR.Get(FLAG_NEGATIVE), op)
	case BMI:
		err = m.branch(m.SR.Get(FLAG_NEGATIVE), op)
	case BVC:
		err = m.branch(!m.SR.Get(FLAG_OVERFLOW), op)
	case BVS:
		err = m.branch(m.SR.Get(FLAG_OVERFLOW), op)
	case BCC:
		err = m.branch(!m.SR.Get(FLAG_CARRY), op)
	case BCS:
		err = m.branch(m.SR.Get(FLAG_CARRY), op)
	case BNE:
		err = m.branch(!m.SR.Get(FLAG_ZERO), op)
	case BEQ:
		err = m.branch(m.SR.Get(FLAG_ZERO), op)
	case JMP:
		address, err = m.OperandAddress(op)
		if err != nil {
			return
		}
		m.PC = address
	case JSR:
		address, err = m.OperandAddress(op)
		if err != nil {
			return
		}
		err = m.push16(m.PC - 1)
		if err != nil {
			return
		}
		m.PC = address
	case RTS:
		address, err = m.pop16()
		if err != nil {
			return
		}
		m.PC = address + 1
	case BRK:
		if m.Verbose {
			log.Printf("cpu: %04x: break", m.PC-1)
		}
		err = m.enter(m.PC+1, m.SR|FLAG_BREAK|FLAG_UNUSED, memory.IRQ_VECTOR)
	case RTI:
		err = m.pullStatus()
		if err != nil {
			return
		}
		address, err = m.pop16()
		if err != nil {
			return
		}
		m.PC = address
		if m.fault != nil && m.Verbose {
			log.Printf("cpu: fault cleared: %v", m.fault)
		}
		m.fault = nil
	case PHA:
		err = m.push(m.RA)
	case PHP:
		err = m.push(uint8(m.SR | FLAG_BREAK | FLAG_UNUSED))
	case PLA:
		value, err = m.pop()
		if err != nil {
			return
		}
		m.transfer(&m.RA, value)
	case PLP:
		err = m.pullStatus()
	case CLC:
		m.SR.Set(FLAG_CARRY, false)
	case SEC:
		m.SR.Set(FLAG_CARRY, true)
	case CLI:
		m.SR.Set(FLAG_INTERRUPT, false)
	case SEI:
		m.SR.Set(FLAG_INTERRUPT, true)
	case CLD:
		m.SR.Set(FLAG_DECIMAL, false)
	case SED:
		m.SR.Set(FLAG_DECIMAL, true)
	case CLV:
		m.SR.Set(FLAG_OVERFLOW, false)
	case TAX:
		m.transfer(&m.RX, m.RA)
	case TXA:
		m.transfer(&m.RA, m.RX)
	case TAY:
		m.transfer(&m.RY, m.RA)
	case TYA:
		m.transfer(&m.RA, m.RY)
	case TSX:
		m.transfer(&m.RX, m.SP)
	case TXS:
		// N and Z follow the new stack pointer.
		m.transfer(&m.SP, m.RX)
	case NOP:
	default:
		panic(fmt.Sprintf("unknown mnemonic %d", int(mn)))
	}

	return
}
