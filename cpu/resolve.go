package cpu

// readPointer reads a little-endian address from lo and hi.
func (m *Machine) readPointer(lo, hi uint16) (address uint16, err error) {
	low, err := m.Memory.Read(lo)
	if err != nil {
		return
	}
	high, err := m.Memory.Read(hi)
	if err != nil {
		return
	}

	address = uint16(low) | uint16(high)<<8
	return
}

// readZeropagePointer reads an address from the zero page; the high byte
// wraps within the page.
func (m *Machine) readZeropagePointer(ptr uint8) (address uint16, err error) {
	return m.readPointer(uint16(ptr), uint16(ptr+1))
}

// OperandAddress resolves the effective address of an operand.
func (m *Machine) OperandAddress(op Operand) (address uint16, err error) {
	switch op := op.(type) {
	case Absolute:
		address = uint16(op.Address)
	case AbsoluteX:
		address = uint16(op.Address) + uint16(m.RX)
	case AbsoluteY:
		address = uint16(op.Address) + uint16(m.RY)
	case Indirect:
		address, err = m.readPointer(uint16(op.Address), uint16(op.Address)+1)
	case XIndirect:
		address, err = m.readZeropagePointer(uint8(op.Address) + m.RX)
	case IndirectY:
		address, err = m.readZeropagePointer(uint8(op.Address))
		address += uint16(m.RY)
	case Relative:
		address = op.Offset.Offset(m.PC)
	case Zeropage:
		address = uint16(op.Address)
	case ZeropageX:
		address = uint16(uint8(op.Address) + m.RX)
	case ZeropageY:
		address = uint16(uint8(op.Address) + m.RY)
	case nil:
		err = ErrOperandAddr{Operand: Implied{}}
	default:
		err = ErrOperandAddr{Operand: op}
	}

	if err != nil {
		address = 0
	}

	return
}

// ReadOperand reads the value of an operand.
func (m *Machine) ReadOperand(op Operand) (value uint8, err error) {
	switch op := op.(type) {
	case Accumulator:
		value = m.RA
	case Immediate:
		value = uint8(op.Data)
	case Implied, nil:
		err = ErrOperandRead{Operand: Implied{}}
	default:
		var address uint16
		address, err = m.OperandAddress(op)
		if err != nil {
			return
		}
		value, err = m.Memory.Read(address)
	}

	return
}

// WriteOperand stores a value to the location of an operand.
func (m *Machine) WriteOperand(op Operand, value uint8) (err error) {
	switch op.(type) {
	case Accumulator:
		m.RA = value
	case nil:
		err = ErrOperandAddr{Operand: Implied{}}
	default:
		var address uint16
		address, err = m.OperandAddress(op)
		if err != nil {
			return
		}
		err = m.Memory.Write(address, value)
	}

	return
}
