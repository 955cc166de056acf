package cpu

import (
	"fmt"
	"io"
)

// AddrMode is an addressing mode kind.
type AddrMode int

//go:generate go tool stringer -linecomment -type=AddrMode
const (
	MODE_ACC   = AddrMode(0)  // A
	MODE_ABS   = AddrMode(1)  // abs
	MODE_ABS_X = AddrMode(2)  // abs,X
	MODE_ABS_Y = AddrMode(3)  // abs,Y
	MODE_IMM   = AddrMode(4)  // #
	MODE_IMPL  = AddrMode(5)  // impl
	MODE_IND   = AddrMode(6)  // ind
	MODE_X_IND = AddrMode(7)  // X,ind
	MODE_IND_Y = AddrMode(8)  // ind,Y
	MODE_REL   = AddrMode(9)  // rel
	MODE_ZPG   = AddrMode(10) // zpg
	MODE_ZPG_X = AddrMode(11) // zpg,X
	MODE_ZPG_Y = AddrMode(12) // zpg,Y
)

// AddrModes lists every addressing mode.
var AddrModes = []AddrMode{
	MODE_ACC, MODE_ABS, MODE_ABS_X, MODE_ABS_Y, MODE_IMM, MODE_IMPL, MODE_IND,
	MODE_X_IND, MODE_IND_Y, MODE_REL, MODE_ZPG, MODE_ZPG_X, MODE_ZPG_Y,
}

// Size returns the number of operand bytes following the opcode.
func (mode AddrMode) Size() int {
	switch mode {
	case MODE_ACC, MODE_IMPL:
		return 0
	case MODE_IMM, MODE_X_IND, MODE_IND_Y, MODE_REL, MODE_ZPG, MODE_ZPG_X, MODE_ZPG_Y:
		return 1
	case MODE_ABS, MODE_ABS_X, MODE_ABS_Y, MODE_IND:
		return 2
	}

	panic(fmt.Sprintf("unknown addressing mode %d", int(mode)))
}

// Operand is the decoded payload of one addressing mode.
//
// The set of operands is closed; every implementation is declared in this
// file and dispatch is by type switch.
type Operand interface {
	// AddrMode returns the kind of the operand.
	AddrMode() AddrMode
	// AppendBinary appends the encoded operand bytes.
	AppendBinary(b []byte) ([]byte, error)
	// String returns the classic assembler form.
	String() string

	operand()
}

// Accumulator operates on register A.
type Accumulator struct{}

// Implied has no operand.
type Implied struct{}

// Immediate carries its data in the instruction.
type Immediate struct {
	Data Word
}

// Absolute addresses memory directly.
type Absolute struct {
	Address Address
}

// AbsoluteX addresses memory directly, indexed by X.
type AbsoluteX struct {
	Address Address
}

// AbsoluteY addresses memory directly, indexed by Y.
type AbsoluteY struct {
	Address Address
}

// Indirect reads the effective address from memory.
type Indirect struct {
	Address Address
}

// XIndirect reads the effective address from the zero page, pre-indexed by X.
type XIndirect struct {
	Address ZeropageAddr
}

// IndirectY reads an address from the zero page, post-indexed by Y.
type IndirectY struct {
	Address ZeropageAddr
}

// Relative is a branch displacement from the program counter.
type Relative struct {
	Offset RelativeAddr
}

// Zeropage addresses the first page directly.
type Zeropage struct {
	Address ZeropageAddr
}

// ZeropageX addresses the first page, indexed by X.
type ZeropageX struct {
	Address ZeropageAddr
}

// ZeropageY addresses the first page, indexed by Y.
type ZeropageY struct {
	Address ZeropageAddr
}

func (Accumulator) AddrMode() AddrMode { return MODE_ACC }
func (Implied) AddrMode() AddrMode     { return MODE_IMPL }
func (Immediate) AddrMode() AddrMode   { return MODE_IMM }
func (Absolute) AddrMode() AddrMode    { return MODE_ABS }
func (AbsoluteX) AddrMode() AddrMode   { return MODE_ABS_X }
func (AbsoluteY) AddrMode() AddrMode   { return MODE_ABS_Y }
func (Indirect) AddrMode() AddrMode    { return MODE_IND }
func (XIndirect) AddrMode() AddrMode   { return MODE_X_IND }
func (IndirectY) AddrMode() AddrMode   { return MODE_IND_Y }
func (Relative) AddrMode() AddrMode    { return MODE_REL }
func (Zeropage) AddrMode() AddrMode    { return MODE_ZPG }
func (ZeropageX) AddrMode() AddrMode   { return MODE_ZPG_X }
func (ZeropageY) AddrMode() AddrMode   { return MODE_ZPG_Y }

func (Accumulator) operand() {}
func (Implied) operand()     {}
func (Immediate) operand()   {}
func (Absolute) operand()    {}
func (AbsoluteX) operand()   {}
func (AbsoluteY) operand()   {}
func (Indirect) operand()    {}
func (XIndirect) operand()   {}
func (IndirectY) operand()   {}
func (Relative) operand()    {}
func (Zeropage) operand()    {}
func (ZeropageX) operand()   {}
func (ZeropageY) operand()   {}

func (Accumulator) AppendBinary(b []byte) ([]byte, error) { return b, nil }
func (Implied) AppendBinary(b []byte) ([]byte, error)     { return b, nil }
func (op Immediate) AppendBinary(b []byte) ([]byte, error) {
	return op.Data.AppendBinary(b)
}
func (op Absolute) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op AbsoluteX) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op AbsoluteY) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op Indirect) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op XIndirect) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op IndirectY) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op Relative) AppendBinary(b []byte) ([]byte, error) {
	return op.Offset.AppendBinary(b)
}
func (op Zeropage) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op ZeropageX) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}
func (op ZeropageY) AppendBinary(b []byte) ([]byte, error) {
	return op.Address.AppendBinary(b)
}

func (Accumulator) String() string    { return "A" }
func (Implied) String() string        { return "" }
func (op Immediate) String() string   { return fmt.Sprintf("#$%02X", uint8(op.Data)) }
func (op Absolute) String() string    { return fmt.Sprintf("$%04X", uint16(op.Address)) }
func (op AbsoluteX) String() string   { return fmt.Sprintf("$%04X,X", uint16(op.Address)) }
func (op AbsoluteY) String() string   { return fmt.Sprintf("$%04X,Y", uint16(op.Address)) }
func (op Indirect) String() string    { return fmt.Sprintf("($%04X)", uint16(op.Address)) }
func (op XIndirect) String() string   { return fmt.Sprintf("($%02X,X)", uint8(op.Address)) }
func (op IndirectY) String() string   { return fmt.Sprintf("($%02X),Y", uint8(op.Address)) }
func (op Zeropage) String() string    { return fmt.Sprintf("$%02X", uint8(op.Address)) }
func (op ZeropageX) String() string   { return fmt.Sprintf("$%02X,X", uint8(op.Address)) }
func (op ZeropageY) String() string   { return fmt.Sprintf("$%02X,Y", uint8(op.Address)) }

// String of a branch is relative to the start of the two byte instruction.
func (op Relative) String() string {
	delta := int(op.Offset) + 2
	if delta < 0 {
		return fmt.Sprintf("*%d", delta)
	}
	return fmt.Sprintf("*+%d", delta)
}

// DecodeOperand reads the operand bytes of an addressing mode.
func DecodeOperand(mode AddrMode, src io.ByteReader) (op Operand, err error) {
	switch mode {
	case MODE_ACC:
		op = Accumulator{}
	case MODE_IMPL:
		op = Implied{}
	case MODE_IMM:
		var data Word
		data, err = DecodeWord(src)
		op = Immediate{Data: data}
	case MODE_ABS, MODE_ABS_X, MODE_ABS_Y, MODE_IND:
		var addr Address
		addr, err = DecodeAddress(src)
		switch mode {
		case MODE_ABS:
			op = Absolute{Address: addr}
		case MODE_ABS_X:
			op = AbsoluteX{Address: addr}
		case MODE_ABS_Y:
			op = AbsoluteY{Address: addr}
		default:
			op = Indirect{Address: addr}
		}
	case MODE_X_IND, MODE_IND_Y, MODE_ZPG, MODE_ZPG_X, MODE_ZPG_Y:
		var addr ZeropageAddr
		addr, err = DecodeZeropageAddr(src)
		switch mode {
		case MODE_X_IND:
			op = XIndirect{Address: addr}
		case MODE_IND_Y:
			op = IndirectY{Address: addr}
		case MODE_ZPG:
			op = Zeropage{Address: addr}
		case MODE_ZPG_X:
			op = ZeropageX{Address: addr}
		default:
			op = ZeropageY{Address: addr}
		}
	case MODE_REL:
		var offset RelativeAddr
		offset, err = DecodeRelativeAddr(src)
		op = Relative{Offset: offset}
	default:
		panic(fmt.Sprintf("unknown addressing mode %d", int(mode)))
	}

	if err != nil {
		op = nil
	}

	return
}

// MakeOperand builds an operand of a mode from its literal value.
// The value is truncated to the operand width of the mode.
func MakeOperand(mode AddrMode, value uint16) Operand {
	switch mode {
	case MODE_ACC:
		return Accumulator{}
	case MODE_IMPL:
		return Implied{}
	case MODE_IMM:
		return Immediate{Data: Word(value)}
	case MODE_ABS:
		return Absolute{Address: Address(value)}
	case MODE_ABS_X:
		return AbsoluteX{Address: Address(value)}
	case MODE_ABS_Y:
		return AbsoluteY{Address: Address(value)}
	case MODE_IND:
		return Indirect{Address: Address(value)}
	case MODE_X_IND:
		return XIndirect{Address: ZeropageAddr(value)}
	case MODE_IND_Y:
		return IndirectY{Address: ZeropageAddr(value)}
	case MODE_REL:
		return Relative{Offset: RelativeAddr(int8(uint8(value)))}
	case MODE_ZPG:
		return Zeropage{Address: ZeropageAddr(value)}
	case MODE_ZPG_X:
		return ZeropageX{Address: ZeropageAddr(value)}
	case MODE_ZPG_Y:
		return ZeropageY{Address: ZeropageAddr(value)}
	}

	panic(fmt.Sprintf("unknown addressing mode %d", int(mode)))
}
