package cpu

import (
	"fmt"
	"strings"
)

// Mnemonic is an instruction name, independent of addressing mode.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	ORA = Mnemonic(0)  // ORA
	AND = Mnemonic(1)  // AND
	EOR = Mnemonic(2)  // EOR
	ADC = Mnemonic(3)  // ADC
	LDA = Mnemonic(4)  // LDA
	CMP = Mnemonic(5)  // CMP
	SBC = Mnemonic(6)  // SBC
	BPL = Mnemonic(7)  // BPL
	BMI = Mnemonic(8)  // BMI
	BVC = Mnemonic(9)  // BVC
	BVS = Mnemonic(10) // BVS
	BCC = Mnemonic(11) // BCC
	BCS = Mnemonic(12) // BCS
	BNE = Mnemonic(13) // BNE
	BEQ = Mnemonic(14) // BEQ
	BIT = Mnemonic(15) // BIT
	CPX = Mnemonic(16) // CPX
	CPY = Mnemonic(17) // CPY
	INC = Mnemonic(18) // INC
	DEC = Mnemonic(19) // DEC
	INX = Mnemonic(20) // INX
	INY = Mnemonic(21) // INY
	DEX = Mnemonic(22) // DEX
	DEY = Mnemonic(23) // DEY
	BRK = Mnemonic(24) // BRK
	PHP = Mnemonic(25) // PHP
	RTI = Mnemonic(26) // RTI
	RTS = Mnemonic(27) // RTS
	PLP = Mnemonic(28) // PLP
	PHA = Mnemonic(29) // PHA
	PLA = Mnemonic(30) // PLA
	SEC = Mnemonic(31) // SEC
	CLC = Mnemonic(32) // CLC
	SEI = Mnemonic(33) // SEI
	CLI = Mnemonic(34) // CLI
	SED = Mnemonic(35) // SED
	CLD = Mnemonic(36) // CLD
	CLV = Mnemonic(37) // CLV
	TYA = Mnemonic(38) // TYA
	TAY = Mnemonic(39) // TAY
	TAX = Mnemonic(40) // TAX
	TXA = Mnemonic(41) // TXA
	TXS = Mnemonic(42) // TXS
	TSX = Mnemonic(43) // TSX
	NOP = Mnemonic(44) // NOP
	JMP = Mnemonic(45) // JMP
	JSR = Mnemonic(46) // JSR
	LDX = Mnemonic(47) // LDX
	LDY = Mnemonic(48) // LDY
	ASL = Mnemonic(49) // ASL
	ROL = Mnemonic(50) // ROL
	LSR = Mnemonic(51) // LSR
	ROR = Mnemonic(52) // ROR
	STA = Mnemonic(53) // STA
	STX = Mnemonic(54) // STX
	STY = Mnemonic(55) // STY
)

// MNEMONIC_COUNT is the number of defined mnemonics.
const MNEMONIC_COUNT = 56

// Valid reports whether the mnemonic is defined.
func (mn Mnemonic) Valid() bool {
	return mn >= 0 && mn < MNEMONIC_COUNT
}

// ParseMnemonic looks up a mnemonic by name, ignoring case.
func ParseMnemonic(name string) (mn Mnemonic, ok bool) {
	name = strings.ToUpper(name)
	for n := range MNEMONIC_COUNT {
		if Mnemonic(n).String() == name {
			return Mnemonic(n), true
		}
	}

	return
}

// InstType groups mnemonics sharing a set of legal addressing modes
// and their bit encoding.
type InstType int

//go:generate go tool stringer -linecomment -type=InstType
const (
	TYPE_AOP = InstType(0)  // aop
	TYPE_LDX = InstType(1)  // ldx
	TYPE_LDY = InstType(2)  // ldy
	TYPE_STA = InstType(3)  // sta
	TYPE_STX = InstType(4)  // stx
	TYPE_STY = InstType(5)  // sty
	TYPE_CXY = InstType(6)  // cxy
	TYPE_RSH = InstType(7)  // rsh
	TYPE_IDC = InstType(8)  // idc
	TYPE_BIT = InstType(9)  // bit
	TYPE_JMP = InstType(10) // jmp
	TYPE_JSR = InstType(11) // jsr
	TYPE_BCH = InstType(12) // bch
	TYPE_IMP = InstType(13) // imp
)

// Type returns the instruction type of the mnemonic.
// It panics if the mnemonic is not Valid.
func (mn Mnemonic) Type() InstType {
	switch mn {
	case ORA, AND, EOR, ADC, LDA, CMP, SBC:
		return TYPE_AOP
	case BPL, BMI, BVC, BVS, BCC, BCS, BNE, BEQ:
		return TYPE_BCH
	case BIT:
		return TYPE_BIT
	case CPX, CPY:
		return TYPE_CXY
	case INC, DEC:
		return TYPE_IDC
	case INX, INY, DEX, DEY, BRK, PHP, RTI, RTS, PLP, PHA, PLA,
		SEC, CLC, SEI, CLI, SED, CLD, CLV,
		TYA, TAY, TAX, TXA, TXS, TSX, NOP:
		return TYPE_IMP
	case JMP:
		return TYPE_JMP
	case JSR:
		return TYPE_JSR
	case LDX:
		return TYPE_LDX
	case LDY:
		return TYPE_LDY
	case ASL, ROL, LSR, ROR:
		return TYPE_RSH
	case STA:
		return TYPE_STA
	case STX:
		return TYPE_STX
	case STY:
		return TYPE_STY
	}

	panic(fmt.Sprintf("unknown mnemonic %d", int(mn)))
}

// modeField selects the opcode bit field that carries the addressing mode.
type modeField int

const (
	fieldNone = modeField(iota)
	fieldA
	fieldB
)

// modeTable maps mode field values of an instruction type to addressing modes.
type modeTable struct {
	field modeField
	modes map[uint8]AddrMode
}

var _type_modes = map[InstType]modeTable{
	TYPE_AOP: {fieldB, map[uint8]AddrMode{
		0: MODE_X_IND, 1: MODE_ZPG, 2: MODE_IMM, 3: MODE_ABS,
		4: MODE_IND_Y, 5: MODE_ZPG_X, 6: MODE_ABS_Y, 7: MODE_ABS_X,
	}},
	TYPE_LDX: {fieldB, map[uint8]AddrMode{
		0: MODE_IMM, 1: MODE_ZPG, 3: MODE_ABS, 5: MODE_ZPG_Y, 7: MODE_ABS_Y,
	}},
	TYPE_LDY: {fieldB, map[uint8]AddrMode{
		0: MODE_IMM, 1: MODE_ZPG, 3: MODE_ABS, 5: MODE_ZPG_X, 7: MODE_ABS_X,
	}},
	TYPE_STA: {fieldB, map[uint8]AddrMode{
		0: MODE_X_IND, 1: MODE_ZPG, 3: MODE_ABS,
		4: MODE_IND_Y, 5: MODE_ZPG_X, 6: MODE_ABS_Y, 7: MODE_ABS_X,
	}},
	TYPE_STX: {fieldB, map[uint8]AddrMode{
		1: MODE_ZPG, 3: MODE_ABS, 5: MODE_ZPG_Y,
	}},
	TYPE_STY: {fieldB, map[uint8]AddrMode{
		1: MODE_ZPG, 3: MODE_ABS, 5: MODE_ZPG_X,
	}},
	TYPE_CXY: {fieldB, map[uint8]AddrMode{
		0: MODE_IMM, 1: MODE_ZPG, 3: MODE_ABS,
	}},
	TYPE_RSH: {fieldB, map[uint8]AddrMode{
		1: MODE_ZPG, 2: MODE_ACC, 3: MODE_ABS, 5: MODE_ZPG_X, 7: MODE_ABS_X,
	}},
	TYPE_IDC: {fieldB, map[uint8]AddrMode{
		1: MODE_ZPG, 3: MODE_ABS, 5: MODE_ZPG_X, 7: MODE_ABS_X,
	}},
	TYPE_BIT: {fieldB, map[uint8]AddrMode{
		1: MODE_ZPG, 3: MODE_ABS,
	}},
	TYPE_JMP: {fieldA, map[uint8]AddrMode{
		2: MODE_ABS, 3: MODE_IND,
	}},
	TYPE_JSR: {fieldNone, map[uint8]AddrMode{0: MODE_ABS}},
	TYPE_BCH: {fieldNone, map[uint8]AddrMode{0: MODE_REL}},
	TYPE_IMP: {fieldNone, map[uint8]AddrMode{0: MODE_IMPL}},
}

// Modes returns the legal addressing modes of the instruction type.
func (it InstType) Modes() (modes []AddrMode) {
	table := _type_modes[it]
	for _, mode := range AddrModes {
		if _, ok := table.bits(mode); ok {
			modes = append(modes, mode)
		}
	}
	return
}

// Allows returns true if the addressing mode is legal for the type.
func (it InstType) Allows(mode AddrMode) (ok bool) {
	_, ok = _type_modes[it].bits(mode)
	return
}

// bits returns the mode field value for an addressing mode.
func (table modeTable) bits(mode AddrMode) (value uint8, ok bool) {
	for key, want := range table.modes {
		if want == mode {
			return key, true
		}
	}
	return
}

// decode returns the addressing mode selected by the opcode fields.
func (table modeTable) decode(a, b uint8) (mode AddrMode, ok bool) {
	var value uint8
	switch table.field {
	case fieldA:
		value = a
	case fieldB:
		value = b
	}
	mode, ok = table.modes[value]
	return
}

// encode returns the opcode bits contributed by the addressing mode.
func (table modeTable) encode(mode AddrMode) (bits uint8, ok bool) {
	value, ok := table.bits(mode)
	if !ok {
		return
	}
	switch table.field {
	case fieldA:
		bits = value << 5
	case fieldB:
		bits = value << 2
	}
	return
}
