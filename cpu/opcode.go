package cpu

import (
	"fmt"
	"math/bits"
)

// fieldSet is a set of values of one 3-bit opcode field.
type fieldSet uint8

// anyValue matches every field value.
const anyValue = fieldSet(0xff)

// is builds a set from field values.
func is(values ...uint8) (set fieldSet) {
	for _, value := range values {
		set |= 1 << value
	}
	return
}

// has returns true if the value is a member.
func (set fieldSet) has(value uint8) bool {
	return set&(1<<value) != 0
}

// canonical returns the field value when the set has a single member, otherwise 0.
func (set fieldSet) canonical() uint8 {
	if bits.OnesCount8(uint8(set)) != 1 {
		return 0
	}
	return uint8(bits.TrailingZeros8(uint8(set)))
}

// pattern matches the aaabbbcc fields of an opcode byte.
type pattern struct {
	a, b, c  fieldSet
	mnemonic Mnemonic
}

// _patterns is applied in order; the first match wins.
var _patterns = []pattern{
	{is(0), is(0), is(0), BRK},
	{is(0), is(2), is(0), PHP},
	{is(0), is(4), is(0), BPL},
	{is(0), is(6), is(0), CLC},
	{is(0), anyValue, is(1), ORA},
	{is(0), anyValue, is(2), ASL},
	{is(1), is(0), is(0), JSR},
	{is(1), is(1, 3), is(0), BIT},
	{is(1), is(2), is(0), PLP},
	{is(1), is(4), is(0), BMI},
	{is(1), is(6), is(0), SEC},
	{is(1), anyValue, is(1), AND},
	{is(1), anyValue, is(2), ROL},
	{is(2), is(0), is(0), RTI},
	{is(2), is(2), is(0), PHA},
	{is(2, 3), is(3), is(0), JMP},
	{is(2), is(4), is(0), BVC},
	{is(2), is(6), is(0), CLI},
	{is(2), anyValue, is(1), EOR},
	{is(2), anyValue, is(2), LSR},
	{is(3), is(0), is(0), RTS},
	{is(3), is(2), is(0), PLA},
	{is(3), is(4), is(0), BVS},
	{is(3), is(6), is(0), SEI},
	{is(3), anyValue, is(1), ADC},
	{is(3), anyValue, is(2), ROR},
	{is(4), is(1, 3, 5), is(0), STY},
	{is(4), is(2), is(0), DEY},
	{is(4), is(4), is(0), BCC},
	{is(4), is(6), is(0), TYA},
	{is(4), anyValue, is(1), STA},
	{is(4), is(1, 3, 5), is(2), STX},
	{is(4), is(2), is(2), TXA},
	{is(5), is(2), is(2), TAX},
	{is(4), is(6), is(2), TXS},
	{is(5), is(6), is(2), TSX},
	{is(5), is(0, 1, 3, 5, 7), is(0), LDY},
	{is(5), is(2), is(0), TAY},
	{is(5), is(4), is(0), BCS},
	{is(5), is(6), is(0), CLV},
	{is(5), anyValue, is(1), LDA},
	{is(5), is(0, 1, 3, 5, 7), is(2), LDX},
	{is(6), is(0, 1, 3), is(0), CPY},
	{is(6), is(2), is(0), INY},
	{is(6), is(4), is(0), BNE},
	{is(6), is(6), is(0), CLD},
	{is(6), anyValue, is(1), CMP},
	{is(6), is(1, 3, 5, 7), is(2), DEC},
	{is(6), is(2), is(2), DEX},
	{is(7), is(0, 1, 3), is(0), CPX},
	{is(7), is(2), is(0), INX},
	{is(7), is(4), is(0), BEQ},
	{is(7), is(6), is(0), SED},
	{is(7), anyValue, is(1), SBC},
	{is(7), is(1, 3, 5, 7), is(2), INC},
	{is(7), is(2), is(2), NOP},
}

// splitFields splits an opcode byte into its aaabbbcc fields.
func splitFields(bits uint8) (a, b, c uint8) {
	a = bits >> 5
	b = (bits >> 2) & 0x7
	c = bits & 0x3
	return
}

// decodeMnemonic finds the first pattern matching the opcode byte.
func decodeMnemonic(bits uint8) (mn Mnemonic, ok bool) {
	a, b, c := splitFields(bits)
	for _, pat := range _patterns {
		if pat.a.has(a) && pat.b.has(b) && pat.c.has(c) {
			return pat.mnemonic, true
		}
	}
	return
}

// mnemonicBits returns the canonical opcode bits of a mnemonic.
// Fields matching more than one value contribute zero bits.
func mnemonicBits(mn Mnemonic) (bits uint8) {
	for _, pat := range _patterns {
		if pat.mnemonic == mn {
			bits = pat.a.canonical()<<5 | pat.b.canonical()<<2 | pat.c.canonical()
			return
		}
	}

	panic(fmt.Sprintf("unknown mnemonic %d", int(mn)))
}

// Opcode is the decoded form of an opcode byte.
type Opcode struct {
	Mnemonic Mnemonic
	AddrMode AddrMode
}

// DecodeOpcode decodes an opcode byte.
func DecodeOpcode(bits uint8) (op Opcode, err error) {
	mn, ok := decodeMnemonic(bits)
	if !ok {
		err = ErrOpcode{Bits: bits}
		return
	}

	a, b, _ := splitFields(bits)
	mode, ok := _type_modes[mn.Type()].decode(a, b)
	if !ok {
		err = ErrOpcode{Bits: bits}
		return
	}

	op = Opcode{Mnemonic: mn, AddrMode: mode}
	return
}

// Encode returns an opcode byte that decodes to the opcode.
// Aliased encodings are not preserved; the canonical byte is returned.
func (op Opcode) Encode() (bits uint8, err error) {
	if !op.Mnemonic.Valid() {
		err = ErrMnemonic(op.Mnemonic)
		return
	}

	it := op.Mnemonic.Type()
	modeBits, ok := _type_modes[it].encode(op.AddrMode)
	if !ok {
		err = ErrAddrMode{Mode: op.AddrMode, Type: it}
		return
	}

	bits = mnemonicBits(op.Mnemonic) | modeBits
	return
}

// String returns the opcode as 'MNEMONIC mode'.
func (op Opcode) String() string {
	return fmt.Sprintf("%v %v", op.Mnemonic, op.AddrMode)
}

// Opcodes returns every legal opcode, in mnemonic then addressing mode order.
func Opcodes() (ops []Opcode) {
	for n := range MNEMONIC_COUNT {
		mn := Mnemonic(n)
		for _, mode := range mn.Type().Modes() {
			ops = append(ops, Opcode{Mnemonic: mn, AddrMode: mode})
		}
	}
	return
}
