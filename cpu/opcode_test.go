package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	ops := Opcodes()
	assert.Equal(151, len(ops))

	for _, op := range ops {
		bits, err := op.Encode()
		if !assert.NoError(err, op.String()) {
			continue
		}
		decoded, err := DecodeOpcode(bits)
		assert.NoError(err, op.String())
		assert.Equal(op, decoded, "0x%02x", bits)
	}
}

func TestOpcodeDecodeAll(t *testing.T) {
	assert := assert.New(t)

	valid := 0
	for n := range 256 {
		bits := uint8(n)
		op, err := DecodeOpcode(bits)
		if err != nil {
			var eo ErrOpcode
			assert.True(errors.As(err, &eo))
			assert.Equal(bits, eo.Bits)
			continue
		}
		valid++
		assert.True(op.Mnemonic.Type().Allows(op.AddrMode), "0x%02x", bits)
		encoded, err := op.Encode()
		assert.NoError(err)
		decoded, err := DecodeOpcode(encoded)
		assert.NoError(err)
		assert.Equal(op, decoded, "0x%02x", bits)
	}

	assert.Equal(151, valid)
}

func TestOpcodeDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		bits uint8
		op   Opcode
	}){
		{0x00, Opcode{BRK, MODE_IMPL}},
		{0x01, Opcode{ORA, MODE_X_IND}},
		{0x0a, Opcode{ASL, MODE_ACC}},
		{0x10, Opcode{BPL, MODE_REL}},
		{0x20, Opcode{JSR, MODE_ABS}},
		{0x24, Opcode{BIT, MODE_ZPG}},
		{0x2c, Opcode{BIT, MODE_ABS}},
		{0x4c, Opcode{JMP, MODE_ABS}},
		{0x6c, Opcode{JMP, MODE_IND}},
		{0x60, Opcode{RTS, MODE_IMPL}},
		{0x81, Opcode{STA, MODE_X_IND}},
		{0x84, Opcode{STY, MODE_ZPG}},
		{0x8a, Opcode{TXA, MODE_IMPL}},
		{0x91, Opcode{STA, MODE_IND_Y}},
		{0x96, Opcode{STX, MODE_ZPG_Y}},
		{0x9a, Opcode{TXS, MODE_IMPL}},
		{0xa0, Opcode{LDY, MODE_IMM}},
		{0xa2, Opcode{LDX, MODE_IMM}},
		{0xa9, Opcode{LDA, MODE_IMM}},
		{0xaa, Opcode{TAX, MODE_IMPL}},
		{0xb1, Opcode{LDA, MODE_IND_Y}},
		{0xba, Opcode{TSX, MODE_IMPL}},
		{0xbe, Opcode{LDX, MODE_ABS_Y}},
		{0xbc, Opcode{LDY, MODE_ABS_X}},
		{0xc0, Opcode{CPY, MODE_IMM}},
		{0xcc, Opcode{CPY, MODE_ABS}},
		{0xca, Opcode{DEX, MODE_IMPL}},
		{0xde, Opcode{DEC, MODE_ABS_X}},
		{0xe0, Opcode{CPX, MODE_IMM}},
		{0xe9, Opcode{SBC, MODE_IMM}},
		{0xea, Opcode{NOP, MODE_IMPL}},
		{0xfe, Opcode{INC, MODE_ABS_X}},
	}

	for _, entry := range table {
		op, err := DecodeOpcode(entry.bits)
		assert.NoError(err, "0x%02x", entry.bits)
		assert.Equal(entry.op, op, "0x%02x", entry.bits)

		bits, err := entry.op.Encode()
		assert.NoError(err, entry.op.String())
		assert.Equal(entry.bits, bits, entry.op.String())
	}
}

func TestOpcodeDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	// 0x89 matches STA, whose type has no immediate mode.
	for _, bits := range []uint8{0x02, 0x03, 0x04, 0x0c, 0x1a, 0x80, 0x89, 0x9e, 0xff} {
		_, err := DecodeOpcode(bits)
		assert.Equal(ErrOpcode{Bits: bits}, err, "0x%02x", bits)
	}
}

func TestOpcodeEncodeInvalid(t *testing.T) {
	assert := assert.New(t)

	table := []Opcode{
		{STA, MODE_IMM},
		{JMP, MODE_ZPG},
		{STX, MODE_ABS_Y},
		{INX, MODE_ACC},
		{BNE, MODE_ABS},
		{LDA, MODE_ZPG_Y},
	}

	for _, op := range table {
		_, err := op.Encode()
		assert.Equal(ErrAddrMode{Mode: op.AddrMode, Type: op.Mnemonic.Type()}, err, op.String())
	}

	for _, mn := range []Mnemonic{Mnemonic(-1), MNEMONIC_COUNT, Mnemonic(200)} {
		assert.False(mn.Valid())
		_, err := Opcode{Mnemonic: mn, AddrMode: MODE_IMPL}.Encode()
		assert.Equal(ErrMnemonic(mn), err)

		_, err = Instruction{Mnemonic: mn}.MarshalBinary()
		assert.ErrorIs(err, ErrMnemonic(mn))

		kind, ok := KindOf(err)
		assert.True(ok)
		assert.Equal(ERR_OPCODE, kind)
	}
	assert.True(NOP.Valid())
}

func TestMnemonic(t *testing.T) {
	assert := assert.New(t)

	mn, ok := ParseMnemonic("lda")
	assert.True(ok)
	assert.Equal(LDA, mn)

	mn, ok = ParseMnemonic("STY")
	assert.True(ok)
	assert.Equal(STY, mn)

	_, ok = ParseMnemonic("XYZ")
	assert.False(ok)

	for n := range MNEMONIC_COUNT {
		mn := Mnemonic(n)
		assert.NotEmpty(mn.Type().Modes(), mn.String())
	}

	assert.Equal([]AddrMode{MODE_ABS, MODE_IND}, JMP.Type().Modes())
	assert.Equal([]AddrMode{MODE_ABS, MODE_ZPG}, BIT.Type().Modes())
	assert.Equal([]AddrMode{MODE_REL}, BEQ.Type().Modes())
	assert.Equal("LDA #", Opcode{LDA, MODE_IMM}.String())
	assert.Equal("JMP ind", Opcode{JMP, MODE_IND}.String())
}
