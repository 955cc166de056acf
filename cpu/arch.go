package cpu

import (
	"io"
)

// Word is an 8-bit data value.
type Word uint8

// Address is a 16-bit memory address, stored little-endian.
type Address uint16

// ZeropageAddr is an address within the first page of memory.
type ZeropageAddr uint8

// RelativeAddr is a signed branch displacement.
type RelativeAddr int8

// DecodeWord reads one byte.
func DecodeWord(src io.ByteReader) (word Word, err error) {
	b, err := src.ReadByte()
	word = Word(b)
	return
}

// DecodeAddress reads two bytes, low byte first.
func DecodeAddress(src io.ByteReader) (addr Address, err error) {
	lo, err := src.ReadByte()
	if err != nil {
		return
	}
	hi, err := src.ReadByte()
	if err != nil {
		return
	}

	addr = Address(uint16(lo) | uint16(hi)<<8)
	return
}

// DecodeZeropageAddr reads one byte.
func DecodeZeropageAddr(src io.ByteReader) (addr ZeropageAddr, err error) {
	b, err := src.ReadByte()
	addr = ZeropageAddr(b)
	return
}

// DecodeRelativeAddr reads one byte as a two's complement displacement.
func DecodeRelativeAddr(src io.ByteReader) (addr RelativeAddr, err error) {
	b, err := src.ReadByte()
	addr = RelativeAddr(int8(b))
	return
}

// AppendBinary appends the encoded word.
func (word Word) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(word)), nil
}

// AppendBinary appends the encoded address, low byte first.
func (addr Address) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(addr), byte(addr>>8)), nil
}

// AppendBinary appends the encoded zero page address.
func (addr ZeropageAddr) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(addr)), nil
}

// AppendBinary appends the encoded displacement.
func (addr RelativeAddr) AppendBinary(b []byte) ([]byte, error) {
	return append(b, byte(addr)), nil
}

// Offset applies the displacement to a program counter, wrapping at 16 bits.
func (addr RelativeAddr) Offset(pc uint16) uint16 {
	return pc + uint16(int16(addr))
}
