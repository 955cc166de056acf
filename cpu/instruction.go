package cpu

import (
	"bytes"
	"errors"
	"io"
	"iter"
)

// Instruction is a decoded, executable instruction.
type Instruction struct {
	Mnemonic Mnemonic
	Operand  Operand
}

// DecodeInstruction reads one instruction.
// End of input before the opcode is io.EOF; inside the operand it is
// io.ErrUnexpectedEOF.
func DecodeInstruction(src io.ByteReader) (inst Instruction, err error) {
	bits, err := src.ReadByte()
	if err != nil {
		return
	}

	op, err := DecodeOpcode(bits)
	if err != nil {
		return
	}

	operand, err := DecodeOperand(op.AddrMode, src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return
	}

	inst = Instruction{Mnemonic: op.Mnemonic, Operand: operand}
	return
}

// operand returns the operand, treating a missing one as implied.
func (inst Instruction) operand() Operand {
	if inst.Operand == nil {
		return Implied{}
	}
	return inst.Operand
}

// Opcode returns the mnemonic and addressing mode of the instruction.
func (inst Instruction) Opcode() Opcode {
	return Opcode{Mnemonic: inst.Mnemonic, AddrMode: inst.operand().AddrMode()}
}

// Size returns the encoded length in bytes.
func (inst Instruction) Size() int {
	return 1 + inst.operand().AddrMode().Size()
}

// AppendBinary appends the encoded instruction.
func (inst Instruction) AppendBinary(b []byte) ([]byte, error) {
	bits, err := inst.Opcode().Encode()
	if err != nil {
		return b, err
	}

	return inst.operand().AppendBinary(append(b, bits))
}

// MarshalBinary encodes the instruction.
func (inst Instruction) MarshalBinary() ([]byte, error) {
	return inst.AppendBinary(make([]byte, 0, 3))
}

// UnmarshalBinary decodes exactly one instruction.
func (inst *Instruction) UnmarshalBinary(data []byte) (err error) {
	rd := bytes.NewReader(data)
	decoded, err := DecodeInstruction(rd)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return
	}

	if rd.Len() != 0 {
		err = ErrTrailingData
		return
	}

	*inst = decoded
	return
}

// String returns the instruction in assembler syntax.
func (inst Instruction) String() string {
	text := inst.operand().String()
	if len(text) == 0 {
		return inst.Mnemonic.String()
	}
	return inst.Mnemonic.String() + " " + text
}

// Disassembler decodes a buffer of instructions, recording the first error.
type Disassembler struct {
	Origin uint16 // Address of the first byte.

	data []byte
	err  error
}

// NewDisassembler creates a disassembler over a buffer located at origin.
func NewDisassembler(data []byte, origin uint16) *Disassembler {
	return &Disassembler{
		Origin: origin,
		data:   data,
	}
}

// All iterates over the address and instruction of each decoded instruction.
// Decoding stops at the end of the buffer or at the first error.
func (dis *Disassembler) All() iter.Seq2[uint16, Instruction] {
	return func(yield func(uint16, Instruction) bool) {
		dis.err = nil
		rd := bytes.NewReader(dis.data)
		for {
			pc := dis.Origin + uint16(len(dis.data)-rd.Len())
			inst, err := DecodeInstruction(rd)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				dis.err = wrapError(pc, err)
				return
			}
			if !yield(pc, inst) {
				return
			}
		}
	}
}

// Err returns the error that stopped the last iteration, if any.
func (dis *Disassembler) Err() error {
	return dis.err
}

// Disassemble iterates over the instructions of a buffer located at origin.
func Disassemble(data []byte, origin uint16) iter.Seq2[uint16, Instruction] {
	return NewDisassembler(data, origin).All()
}
