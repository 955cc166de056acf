package cpu

import (
	"io"

	"github.com/ezrec/atats/memory"
)

// MemorySource reads instruction bytes from memory at a program counter.
// The counter advances only past bytes that were read successfully.
type MemorySource struct {
	Memory memory.Bus
	Pc     *uint16
}

var _ io.ByteReader = MemorySource{}

// ReadByte reads the byte at the program counter.
func (src MemorySource) ReadByte() (value byte, err error) {
	value, err = src.Memory.Read(*src.Pc)
	if err != nil {
		return
	}

	*src.Pc++
	return
}
