package memory

import (
	"errors"

	"github.com/ezrec/atats/translate"
)

var f = translate.From

var (
	// ROM image errors
	ErrRomSize  = errors.New(f("rom image is not a multiple of the bank size"))
	ErrRomEmpty = errors.New(f("rom image empty"))
)

// ErrRead is returned for a read outside of every mapped region.
type ErrRead struct {
	Address uint16
}

func (err ErrRead) Error() string {
	return f("invalid read at address 0x%x", err.Address)
}

// ErrWrite is returned for a write outside of every writable region.
type ErrWrite struct {
	Address uint16
}

func (err ErrWrite) Error() string {
	return f("invalid write at address 0x%x", err.Address)
}

// ErrBank is returned when selecting a ROM bank that does not exist.
type ErrBank struct {
	Bank uint8
}

func (err ErrBank) Error() string {
	return f("invalid ROM bank 0x%x", err.Bank)
}
