package emulator

import (
	"errors"

	"github.com/ezrec/atats/translate"
)

var f = translate.From

var (
	ErrTickLimit   = errors.New(f("tick limit exceeded"))
	ErrConfigEmpty = errors.New(f("configuration names no source or rom"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 if the address has no source.
	Address uint16 // Address of the failing instruction.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("$%04x %v", err.Address, err.Err)
	}
	return f("line %d ($%04x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfigKey is returned for a configuration key that is not understood.
type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("unknown configuration key '%v'", string(err))
}
