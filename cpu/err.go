package cpu

import (
	"errors"
	"io/fs"

	"github.com/ezrec/atats/memory"
	"github.com/ezrec/atats/translate"
)

var f = translate.From

var (
	// I/O classes of machine errors
	ErrAddrNotAvailable = errors.New(f("address not available"))
	ErrInvalidData      = errors.New(f("invalid data"))

	// Instruction encoding errors
	ErrTrailingData = errors.New(f("trailing data after instruction"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroArguments     = errors.New(f(".macro argument count mismatch"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrDataSyntax         = errors.New(f("data syntax"))
	ErrDataRange          = errors.New(f("data out of range"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOperandSyntax      = errors.New(f("operand syntax"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrBranchRange        = errors.New(f("branch target out of range"))
	ErrProgramOverlap     = errors.New(f("program overlaps itself"))
	ErrProgramOutside     = errors.New(f("program outside of the ROM window"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrorKind classifies a machine error.
type ErrorKind int

//go:generate go tool stringer -linecomment -type=ErrorKind
const (
	ERR_READ         = ErrorKind(0) // read
	ERR_WRITE        = ErrorKind(1) // write
	ERR_BANK         = ErrorKind(2) // bank
	ERR_OPCODE       = ErrorKind(3) // opcode
	ERR_ADDR_MODE    = ErrorKind(4) // addrmode
	ERR_OPERAND_READ = ErrorKind(5) // operand read
	ERR_OPERAND_ADDR = ErrorKind(6) // operand address
)

// IoKind returns the I/O error class of the kind.
func (kind ErrorKind) IoKind() error {
	switch kind {
	case ERR_READ, ERR_WRITE:
		return ErrAddrNotAvailable
	case ERR_BANK:
		return fs.ErrNotExist
	case ERR_ADDR_MODE:
		return fs.ErrInvalid
	default:
		return ErrInvalidData
	}
}

// KindOf classifies an error chain.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var me MachineError
	if errors.As(err, &me) {
		return me.Kind, true
	}

	ok = true
	switch {
	case errors.As(err, new(memory.ErrRead)):
		kind = ERR_READ
	case errors.As(err, new(memory.ErrWrite)):
		kind = ERR_WRITE
	case errors.As(err, new(memory.ErrBank)):
		kind = ERR_BANK
	case errors.As(err, new(ErrOpcode)), errors.As(err, new(ErrMnemonic)):
		kind = ERR_OPCODE
	case errors.As(err, new(ErrAddrMode)):
		kind = ERR_ADDR_MODE
	case errors.As(err, new(ErrOperandRead)):
		kind = ERR_OPERAND_READ
	case errors.As(err, new(ErrOperandAddr)):
		kind = ERR_OPERAND_ADDR
	default:
		ok = false
	}

	return
}

// MachineError is any failure of the machine, tagged with its kind and the
// address of the instruction that raised it.
type MachineError struct {
	Kind ErrorKind
	Pc   uint16
	Err  error
}

// wrapError tags an error with its kind, leaving unknown errors unchanged.
func wrapError(pc uint16, err error) error {
	if err == nil {
		return nil
	}

	var me MachineError
	if errors.As(err, &me) {
		return err
	}

	kind, ok := KindOf(err)
	if !ok {
		return err
	}

	return MachineError{Kind: kind, Pc: pc, Err: err}
}

func (err MachineError) Error() string {
	return f("%04x: %v: %v", err.Pc, err.Kind, err.Err)
}

func (err MachineError) Unwrap() error {
	return err.Err
}

// Is matches the I/O class of the error kind.
func (err MachineError) Is(target error) bool {
	return target == err.Kind.IoKind()
}

// ErrOpcode is returned for a byte that decodes to no instruction.
type ErrOpcode struct {
	Bits uint8
}

func (err ErrOpcode) Error() string {
	return f("invalid opcode 0x%02x", err.Bits)
}

// ErrMnemonic is returned for a mnemonic outside the defined set.
type ErrMnemonic Mnemonic

func (err ErrMnemonic) Error() string {
	return f("invalid mnemonic %d", int(err))
}

// ErrAddrMode is returned when encoding an addressing mode the instruction
// type does not permit.
type ErrAddrMode struct {
	Mode AddrMode
	Type InstType
}

func (err ErrAddrMode) Error() string {
	return f("addressing mode %v invalid for %v instructions", err.Mode, err.Type)
}

// ErrOperandRead is returned when reading a value from an operand that has none.
type ErrOperandRead struct {
	Operand Operand
}

func (err ErrOperandRead) Error() string {
	return f("operand %v (%v) is not readable", err.Operand, err.Operand.AddrMode())
}

// ErrOperandAddr is returned when resolving an address from an operand that has none.
type ErrOperandAddr struct {
	Operand Operand
}

func (err ErrOperandAddr) Error() string {
	return f("operand %v (%v) has no address", err.Operand, err.Operand.AddrMode())
}

// ErrLabelMissing is returned when a referenced label is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax locates an assembler error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber is returned for a malformed number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression is returned for a failed $(...) expression.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrMacro locates an error inside a macro expansion.
type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
