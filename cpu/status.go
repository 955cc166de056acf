package cpu

import (
	"strings"
)

// Status is the processor status register.
type Status uint8

// Status flag bits.
const (
	FLAG_CARRY     = Status(1 << 0) // Carry
	FLAG_ZERO      = Status(1 << 1) // Zero
	FLAG_INTERRUPT = Status(1 << 2) // Interrupt disable
	FLAG_DECIMAL   = Status(1 << 3) // Decimal mode
	FLAG_BREAK     = Status(1 << 4) // Break
	FLAG_UNUSED    = Status(1 << 5) // Unused, reads as set when pushed
	FLAG_OVERFLOW  = Status(1 << 6) // Overflow
	FLAG_NEGATIVE  = Status(1 << 7) // Negative
)

// Get returns true if every bit of flag is set.
func (sr Status) Get(flag Status) bool {
	return sr&flag == flag
}

// Set sets or clears the flag bits.
func (sr *Status) Set(flag Status, value bool) {
	if value {
		*sr |= flag
	} else {
		*sr &^= flag
	}
}

// UpdateFromByte sets Zero and Negative from a result byte.
func (sr *Status) UpdateFromByte(value uint8) {
	sr.Set(FLAG_ZERO, value == 0)
	sr.Set(FLAG_NEGATIVE, value&0x80 != 0)
}

// String returns the flags as NV-BDIZC, with '.' for clear bits.
func (sr Status) String() string {
	var sb strings.Builder
	for n, name := range "NV-BDIZC" {
		if sr&(1<<(7-n)) != 0 {
			sb.WriteRune(name)
		} else {
			sb.WriteRune('.')
		}
	}
	return sb.String()
}
