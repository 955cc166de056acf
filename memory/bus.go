package memory

// Bus is the interface the processor uses to reach memory.
type Bus interface {
	// Read a byte from an address.
	Read(address uint16) (value uint8, err error)
	// Write a byte to an address.
	Write(address uint16, value uint8) error
	// SelectBank switches the active ROM bank.
	SelectBank(bank uint8) error
}

var _ Bus = (*Memory)(nil)
