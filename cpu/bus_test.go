package cpu

import (
	"github.com/ezrec/atats/memory"
)

// testBus is a flat 64KiB memory with addresses that can be set to fail.
type testBus struct {
	data  [0x10000]byte
	fail  map[uint16]bool
	banks uint8
	bank  uint8
}

var _ memory.Bus = (*testBus)(nil)

func (bus *testBus) Read(address uint16) (value uint8, err error) {
	if bus.fail[address] {
		err = memory.ErrRead{Address: address}
		return
	}
	value = bus.data[address]
	return
}

func (bus *testBus) Write(address uint16, value uint8) (err error) {
	if bus.fail[address] {
		err = memory.ErrWrite{Address: address}
		return
	}
	bus.data[address] = value
	return
}

func (bus *testBus) SelectBank(bank uint8) (err error) {
	if bank >= bus.banks {
		err = memory.ErrBank{Bank: bank}
		return
	}
	bus.bank = bank
	return
}

// poke16 stores a little-endian address.
func (bus *testBus) poke16(address uint16, value uint16) {
	bus.data[address] = uint8(value)
	bus.data[address+1] = uint8(value >> 8)
}

// failAt marks addresses as failing.
func (bus *testBus) failAt(addresses ...uint16) {
	if bus.fail == nil {
		bus.fail = make(map[uint16]bool)
	}
	for _, address := range addresses {
		bus.fail[address] = true
	}
}

// newTestMachine loads code at 0xf000 and points the program counter at it.
func newTestMachine(code ...byte) (m *Machine, bus *testBus) {
	bus = &testBus{banks: 1}
	copy(bus.data[0xf000:], code)

	m = NewMachine(bus)
	m.PC = 0xf000
	m.SP = 0xff

	return
}
