package memory

import (
	"errors"
	"io"
)

const (
	ROM_OFFSET    = uint16(0xf000) // First address of the ROM window.
	ROM_BANK_SIZE = 0x1000         // Bytes per ROM bank.
)

// RomBank is one immutable block of ROM.
type RomBank struct {
	data [ROM_BANK_SIZE]byte
}

// NewRomBank creates a bank from exactly ROM_BANK_SIZE bytes.
func NewRomBank(content []byte) (bank *RomBank, err error) {
	if len(content) != ROM_BANK_SIZE {
		err = ErrRomSize
		return
	}

	bank = &RomBank{}
	copy(bank.data[:], content)

	return
}

// Read a byte from the ROM window of this bank.
func (bank *RomBank) Read(address uint16) (value uint8, err error) {
	index, ok := window(address, ROM_OFFSET, ROM_BANK_SIZE)
	if !ok {
		err = ErrRead{Address: address}
		return
	}

	value = bank.data[index]
	return
}

// Bytes returns a copy of the bank contents.
func (bank *RomBank) Bytes() []byte {
	return append([]byte(nil), bank.data[:]...)
}

// Rom is the bank switched ROM window.
// Banks are never modified after creation, so a bank list may be shared
// between any number of Rom values.
type Rom struct {
	banks    []*RomBank
	selected uint8
}

// NewRom creates a ROM from a default bank and any additional banks.
func NewRom(bank *RomBank, additional ...*RomBank) (rom *Rom) {
	rom = &Rom{
		banks: append([]*RomBank{bank}, additional...),
	}

	return
}

// LoadRom reads whole banks from an image until end of input.
func LoadRom(input io.Reader) (rom *Rom, err error) {
	var banks []*RomBank

	for {
		var content [ROM_BANK_SIZE]byte
		_, err = io.ReadFull(input, content[:])
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrRomSize
			return
		}
		if err != nil {
			return
		}

		bank := &RomBank{data: content}
		banks = append(banks, bank)
	}

	if len(banks) == 0 {
		err = ErrRomEmpty
		return
	}

	rom = NewRom(banks[0], banks[1:]...)

	return
}

// Clone returns a ROM sharing the same banks with its own bank selection.
func (rom *Rom) Clone() *Rom {
	return &Rom{banks: rom.banks, selected: rom.selected}
}

// Banks returns the number of banks.
func (rom *Rom) Banks() int {
	return len(rom.banks)
}

// Bank returns a bank by index.
func (rom *Rom) Bank(index int) *RomBank {
	return rom.banks[index]
}

// Selected returns the index of the active bank.
func (rom *Rom) Selected() uint8 {
	return rom.selected
}

// SelectBank switches the active bank.
func (rom *Rom) SelectBank(bank uint8) (err error) {
	if int(bank) >= len(rom.banks) {
		err = ErrBank{Bank: bank}
		return
	}

	rom.selected = bank
	return
}

// Read a byte from the active bank.
func (rom *Rom) Read(address uint16) (value uint8, err error) {
	return rom.banks[rom.selected].Read(address)
}
