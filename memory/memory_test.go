package memory

import (
	"bytes"
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeBank(fill byte) *RomBank {
	bank, err := NewRomBank(bytes.Repeat([]byte{fill}, ROM_BANK_SIZE))
	if err != nil {
		panic(err)
	}
	return bank
}

func TestRam(t *testing.T) {
	assert := assert.New(t)

	ram := &Ram{}

	assert.NoError(ram.Write(0x80, 0x12))
	assert.NoError(ram.Write(0xff, 0x34))

	value, err := ram.Read(0x80)
	assert.NoError(err)
	assert.Equal(uint8(0x12), value)

	value, err = ram.Read(0xff)
	assert.NoError(err)
	assert.Equal(uint8(0x34), value)

	_, err = ram.Read(0x7f)
	assert.Equal(ErrRead{Address: 0x7f}, err)

	err = ram.Write(0x100, 0)
	assert.Equal(ErrWrite{Address: 0x100}, err)
}

func TestStack(t *testing.T) {
	assert := assert.New(t)

	st := &Stack{}

	assert.NoError(st.Write(0x100, 0xaa))
	assert.NoError(st.Write(0x1ff, 0xbb))

	value, err := st.Read(0x1ff)
	assert.NoError(err)
	assert.Equal(uint8(0xbb), value)
	assert.Equal(uint8(0xaa), st.Data[0])

	_, err = st.Read(0x200)
	assert.Equal(ErrRead{Address: 0x200}, err)
	assert.Equal(ErrWrite{Address: 0xff}, st.Write(0xff, 0))
}

func TestRomBank(t *testing.T) {
	assert := assert.New(t)

	_, err := NewRomBank(make([]byte, 10))
	assert.ErrorIs(err, ErrRomSize)

	content := make([]byte, ROM_BANK_SIZE)
	content[0] = 0x11
	content[ROM_BANK_SIZE-1] = 0x22
	bank, err := NewRomBank(content)
	assert.NoError(err)

	value, err := bank.Read(0xf000)
	assert.NoError(err)
	assert.Equal(uint8(0x11), value)

	value, err = bank.Read(0xffff)
	assert.NoError(err)
	assert.Equal(uint8(0x22), value)

	_, err = bank.Read(0xefff)
	assert.Equal(ErrRead{Address: 0xefff}, err)

	// Bytes is a copy.
	data := bank.Bytes()
	data[0] = 0
	value, _ = bank.Read(0xf000)
	assert.Equal(uint8(0x11), value)
}

func TestRomSelectBank(t *testing.T) {
	assert := assert.New(t)

	rom := NewRom(makeBank(0x10), makeBank(0x20))
	assert.Equal(2, rom.Banks())
	assert.Equal(uint8(0), rom.Selected())

	value, err := rom.Read(0xf123)
	assert.NoError(err)
	assert.Equal(uint8(0x10), value)

	assert.NoError(rom.SelectBank(1))
	value, err = rom.Read(0xf123)
	assert.NoError(err)
	assert.Equal(uint8(0x20), value)

	err = rom.SelectBank(2)
	assert.Equal(ErrBank{Bank: 2}, err)
	assert.Equal(uint8(1), rom.Selected())
}

func TestLoadRom(t *testing.T) {
	assert := assert.New(t)

	image := append(bytes.Repeat([]byte{1}, ROM_BANK_SIZE), bytes.Repeat([]byte{2}, ROM_BANK_SIZE)...)
	rom, err := LoadRom(bytes.NewReader(image))
	assert.NoError(err)
	assert.Equal(2, rom.Banks())
	assert.Equal(byte(2), rom.Bank(1).Bytes()[0])

	_, err = LoadRom(bytes.NewReader(image[:ROM_BANK_SIZE+1]))
	assert.ErrorIs(err, ErrRomSize)

	_, err = LoadRom(bytes.NewReader(nil))
	assert.ErrorIs(err, ErrRomEmpty)
}

func TestMemoryDispatch(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(NewRom(makeBank(0xea)))

	assert.NoError(mem.Write(0x80, 1))
	assert.NoError(mem.Write(0x1fd, 2))

	value, err := mem.Read(0x80)
	assert.NoError(err)
	assert.Equal(uint8(1), value)

	value, err = mem.Read(0x1fd)
	assert.NoError(err)
	assert.Equal(uint8(2), value)

	value, err = mem.Read(0xfffc)
	assert.NoError(err)
	assert.Equal(uint8(0xea), value)

	// Unmapped
	_, err = mem.Read(0x0200)
	assert.Equal(ErrRead{Address: 0x200}, err)
	_, err = mem.Read(0x0000)
	assert.Equal(ErrRead{Address: 0}, err)

	// ROM is read-only.
	err = mem.Write(0xf000, 0)
	assert.Equal(ErrWrite{Address: 0xf000}, err)

	var werr ErrWrite
	assert.True(errors.As(err, &werr))
	assert.Equal(uint16(0xf000), werr.Address)
}

func TestMemoryClone(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(NewRom(makeBank(0x10), makeBank(0x20)))
	assert.NoError(mem.Write(0x90, 0x55))

	clone := mem.Clone()
	assert.NoError(clone.Write(0x90, 0x66))
	assert.NoError(clone.SelectBank(1))

	value, _ := mem.Read(0x90)
	assert.Equal(uint8(0x55), value)
	assert.Equal(uint8(0), mem.SelectedBank())
	assert.Equal(uint8(1), clone.SelectedBank())

	// Banks are shared, not copied.
	assert.Same(mem.Rom.Bank(1), clone.Rom.Bank(1))
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("0xfffc", defines["RES_VECTOR"])
	assert.Equal("0x80", defines["RAM_OFFSET"])
	assert.Equal("0xf000", defines["ROM_OFFSET"])
}
