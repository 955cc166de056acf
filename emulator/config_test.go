package emulator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/atats/cpu"
	"github.com/ezrec/atats/memory"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	text := strings.Join([]string{
		`verbose = true`,
		`max_ticks = 500`,
		`source = "count.s"`,
		`rom = ["a.bin", "b.bin"]`,
		`bank = 1`,
		`[predefine]`,
		`COUNT = "3"`,
	}, "\n")

	conf, err := LoadConfig(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal(&Config{
		Verbose:   true,
		MaxTicks:  500,
		Source:    "count.s",
		Rom:       []string{"a.bin", "b.bin"},
		Bank:      1,
		Predefine: map[string]string{"COUNT": "3"},
	}, conf)

	conf, err = LoadConfig(strings.NewReader(`source = "count.s"`))
	assert.NoError(err)
	assert.Equal(DEFAULT_MAX_TICKS, conf.MaxTicks)

	conf, err = LoadConfig(strings.NewReader("source = \"count.s\"\nspeed = 3"))
	assert.ErrorIs(err, ErrConfigKey("speed"))
	assert.Nil(conf)

	conf, err = LoadConfig(strings.NewReader(`bank = "one"`))
	assert.Error(err)
	assert.Nil(conf)
}

func TestConfigEmulator(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "count.s")
	err := os.WriteFile(source, []byte(strings.Join(countProgram, "\n")), 0o644)
	assert.NoError(err)

	config := filepath.Join(dir, "count.toml")
	err = os.WriteFile(config, []byte(strings.Join([]string{
		`max_ticks = 200`,
		`source = "` + filepath.ToSlash(source) + `"`,
		`[predefine]`,
		`COUNT = "4"`,
	}, "\n")), 0o644)
	assert.NoError(err)

	conf, err := LoadConfigFile(config)
	if !assert.NoError(err) {
		return
	}

	emu, err := conf.Emulator()
	if !assert.NoError(err) {
		return
	}
	assert.Equal(uint16(0xf000), emu.PC)
	assert.Equal(200, emu.MaxTicks)

	err = RunParallel(context.Background(), emu)
	assert.NoError(err)
	assert.Equal(uint8(4), emu.RX)

	_, err = (&Config{}).Emulator()
	assert.ErrorIs(err, ErrConfigEmpty)

	_, err = (&Config{Source: filepath.Join(dir, "missing.s")}).Emulator()
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestConfigEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	asm.Predefine("COUNT", "6")
	prog, err := asm.Parse(strings.NewReader(strings.Join(countProgram, "\n")))
	assert.NoError(err)
	bin, err := prog.Binary()
	assert.NoError(err)

	dir := t.TempDir()
	first := filepath.Join(dir, "a.bin")
	second := filepath.Join(dir, "b.bin")
	assert.NoError(os.WriteFile(first, make([]byte, memory.ROM_BANK_SIZE), 0o644))
	assert.NoError(os.WriteFile(second, bin, 0o644))

	conf := NewConfig()
	conf.Rom = []string{first, second}
	conf.Bank = 1

	emu, err := conf.Emulator()
	if !assert.NoError(err) {
		return
	}
	assert.Equal(2, emu.Memory.Banks())
	assert.Equal(uint8(1), emu.Memory.SelectedBank())

	err = emu.Run(context.Background(), conf.MaxTicks)
	assert.NoError(err)
	assert.Equal(uint8(6), emu.RX)

	assert.NoError(os.WriteFile(second, bin[:100], 0o644))
	_, err = conf.Emulator()
	assert.ErrorIs(err, memory.ErrRomSize)
}
