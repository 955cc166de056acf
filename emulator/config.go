package emulator

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/atats/memory"
)

const (
	DEFAULT_MAX_TICKS = 1_000_000 // Tick limit when none is configured.
)

// Config describes an emulator run.
type Config struct {
	Verbose   bool              `toml:"verbose"`   // Verbose logging.
	MaxTicks  int               `toml:"max_ticks"` // Tick limit, or 0 for none.
	Source    string            `toml:"source"`    // Assembler source file.
	Rom       []string          `toml:"rom"`       // ROM image files, concatenated into banks.
	Bank      uint8             `toml:"bank"`      // ROM bank selected at reset.
	Predefine map[string]string `toml:"predefine"` // Equates for the assembler.
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		MaxTicks: DEFAULT_MAX_TICKS,
	}
}

// LoadConfig decodes a TOML configuration over the defaults.
func LoadConfig(input io.Reader) (conf *Config, err error) {
	conf = NewConfig()

	md, err := toml.NewDecoder(input).Decode(conf)
	if err != nil {
		conf = nil
		return
	}

	if keys := md.Undecoded(); len(keys) != 0 {
		conf = nil
		err = ErrConfigKey(keys[0].String())
		return
	}

	return
}

// LoadConfigFile decodes a TOML configuration file.
func LoadConfigFile(path string) (conf *Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	conf, err = LoadConfig(inf)
	return
}

// Emulator builds and resets an emulator for the configuration, assembling
// the source if there is one, otherwise loading the ROM images.
func (conf *Config) Emulator() (emu *Emulator, err error) {
	emu = NewEmulator()
	emu.Verbose = conf.Verbose
	emu.Bank = conf.Bank
	emu.MaxTicks = conf.MaxTicks

	defer func() {
		if err != nil {
			emu = nil
		}
	}()

	switch {
	case len(conf.Source) != 0:
		var inf *os.File
		inf, err = os.Open(conf.Source)
		if err != nil {
			return
		}
		defer inf.Close()

		err = emu.Assemble(inf, conf.Predefine)
	case len(conf.Rom) != 0:
		var images []io.Reader
		for _, path := range conf.Rom {
			var inf *os.File
			inf, err = os.Open(path)
			if err != nil {
				return
			}
			defer inf.Close()
			images = append(images, inf)
		}

		emu.Rom, err = memory.LoadRom(io.MultiReader(images...))
	default:
		err = ErrConfigEmpty
	}
	if err != nil {
		return
	}

	err = emu.Reset()
	return
}
