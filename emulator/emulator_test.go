package emulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/atats/cpu"
	"github.com/ezrec/atats/memory"
)

// countProgram counts RX up to COUNT, stores it, then stops.
var countProgram = []string{
	"        LDX #0      ; f000",
	"loop:   INX         ; f002",
	"        CPX #COUNT  ; f003",
	"        BNE loop    ; f005",
	"        STX $80     ; f007",
	"done:   JMP done    ; f009",
}

func newTestEmulator(t *testing.T, predefine map[string]string, program ...string) (emu *Emulator) {
	emu = NewEmulator()
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")), predefine)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.NotNil(emu.Program)

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("0xfffa", defines["NMI_VECTOR"])
	assert.Equal("0x1", defines["FLAG_CARRY"])
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, map[string]string{"COUNT": "3"}, countProgram...)

	want := cpu.Registers{
		SP: 0xfd,
		PC: 0xf000,
		SR: cpu.FLAG_INTERRUPT,
	}
	if diff := cmp.Diff(want, emu.Registers); diff != "" {
		t.Errorf("registers (-want +got):\n%s", diff)
	}
	assert.Equal(1, emu.LineNo())
	assert.Equal(0, emu.Ticks)
	assert.Nil(emu.Fault())
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, map[string]string{"COUNT": "5"}, countProgram...)

	err := emu.Run(context.Background(), 100)
	assert.NoError(err)

	want := cpu.Registers{
		RX: 5,
		SP: 0xfd,
		PC: 0xf009,
		SR: cpu.FLAG_INTERRUPT | cpu.FLAG_ZERO | cpu.FLAG_CARRY,
	}
	if diff := cmp.Diff(want, emu.Registers); diff != "" {
		t.Errorf("registers (-want +got):\n%s", diff)
	}
	assert.Equal(uint8(5), emu.Memory.Ram.Data[0])
	assert.Equal(18, emu.Ticks)
	assert.Equal(6, emu.LineNo())
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, map[string]string{"COUNT": "1"}, countProgram...)

	lines := []int{1, 2, 3, 4, 5, 6}
	for n, lineno := range lines {
		assert.Equal(lineno, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(lines)-1, done, "line %d", lineno)
	}
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, nil,
		"one: JMP two",
		"two: JMP one",
	)

	err := emu.Run(context.Background(), 10)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Ticks)
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, nil, "loop: BNE *+2", "JMP loop")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx, 0)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Ticks)
}

func TestEmulatorFault(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, nil,
		"        LDA $10     ; unmapped",
		"        JMP *",
		"nmi:    LDA #$ff",
		"        JMP *",
		"        .org NMI_VECTOR",
		"        .word nmi",
	)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(uint16(0xf005), emu.PC)
	assert.Equal(3, emu.LineNo())

	fault := emu.Fault()
	kind, ok := cpu.KindOf(fault)
	assert.True(ok)
	assert.Equal(cpu.ERR_READ, kind)
	var re memory.ErrRead
	if assert.True(errors.As(fault, &re)) {
		assert.Equal(uint16(0x0010), re.Address)
	}

	err = emu.Run(context.Background(), 10)
	assert.NoError(err)
	assert.Equal(uint8(0xff), emu.RA)
}

func TestEmulatorErrRuntime(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, nil,
		"        LDA $10",
		"        JMP *",
		"nmi:    STA $20",
		"        .org NMI_VECTOR",
		"        .word nmi",
	)

	err := emu.Run(context.Background(), 10)
	assert.ErrorIs(err, cpu.ErrAddrNotAvailable)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
		assert.Equal(uint16(0xf005), rt.Address)
	}

	var we memory.ErrWrite
	if assert.True(errors.As(err, &we)) {
		assert.Equal(uint16(0x0020), we.Address)
	}
}

func TestRunParallel(t *testing.T) {
	assert := assert.New(t)

	var emus []*Emulator
	for n := range 8 {
		count := fmt.Sprintf("%d", n+1)
		emu := newTestEmulator(t, map[string]string{"COUNT": count}, countProgram...)
		emu.MaxTicks = 1000
		emus = append(emus, emu)
	}

	err := RunParallel(context.Background(), emus...)
	assert.NoError(err)

	for n, emu := range emus {
		assert.Equal(uint8(n+1), emu.RX)
		assert.Equal(uint8(n+1), emu.Memory.Ram.Data[0])
		assert.Equal(uint16(0xf009), emu.PC)
	}

	emus = append(emus, newTestEmulator(t, nil, "one: JMP two", "two: JMP one"))
	for _, emu := range emus {
		emu.MaxTicks = 100
		err = emu.Reset()
		assert.NoError(err)
	}

	err = RunParallel(context.Background(), emus...)
	assert.ErrorIs(err, ErrTickLimit)
}

func TestRunParallelLimits(t *testing.T) {
	assert := assert.New(t)

	short := newTestEmulator(t, map[string]string{"COUNT": "1"}, countProgram...)
	short.MaxTicks = 6
	long := newTestEmulator(t, map[string]string{"COUNT": "8"}, countProgram...)
	long.MaxTicks = 0

	err := RunParallel(context.Background(), short, long)
	assert.NoError(err)
	assert.Equal(6, short.Ticks)
	assert.Equal(27, long.Ticks)
	assert.Equal(uint8(8), long.RX)

	assert.NoError(short.Reset())
	assert.NoError(long.Reset())
	short.MaxTicks = 5
	long.MaxTicks = 27

	err = RunParallel(context.Background(), long, short)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(5, short.Ticks)
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	asm.Predefine("COUNT", "2")
	prog, err := asm.Parse(strings.NewReader(strings.Join(countProgram, "\n")))
	assert.NoError(err)
	bin, err := prog.Binary()
	assert.NoError(err)

	image := append(make([]byte, memory.ROM_BANK_SIZE), bin...)
	rom, err := memory.LoadRom(bytes.NewReader(image))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Rom = rom
	emu.Bank = 1

	err = emu.Reset()
	assert.NoError(err)
	assert.Equal(uint16(0xf000), emu.PC)
	assert.Equal(0, emu.LineNo())

	err = emu.Run(context.Background(), 100)
	assert.NoError(err)
	assert.Equal(uint8(2), emu.RX)
	assert.Equal(uint8(0), rom.Selected())

	emu.Bank = 2
	err = emu.Reset()
	var be memory.ErrBank
	if assert.True(errors.As(err, &be)) {
		assert.Equal(uint8(2), be.Bank)
	}
}

func TestEmulatorDisassemble(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, map[string]string{"COUNT": "3"}, countProgram...)

	out := &bytes.Buffer{}
	err := emu.Disassemble(out)
	assert.NoError(err)

	lines := strings.Split(out.String(), "\n")
	assert.Equal("F000: LDX #$00        ; line 1", lines[0])
	assert.Equal("F002: INX             ; line 2", lines[1])
	assert.Equal("F005: BNE *-3         ; line 4", lines[3])
	assert.Equal("F009: JMP $F009       ; line 6", lines[5])
	assert.Equal("F00C: BRK", lines[6])
	assert.Contains(out.String(), "FFFC: BRK\nFFFD: BEQ *+2\nFFFF: BRK\n")

	emu = newTestEmulator(t, nil, "NOP", ".byte $02", "JMP *")

	out.Reset()
	err = emu.Disassemble(out)
	assert.NoError(err)

	lines = strings.Split(out.String(), "\n")
	assert.Equal("F000: NOP             ; line 1", lines[0])
	assert.Equal("F001: .byte $02       ; line 2", lines[1])
	assert.Equal("F002: JMP $F002       ; line 3", lines[2])
}

func TestEmulatorDisassembleBeforeReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Assemble(strings.NewReader(strings.Join(countProgram, "\n")), map[string]string{"COUNT": "3"})
	assert.NoError(err)
	assert.Nil(emu.Memory)

	before := &bytes.Buffer{}
	err = emu.Disassemble(before)
	assert.NoError(err)
	assert.True(strings.HasPrefix(before.String(), "F000: LDX #$00        ; line 1\n"))

	assert.NoError(emu.Reset())
	after := &bytes.Buffer{}
	err = emu.Disassemble(after)
	assert.NoError(err)
	assert.Equal(after.String(), before.String())

	emu = NewEmulator()
	emu.Program = &cpu.Program{
		Statements: []cpu.Statement{
			{LineNo: 1, Address: 0x0080, Words: []string{".byte", "1"}, Bytes: []byte{1}},
		},
	}
	err = emu.Disassemble(&bytes.Buffer{})
	assert.ErrorIs(err, cpu.ErrProgramOutside)
}
