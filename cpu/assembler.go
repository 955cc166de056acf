// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/atats/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler, with a final link pass for
// forward label references.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc         uint16 // Address of the next statement.
	expansions int    // Count of macro expansions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var reSymbol = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// parseNumber parses $hex, %binary, 0x hex, 0b binary, 0o octal and
// decimal numbers, with an optional sign.
func parseNumber(word string) (value int64, err error) {
	text := word
	negative := false
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	base := 0
	switch {
	case strings.HasPrefix(text, "$"):
		base = 16
		text = text[1:]
	case strings.HasPrefix(text, "%"):
		base = 2
		text = text[1:]
	}

	value, err = strconv.ParseInt(text, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if negative {
		value = -value
	}

	return
}

// valueOf returns the value of a simple word. A symbol that is not yet
// defined is returned as label, for linking.
func (asm *Assembler) valueOf(word string) (value int, label string, err error) {
	for range 16 {
		equate, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = equate
	}

	if len(word) == 0 {
		err = ErrOperandSyntax
		return
	}

	if address, ok := asm.Label[word]; ok {
		value = int(address)
		return
	}

	if word[0] == '*' {
		value = int(asm.pc)
		if len(word) > 1 {
			var delta int64
			delta, err = parseNumber(word[1:])
			if err != nil || (word[1] != '+' && word[1] != '-') {
				err = ErrParseNumber(word)
				return
			}
			value += int(delta)
		}
		return
	}

	if reSymbol.MatchString(word) {
		label = word
		return
	}

	v64, err := parseNumber(word)
	value = int(v64)
	return
}

// knownValueOf returns the value of a word that must already be defined.
func (asm *Assembler) knownValueOf(word string) (value int, err error) {
	value, label, err := asm.valueOf(word)
	if err == nil && len(label) != 0 {
		err = ErrLabelMissing(label)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var known int
		known, err = asm.knownValueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(known)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(int(address))
	}
	pred["PC"] = starlark.MakeInt(int(asm.pc))
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line into words, defining equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = ErrParseExpression(str[2 : len(str)-1])
		}
		if value < 0 {
			return fmt.Sprintf("%d", value)
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok && n > 0 {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reSymbol.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroArguments
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		expansion := asm.expansions

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, expansion))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.pc = memory.ROM_OFFSET
	asm.expansions = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Statement {
		st := &asm.Statement[n]
		lineno = st.LineNo
		line = strings.Join(st.Words, " ")

		if len(st.LinkLabel) != 0 {
			address, ok := asm.Label[st.LinkLabel]
			if !ok {
				err = ErrLabelMissing(st.LinkLabel)
				return
			}
			mode := st.Instruction.Operand.AddrMode()
			st.Instruction.Operand, err = encodeOperand(mode, selectPart(int(address), st.linkPart), st.Address)
			if err != nil {
				return
			}
		}

		if st.Instruction != nil {
			st.Bytes, err = st.Instruction.MarshalBinary()
			if err != nil {
				return
			}
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// selectPart selects the low ('<') or high ('>') byte of a value.
func selectPart(value int, part byte) int {
	switch part {
	case '<':
		return value & 0xff
	case '>':
		return (value >> 8) & 0xff
	}
	return value
}

// _zeropage maps absolute addressing modes to their zero page forms.
var _zeropage = map[AddrMode]AddrMode{
	MODE_ABS:   MODE_ZPG,
	MODE_ABS_X: MODE_ZPG_X,
	MODE_ABS_Y: MODE_ZPG_Y,
}

// encodeOperand builds an operand of a mode for a value, checking its range.
// A relative operand is computed from the address of its instruction.
func encodeOperand(mode AddrMode, value int, pc uint16) (op Operand, err error) {
	switch mode.Size() {
	case 0:
	case 1:
		if mode == MODE_REL {
			value -= int(pc) + 2
			if value < -128 || value > 127 {
				err = ErrBranchRange
				return
			}
		} else if value < -128 || value > 0xff {
			err = ErrOperandRange
			return
		}
	case 2:
		if value < -0x8000 || value > 0xffff {
			err = ErrOperandRange
			return
		}
	}

	op = MakeOperand(mode, uint16(value))
	return
}

// parseOperand parses the operand text of an instruction.
func (asm *Assembler) parseOperand(mn Mnemonic, text string) (op Operand, label string, part byte, err error) {
	it := mn.Type()
	upper := strings.ToUpper(text)

	var mode AddrMode
	var expr string

	switch {
	case len(text) == 0:
		mode = MODE_IMPL
		if it == TYPE_RSH {
			mode = MODE_ACC
		}
	case upper == "A":
		mode = MODE_ACC
	case strings.HasPrefix(text, "#"):
		mode, expr = MODE_IMM, text[1:]
	case strings.HasPrefix(text, "(") && strings.HasSuffix(upper, ",X)"):
		mode, expr = MODE_X_IND, text[1:len(text)-3]
	case strings.HasPrefix(text, "(") && strings.HasSuffix(upper, "),Y"):
		mode, expr = MODE_IND_Y, text[1:len(text)-3]
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")"):
		mode, expr = MODE_IND, text[1:len(text)-1]
	case strings.HasSuffix(upper, ",X"):
		mode, expr = MODE_ABS_X, text[:len(text)-2]
	case strings.HasSuffix(upper, ",Y"):
		mode, expr = MODE_ABS_Y, text[:len(text)-2]
	default:
		mode, expr = MODE_ABS, text
	}

	if it == TYPE_BCH && mode == MODE_ABS {
		mode = MODE_REL
	}

	var value int
	if len(expr) != 0 {
		if expr[0] == '<' || expr[0] == '>' {
			part = expr[0]
			expr = expr[1:]
		}
		value, label, err = asm.valueOf(expr)
		if err != nil {
			return
		}
		value = selectPart(value, part)
	}

	zp, has_zp := _zeropage[mode]
	switch {
	case !has_zp:
	case len(label) == 0 && value >= 0 && value <= 0xff && it.Allows(zp):
		mode = zp
	case !it.Allows(mode) && it.Allows(zp):
		mode = zp
	}

	if !it.Allows(mode) {
		err = ErrAddrMode{Mode: mode, Type: it}
		return
	}

	if len(label) != 0 {
		// Placeholder until linked.
		op = MakeOperand(mode, 0)
		return
	}

	op, err = encodeOperand(mode, value, asm.pc)
	return
}

// parseData parses the comma separated values of .byte and .word
func (asm *Assembler) parseData(words []string, width int) (data []byte, err error) {
	text := strings.Join(words, "")
	if len(text) == 0 {
		err = ErrDataSyntax
		return
	}

	for _, word := range strings.Split(text, ",") {
		var value int
		if len(word) != 0 && (word[0] == '<' || word[0] == '>') {
			value, err = asm.knownValueOf(word[1:])
			value = selectPart(value, word[0])
		} else {
			value, err = asm.knownValueOf(word)
		}
		if err != nil {
			return
		}

		switch width {
		case 1:
			if value < -0x80 || value > 0xff {
				err = ErrDataRange
				return
			}
			data = append(data, byte(value))
		case 2:
			if value < -0x8000 || value > 0xffff {
				err = ErrDataRange
				return
			}
			data = append(data, byte(value), byte(value>>8))
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	st := Statement{
		LineNo:  lineno,
		Address: asm.pc,
		Words:   words,
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value int
		value, err = asm.knownValueOf(words[1])
		if err != nil {
			return
		}
		if value < 0 || value > 0xffff {
			err = ErrOperandRange
			return
		}
		asm.pc = uint16(value)
		return
	case ".byte":
		st.Bytes, err = asm.parseData(words[1:], 1)
	case ".word":
		st.Bytes, err = asm.parseData(words[1:], 2)
	default:
		mn, ok := ParseMnemonic(words[0])
		if !ok {
			if strings.HasPrefix(words[0], ".") {
				err = ErrInstructionInvalid
			} else {
				err = ErrOpcodeInvalid
			}
			return
		}
		var op Operand
		op, st.LinkLabel, st.linkPart, err = asm.parseOperand(mn, strings.Join(words[1:], ""))
		if err != nil {
			return
		}
		st.Instruction = &Instruction{Mnemonic: mn, Operand: op}
		st.size = st.Instruction.Size()
	}
	if err != nil {
		return
	}

	if st.Instruction == nil {
		st.size = len(st.Bytes)
	}

	if asm.Verbose {
		log.Printf("asm: %04x: %v", st.Address, strings.Join(words, " "))
	}

	asm.Statement = append(asm.Statement, st)
	asm.pc += uint16(st.size)

	return
}
