// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package mips

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
)

// Conventional segment origins, as used by the common MIPS simulators.
const (
	TEXT_BASE = uint32(0x00400000)
	DATA_BASE = uint32(0x10000000)
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"TEXT_BASE": fmt.Sprintf("%#v", TEXT_BASE),
	"DATA_BASE": fmt.Sprintf("%#v", DATA_BASE),
}

// Assembler is a single pass macro assembler for the MIPS-1 integer
// instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Origin  uint32   // Address of the first assembled word.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr uint32 // Address of the next assembled word.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap maps register names ($zero..$ra and $0..$31) to indexes.
var regMap = func() map[string]Reg {
	m := make(map[string]Reg, 64)
	for reg := REG_ZERO; reg <= REG_RA; reg++ {
		m[reg.String()] = reg
		m[fmt.Sprintf("$%d", int(reg))] = reg
	}
	return m
}()

// functMap maps three-register mnemonics to funct values.
var functMap = map[string]uint32{
	"add":  FN_ADD,
	"addu": FN_ADDU,
	"sub":  FN_SUB,
	"subu": FN_SUBU,
	"and":  FN_AND,
	"or":   FN_OR,
	"xor":  FN_XOR,
	"nor":  FN_NOR,
	"slt":  FN_SLT,
	"sltu": FN_SLTU,
}

// shiftMap maps shift mnemonics to funct values.
var shiftMap = map[string]uint32{
	"sll": FN_SLL,
	"srl": FN_SRL,
	"sra": FN_SRA,
}

// immMap maps register-immediate mnemonics to primary opcodes.
var immMap = map[string]uint32{
	"addi":  OP_ADDI,
	"addiu": OP_ADDIU,
	"slti":  OP_SLTI,
	"sltiu": OP_SLTIU,
	"andi":  OP_ANDI,
	"ori":   OP_ORI,
	"xori":  OP_XORI,
}

// memMap maps load/store mnemonics to primary opcodes.
var memMap = map[string]uint32{
	"lb":  OP_LB,
	"lh":  OP_LH,
	"lw":  OP_LW,
	"lbu": OP_LBU,
	"lhu": OP_LHU,
	"sb":  OP_SB,
	"sh":  OP_SH,
	"sw":  OP_SW,
}

// branchMap maps branch mnemonics to primary opcodes.
var branchMap = map[string]uint32{
	"beq":  OP_BEQ,
	"bne":  OP_BNE,
	"blez": OP_BLEZ,
	"bgtz": OP_BGTZ,
}

// multDivMap maps multiply/divide mnemonics to funct values.
var multDivMap = map[string]uint32{
	"mult":  FN_MULT,
	"multu": FN_MULTU,
	"div":   FN_DIV,
	"divu":  FN_DIVU,
}

// moveMap maps HI/LO move mnemonics to funct values.
var moveMap = map[string]uint32{
	"mfhi": FN_MFHI,
	"mthi": FN_MTHI,
	"mflo": FN_MFLO,
	"mtlo": FN_MTLO,
}

// valueOf returns the value of a simple word. Equates resolve here as
// well, so they work inside compound operands like "BUFFER($gp)".
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if equate, ok := asm.Equate[word]; ok {
		word = equate
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 <= 0xffffffff && v64 >= -int64(0x80000000) {
		if v64 < 0 {
			value = uint32(0xffffffff + (v64 + 1))
		} else {
			value = uint32(v64)
		}
	}

	if invert {
		value = ^value
	}

	return
}

// getReg returns the register named by a word.
func (asm *Assembler) getReg(word string) (reg Reg, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// getImm16 validates a value as a 16-bit immediate field. Signed forms
// accept -0x8000..0xffff; unsigned forms accept 0..0xffff.
func (asm *Assembler) getImm16(word string, signed bool) (imm uint16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	ok := value <= 0xffff
	if signed {
		ok = ok || value >= 0xffff8000
	}
	if !ok {
		err = ErrImmediateRange
		return
	}

	imm = uint16(value & 0xffff)
	return
}

var memOperand = regexp.MustCompile(`^([^()]*)\((\$[a-z0-9]+)\)$`)

// getMem parses a load/store "offset($base)" operand.
func (asm *Assembler) getMem(word string) (base Reg, offset uint16, err error) {
	match := memOperand.FindStringSubmatch(word)
	if match == nil {
		err = ErrOpcodeInvalid
		return
	}

	base, err = asm.getReg(match[2])
	if err != nil {
		return
	}

	if len(match[1]) != 0 {
		offset, err = asm.getImm16(match[1], true)
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
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
	value = uint32(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// Operand commas are decorative.
	line = strings.ReplaceAll(line, ",", " ")

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
		if len(word) == 0 {
			continue
		}

		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.addr
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
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.addr = asm.Origin

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		// Both '#' and ';' start a comment.
		line = text
		if n := strings.IndexAny(line, "#;"); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimSpace(line)

		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
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

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of branch and jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		err = asm.patchTarget(op, target)
		if err != nil {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// patchTarget back-patches a linked label address into an opcode's
// final instruction word(s).
func (asm *Assembler) patchTarget(op *Opcode, target uint32) (err error) {
	if (target & 3) != 0 {
		return ErrTargetUnaligned
	}

	last := &op.Codes[len(op.Codes)-1]
	pc := op.Addr + 4*uint32(len(op.Codes)-1)
	primary := *last >> 26

	switch {
	case primary == OP_J || primary == OP_JAL:
		// The segment nibble comes from the next instruction's address.
		if (target & 0xf0000000) != ((pc + 4) & 0xf0000000) {
			return ErrTargetSegment
		}
		*last |= (target >> 2) & 0x03ffffff
	case primary >= OP_BEQ && primary <= OP_BGTZ:
		off := int32(target-(pc+4)) >> 2
		if off < -0x8000 || off > 0x7fff {
			return ErrBranchRange
		}
		*last |= uint32(off) & 0xffff
	case primary == OP_ORI && len(op.Codes) == 2:
		// la expansion: lui gets the upper half, ori the lower.
		op.Codes[0] |= (target >> 16) & 0xffff
		op.Codes[1] |= target & 0xffff
	default:
		return ErrOpcodeInvalid
	}

	return
}

// branchCode encodes a branch whose operand is either an absolute
// address or a label to be linked later.
func (asm *Assembler) branchCode(primary uint32, rs, rt Reg, word string) (code uint32, label string, err error) {
	target, verr := asm.valueOf(word)
	if verr != nil {
		// Not a number; link as a label.
		code = MakeI(primary, rs, rt, 0)
		label = word
		return
	}

	if (target & 3) != 0 {
		err = ErrTargetUnaligned
		return
	}
	off := int32(target-(asm.addr+4)) >> 2
	if off < -0x8000 || off > 0x7fff {
		err = ErrBranchRange
		return
	}
	code = MakeI(primary, rs, rt, uint16(off))
	return
}

// jumpCode encodes a jump whose operand is either an absolute address
// or a label to be linked later.
func (asm *Assembler) jumpCode(primary uint32, word string) (code uint32, label string, err error) {
	target, verr := asm.valueOf(word)
	if verr != nil {
		code = MakeJ(primary, 0)
		label = word
		return
	}

	if (target & 3) != 0 {
		err = ErrTargetUnaligned
		return
	}
	if (target & 0xf0000000) != ((asm.addr + 4) & 0xf0000000) {
		err = ErrTargetSegment
		return
	}
	code = MakeJ(primary, target>>2)
	return
}

// needWords validates the operand count for a mnemonic.
func needWords(words []string, count int) (err error) {
	if len(words) < count {
		return ErrOpcodeMissing
	}
	if len(words) > count {
		return ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint32
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.addr, Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.addr += 4 * uint32(len(codes))
	}()

	// Pseudo-instruction substitutions
	switch {
	case words[0] == "b" && len(words) == 2:
		// b TARGET => beq $zero $zero TARGET
		words = []string{"beq", "$zero", "$zero", words[1]}
	case words[0] == "move" && len(words) == 3:
		// move DST SRC => addu DST SRC $zero
		words = []string{"addu", words[1], words[2], "$zero"}
	case words[0] == "not" && len(words) == 3:
		// not DST SRC => nor DST SRC $zero
		words = []string{"nor", words[1], words[2], "$zero"}
	case words[0] == "neg" && len(words) == 3:
		// neg DST SRC => sub DST $zero SRC
		words = []string{"sub", words[1], "$zero", words[2]}
	default:
		// unchanged
	}

	mnemonic := words[0]

	switch {
	case mnemonic == "nop":
		if err = needWords(words, 1); err != nil {
			return
		}
		codes = append(codes, MakeR(FN_SLL, 0, 0, 0, 0))
	case functMap[mnemonic] != 0:
		// add DST SRCA SRCB
		if err = needWords(words, 4); err != nil {
			return
		}
		var rd, rs, rt Reg
		if rd, err = asm.getReg(words[1]); err != nil {
			return
		}
		if rs, err = asm.getReg(words[2]); err != nil {
			return
		}
		if rt, err = asm.getReg(words[3]); err != nil {
			return
		}
		codes = append(codes, MakeR(functMap[mnemonic], rs, rt, rd, 0))
	case mnemonic == "sll" || mnemonic == "srl" || mnemonic == "sra":
		// sll DST SRC AMOUNT
		if err = needWords(words, 4); err != nil {
			return
		}
		var rd, rt Reg
		if rd, err = asm.getReg(words[1]); err != nil {
			return
		}
		if rt, err = asm.getReg(words[2]); err != nil {
			return
		}
		var amount uint32
		if amount, err = asm.valueOf(words[3]); err != nil {
			return
		}
		if amount > 31 {
			err = ErrShiftRange
			return
		}
		codes = append(codes, MakeR(shiftMap[mnemonic], 0, rt, rd, amount))
	case mnemonic == "jr":
		if err = needWords(words, 2); err != nil {
			return
		}
		var rs Reg
		if rs, err = asm.getReg(words[1]); err != nil {
			return
		}
		codes = append(codes, MakeR(FN_JR, rs, 0, 0, 0))
	case mnemonic == "jalr":
		// jalr [DST] SRC; DST defaults to $ra
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		rd := REG_RA
		src := words[1]
		if len(words) == 3 {
			if rd, err = asm.getReg(words[1]); err != nil {
				return
			}
			src = words[2]
		}
		var rs Reg
		if rs, err = asm.getReg(src); err != nil {
			return
		}
		codes = append(codes, MakeR(FN_JALR, rs, 0, rd, 0))
	case moveMap[mnemonic] != 0:
		// mfhi DST / mthi SRC
		if err = needWords(words, 2); err != nil {
			return
		}
		var reg Reg
		if reg, err = asm.getReg(words[1]); err != nil {
			return
		}
		funct := moveMap[mnemonic]
		if funct == FN_MFHI || funct == FN_MFLO {
			codes = append(codes, MakeR(funct, 0, 0, reg, 0))
		} else {
			codes = append(codes, MakeR(funct, reg, 0, 0, 0))
		}
	case multDivMap[mnemonic] != 0:
		// mult SRCA SRCB
		if err = needWords(words, 3); err != nil {
			return
		}
		var rs, rt Reg
		if rs, err = asm.getReg(words[1]); err != nil {
			return
		}
		if rt, err = asm.getReg(words[2]); err != nil {
			return
		}
		codes = append(codes, MakeR(multDivMap[mnemonic], rs, rt, 0, 0))
	case immMap[mnemonic] != 0:
		// addi DST SRC IMM
		if err = needWords(words, 4); err != nil {
			return
		}
		var rt, rs Reg
		if rt, err = asm.getReg(words[1]); err != nil {
			return
		}
		if rs, err = asm.getReg(words[2]); err != nil {
			return
		}
		// sltiu still takes a sign-extended immediate; only the
		// bitwise forms are zero-extended.
		signed := strings.HasPrefix(mnemonic, "addi") || strings.HasPrefix(mnemonic, "slti")
		var imm uint16
		if imm, err = asm.getImm16(words[3], signed); err != nil {
			return
		}
		codes = append(codes, MakeI(immMap[mnemonic], rs, rt, imm))
	case mnemonic == "lui":
		if err = needWords(words, 3); err != nil {
			return
		}
		var rt Reg
		if rt, err = asm.getReg(words[1]); err != nil {
			return
		}
		var imm uint16
		if imm, err = asm.getImm16(words[2], false); err != nil {
			return
		}
		codes = append(codes, MakeI(OP_LUI, 0, rt, imm))
	case memMap[mnemonic] != 0:
		// lw DST OFFSET(BASE)
		if err = needWords(words, 3); err != nil {
			return
		}
		var rt Reg
		if rt, err = asm.getReg(words[1]); err != nil {
			return
		}
		var base Reg
		var offset uint16
		if base, offset, err = asm.getMem(words[2]); err != nil {
			return
		}
		codes = append(codes, MakeI(memMap[mnemonic], base, rt, offset))
	case mnemonic == "beq" || mnemonic == "bne":
		if err = needWords(words, 4); err != nil {
			return
		}
		var rs, rt Reg
		if rs, err = asm.getReg(words[1]); err != nil {
			return
		}
		if rt, err = asm.getReg(words[2]); err != nil {
			return
		}
		var code uint32
		if code, label, err = asm.branchCode(branchMap[mnemonic], rs, rt, words[3]); err != nil {
			return
		}
		codes = append(codes, code)
	case mnemonic == "blez" || mnemonic == "bgtz":
		if err = needWords(words, 3); err != nil {
			return
		}
		var rs Reg
		if rs, err = asm.getReg(words[1]); err != nil {
			return
		}
		var code uint32
		if code, label, err = asm.branchCode(branchMap[mnemonic], rs, 0, words[2]); err != nil {
			return
		}
		codes = append(codes, code)
	case mnemonic == "j" || mnemonic == "jal":
		if err = needWords(words, 2); err != nil {
			return
		}
		primary := uint32(OP_J)
		if mnemonic == "jal" {
			primary = OP_JAL
		}
		var code uint32
		if code, label, err = asm.jumpCode(primary, words[1]); err != nil {
			return
		}
		codes = append(codes, code)
	case mnemonic == "li":
		// li DST VALUE, expanded by value range
		if err = needWords(words, 3); err != nil {
			return
		}
		var rt Reg
		if rt, err = asm.getReg(words[1]); err != nil {
			return
		}
		var value uint32
		if value, err = asm.valueOf(words[2]); err != nil {
			return
		}
		switch {
		case value <= 0xffff:
			codes = append(codes, MakeI(OP_ORI, REG_ZERO, rt, uint16(value)))
		case value >= 0xffff8000:
			codes = append(codes, MakeI(OP_ADDIU, REG_ZERO, rt, uint16(value&0xffff)))
		default:
			codes = append(codes,
				MakeI(OP_LUI, 0, rt, uint16(value>>16)),
				MakeI(OP_ORI, rt, rt, uint16(value&0xffff)),
			)
		}
	case mnemonic == "la":
		// la DST LABEL
		if err = needWords(words, 3); err != nil {
			return
		}
		var rt Reg
		if rt, err = asm.getReg(words[1]); err != nil {
			return
		}
		codes = append(codes,
			MakeI(OP_LUI, 0, rt, 0),
			MakeI(OP_ORI, rt, rt, 0),
		)
		label = words[2]
	case mnemonic == ".word":
		if len(words) < 2 {
			err = ErrWordSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint32
			if value, err = asm.valueOf(word); err != nil {
				return
			}
			codes = append(codes, value)
		}
	case mnemonic == ".org":
		if err = needWords(words, 2); err != nil {
			err = ErrOrgSyntax
			return
		}
		var value uint32
		if value, err = asm.valueOf(words[1]); err != nil {
			return
		}
		if (value & 3) != 0 {
			err = ErrTargetUnaligned
			return
		}
		asm.addr = value
	default:
		err = ErrOpcodeInvalid
		return
	}

	return
}
