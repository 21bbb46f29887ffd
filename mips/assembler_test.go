package mips

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%#v", TEXT_BASE), asm.Equate["TEXT_BASE"])
	assert.Equal(fmt.Sprintf("%#v", DATA_BASE), asm.Equate["DATA_BASE"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerArith(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"add $t0, $t1, $t2",
		"sltu $v0, $a0, $a1",
		"sll $t0, $t0, 4",
		"mult $t0, $t1",
		"mfhi $v0",
		"mtlo $t3",
		"jr $ra",
		"jalr $t9",
		"jalr $t0, $t9",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := []Opcode{
		{1, 0x00, []string{"add", "$t0", "$t1", "$t2"}, []uint32{MakeR(FN_ADD, REG_T1, REG_T2, REG_T0, 0)}, ""},
		{2, 0x04, []string{"sltu", "$v0", "$a0", "$a1"}, []uint32{MakeR(FN_SLTU, REG_A0, REG_A1, REG_V0, 0)}, ""},
		{3, 0x08, []string{"sll", "$t0", "$t0", "4"}, []uint32{MakeR(FN_SLL, 0, REG_T0, REG_T0, 4)}, ""},
		{4, 0x0c, []string{"mult", "$t0", "$t1"}, []uint32{MakeR(FN_MULT, REG_T0, REG_T1, 0, 0)}, ""},
		{5, 0x10, []string{"mfhi", "$v0"}, []uint32{MakeR(FN_MFHI, 0, 0, REG_V0, 0)}, ""},
		{6, 0x14, []string{"mtlo", "$t3"}, []uint32{MakeR(FN_MTLO, REG_T3, 0, 0, 0)}, ""},
		{7, 0x18, []string{"jr", "$ra"}, []uint32{MakeR(FN_JR, REG_RA, 0, 0, 0)}, ""},
		{8, 0x1c, []string{"jalr", "$t9"}, []uint32{MakeR(FN_JALR, REG_T9, 0, REG_RA, 0)}, ""},
		{9, 0x20, []string{"jalr", "$t0", "$t9"}, []uint32{MakeR(FN_JALR, REG_T9, 0, REG_T0, 0)}, ""},
	}

	opEqual(t, expected, prog.Opcodes)

	// Numeric register names are accepted as well.
	prog, err = asm.Parse(strings.NewReader("add $8, $9, $10"))
	require.NoError(t, err)
	assert.Equal([]uint32{MakeR(FN_ADD, REG_T1, REG_T2, REG_T0, 0)}, prog.Opcodes[0].Codes)
}

func TestAssemblerImmediate(t *testing.T) {
	asm := &Assembler{}

	program := []string{
		"addi $t0, $t1, -4",
		"sltiu $t0, $t1, -1",
		"andi $t0, $t1, 0xff00",
		"ori $t0, $zero, 0xffff",
		"lui $gp, 0x1000",
		"lw $t0, -4($sp)",
		"sw $t0, 16($sp)",
		"lbu $t1, ($a0)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := [][]uint32{
		{MakeI(OP_ADDI, REG_T1, REG_T0, 0xfffc)},
		{MakeI(OP_SLTIU, REG_T1, REG_T0, 0xffff)},
		{MakeI(OP_ANDI, REG_T1, REG_T0, 0xff00)},
		{MakeI(OP_ORI, REG_ZERO, REG_T0, 0xffff)},
		{MakeI(OP_LUI, 0, REG_GP, 0x1000)},
		{MakeI(OP_LW, REG_SP, REG_T0, 0xfffc)},
		{MakeI(OP_SW, REG_SP, REG_T0, 16)},
		{MakeI(OP_LBU, REG_A0, REG_T1, 0)},
	}

	require.Equal(t, len(expected), len(prog.Opcodes))
	for n, codes := range expected {
		assert.Equal(t, codes, prog.Opcodes[n].Codes, prog.Opcodes[n].Words)
	}
}

func TestAssemblerImmediateRange(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("addi $t0, $t1, 0x10000"))
	assert.ErrorIs(err, ErrImmediateRange)

	// andi is zero-extended; negative operands are out of range.
	_, err = asm.Parse(strings.NewReader("andi $t0, $t1, -1"))
	assert.ErrorIs(err, ErrImmediateRange)

	// but in range for the sign-extended forms.
	_, err = asm.Parse(strings.NewReader("addi $t0, $t1, -1"))
	assert.NoError(err)

	_, err = asm.Parse(strings.NewReader("sll $t0, $t1, 32"))
	assert.ErrorIs(err, ErrShiftRange)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"	.org TEXT_BASE",
		"main:	li $t0 10",
		"loop:	addi $t0 $t0 -1",
		"	bgtz $t0 loop",
		"	jal end",
		"	nop",
		"end:	jr $ra",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	assert.Equal(uint32(0x00400000), asm.Label["main"])
	assert.Equal(uint32(0x00400004), asm.Label["loop"])
	assert.Equal(uint32(0x00400014), asm.Label["end"])

	var codes []uint32
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	expected := []uint32{
		MakeI(OP_ORI, REG_ZERO, REG_T0, 10),
		MakeI(OP_ADDI, REG_T0, REG_T0, 0xffff),
		// loop is two words back from the delay reference point.
		MakeI(OP_BGTZ, REG_T0, 0, 0xfffe),
		MakeJ(OP_JAL, 0x00400014>>2),
		0x00000000,
		MakeR(FN_JR, REG_RA, 0, 0, 0),
	}

	assert.Equal(expected, codes)

	// The decoder agrees about both targets.
	branch := Decode(codes[2], 0x00400008)
	assert.Equal(Branch{BRANCH_GTZ, REG_T0, 0, 0x00400004}, branch)
	jump := Decode(codes[3], 0x0040000c)
	assert.Equal(Jump{Target: 0x00400014, Link: true}, jump)
}

func TestAssemblerLabelErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("j nowhere"))
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))

	_, err = asm.Parse(strings.NewReader("x:\nx:"))
	assert.ErrorIs(err, ErrLabelDuplicate)

	// A jump cannot leave its 256MB segment.
	_, err = asm.Parse(strings.NewReader("j 0x10000000"))
	assert.ErrorIs(err, ErrTargetSegment)

	_, err = asm.Parse(strings.NewReader("beq $t0, $t1, 0x2"))
	assert.ErrorIs(err, ErrTargetUnaligned)
}

func TestAssemblerPseudo(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"	move $a0, $s0",
		"	not $t0, $t1",
		"	neg $t1, $t2",
		"	li $t0, 0x12345678",
		"	li $t1, -5",
		"	la $a1, data",
		"	b data",
		"data:	.word 0xdeadbeef, 1",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	var codes []uint32
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	expected := []uint32{
		MakeR(FN_ADDU, REG_S0, REG_ZERO, REG_A0, 0),
		MakeR(FN_NOR, REG_T1, REG_ZERO, REG_T0, 0),
		MakeR(FN_SUB, REG_ZERO, REG_T2, REG_T1, 0),
		MakeI(OP_LUI, 0, REG_T0, 0x1234),
		MakeI(OP_ORI, REG_T0, REG_T0, 0x5678),
		MakeI(OP_ADDIU, REG_ZERO, REG_T1, 0xfffb),
		// la links against the data label at 0x24.
		MakeI(OP_LUI, 0, REG_A1, 0),
		MakeI(OP_ORI, REG_A1, REG_A1, 0x24),
		MakeI(OP_BEQ, REG_ZERO, REG_ZERO, 0),
		0xdeadbeef,
		0x00000001,
	}

	assert.Equal(expected, codes)
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro SPILL ra rb",
		"sw ra 0($sp)",
		"sw rb 4($sp)",
		".endm",
		"SPILL $t0 $t1",
		"SPILL $s0 $s1",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	var codes []uint32
	for _, code := range prog.Codes() {
		codes = append(codes, code)
	}

	expected := []uint32{
		MakeI(OP_SW, REG_SP, REG_T0, 0),
		MakeI(OP_SW, REG_SP, REG_T1, 4),
		MakeI(OP_SW, REG_SP, REG_S0, 0),
		MakeI(OP_SW, REG_SP, REG_S1, 4),
	}

	assert.Equal(expected, codes)

	_, err = asm.Parse(strings.NewReader(".macro A\n.macro B\n.endm\n.endm"))
	assert.ErrorIs(err, ErrMacroNesting)

	_, err = asm.Parse(strings.NewReader(".endm"))
	assert.ErrorIs(err, ErrMacroLonelyEndm)

	_, err = asm.Parse(strings.NewReader(".macro A"))
	assert.ErrorIs(err, ErrMacroLonely)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ SIZE 8",
		"addi $sp $sp $(0 - SIZE*4)",
		"ori $t0 $zero $(SIZE << 4)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := [][]uint32{
		{MakeI(OP_ADDI, REG_SP, REG_SP, 0xffe0)},
		{MakeI(OP_ORI, REG_ZERO, REG_T0, 0x80)},
	}

	require.Equal(t, len(expected), len(prog.Opcodes))
	for n, codes := range expected {
		assert.Equal(codes, prog.Opcodes[n].Codes)
	}

	_, err = asm.Parse(strings.NewReader(".equ SIZE 8\n.equ SIZE 9"))
	assert.ErrorIs(err, ErrEquateDuplicate)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BUFFER", "0x100")

	prog, err := asm.Parse(strings.NewReader("lw $t0 BUFFER($gp)"))
	require.NoError(t, err)

	assert.Equal([]uint32{MakeI(OP_LW, REG_GP, REG_T0, 0x100)}, prog.Opcodes[0].Codes)
}

func TestAssemblerInvalid(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("frobnicate $t0"))
	assert.ErrorIs(err, ErrOpcodeInvalid)

	_, err = asm.Parse(strings.NewReader("add $t0, $t1"))
	assert.ErrorIs(err, ErrOpcodeMissing)

	_, err = asm.Parse(strings.NewReader("add $t0, $t1, $t2, $t3"))
	assert.ErrorIs(err, ErrOpcodeExtraArgs)

	_, err = asm.Parse(strings.NewReader("add $t0, $t1, $x9"))
	assert.ErrorIs(err, ErrRegisterInvalid)

	var esyntax *ErrSyntax
	_, err = asm.Parse(strings.NewReader("\n\nadd $t0, $t1, $x9"))
	assert.ErrorAs(err, &esyntax)
	assert.Equal(3, esyntax.LineNo)
}
