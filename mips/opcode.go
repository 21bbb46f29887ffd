package mips

// Primary opcode values (bits 31-26 of the instruction word).
const (
	OP_SPECIAL = 0x00 // R-type; funct field selects the operation
	OP_J       = 0x02
	OP_JAL     = 0x03
	OP_BEQ     = 0x04
	OP_BNE     = 0x05
	OP_BLEZ    = 0x06
	OP_BGTZ    = 0x07
	OP_ADDI    = 0x08
	OP_ADDIU   = 0x09
	OP_SLTI    = 0x0a
	OP_SLTIU   = 0x0b
	OP_ANDI    = 0x0c
	OP_ORI     = 0x0d
	OP_XORI    = 0x0e
	OP_LUI     = 0x0f
	OP_LB      = 0x20
	OP_LH      = 0x21
	OP_LW      = 0x23
	OP_LBU     = 0x24
	OP_LHU     = 0x25
	OP_SB      = 0x28
	OP_SH      = 0x29
	OP_SW      = 0x2b
)

// Funct values (bits 5-0, OP_SPECIAL only).
const (
	FN_SLL   = 0x00
	FN_SRL   = 0x02
	FN_SRA   = 0x03
	FN_JR    = 0x08
	FN_JALR  = 0x09
	FN_MFHI  = 0x10
	FN_MTHI  = 0x11
	FN_MFLO  = 0x12
	FN_MTLO  = 0x13
	FN_MULT  = 0x18
	FN_MULTU = 0x19
	FN_DIV   = 0x1a
	FN_DIVU  = 0x1b
	FN_ADD   = 0x20
	FN_ADDU  = 0x21
	FN_SUB   = 0x22
	FN_SUBU  = 0x23
	FN_AND   = 0x24
	FN_OR    = 0x25
	FN_XOR   = 0x26
	FN_NOR   = 0x27
	FN_SLT   = 0x2a
	FN_SLTU  = 0x2b
)

// Reg is a general-purpose register index (0-31).
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	REG_ZERO = Reg(0)  // $zero
	REG_AT   = Reg(1)  // $at
	REG_V0   = Reg(2)  // $v0
	REG_V1   = Reg(3)  // $v1
	REG_A0   = Reg(4)  // $a0
	REG_A1   = Reg(5)  // $a1
	REG_A2   = Reg(6)  // $a2
	REG_A3   = Reg(7)  // $a3
	REG_T0   = Reg(8)  // $t0
	REG_T1   = Reg(9)  // $t1
	REG_T2   = Reg(10) // $t2
	REG_T3   = Reg(11) // $t3
	REG_T4   = Reg(12) // $t4
	REG_T5   = Reg(13) // $t5
	REG_T6   = Reg(14) // $t6
	REG_T7   = Reg(15) // $t7
	REG_S0   = Reg(16) // $s0
	REG_S1   = Reg(17) // $s1
	REG_S2   = Reg(18) // $s2
	REG_S3   = Reg(19) // $s3
	REG_S4   = Reg(20) // $s4
	REG_S5   = Reg(21) // $s5
	REG_S6   = Reg(22) // $s6
	REG_S7   = Reg(23) // $s7
	REG_T8   = Reg(24) // $t8
	REG_T9   = Reg(25) // $t9
	REG_K0   = Reg(26) // $k0
	REG_K1   = Reg(27) // $k1
	REG_GP   = Reg(28) // $gp
	REG_SP   = Reg(29) // $sp
	REG_FP   = Reg(30) // $fp
	REG_RA   = Reg(31) // $ra
)

// ArithOp is a register or immediate arithmetic operation type.
type ArithOp int

//go:generate go tool stringer -linecomment -type=ArithOp
const (
	ARITH_ADD  = ArithOp(0) // add
	ARITH_SUB  = ArithOp(1) // sub
	ARITH_AND  = ArithOp(2) // and
	ARITH_OR   = ArithOp(3) // or
	ARITH_XOR  = ArithOp(4) // xor
	ARITH_NOR  = ArithOp(5) // nor
	ARITH_SLT  = ArithOp(6) // slt
	ARITH_SLTU = ArithOp(7) // sltu
)

// ShiftOp is a constant-amount shift operation type.
type ShiftOp int

//go:generate go tool stringer -linecomment -type=ShiftOp
const (
	SHIFT_SLL = ShiftOp(0) // sll
	SHIFT_SRL = ShiftOp(1) // srl
	SHIFT_SRA = ShiftOp(2) // sra
)

// BranchOp is a conditional branch operation type.
type BranchOp int

//go:generate go tool stringer -linecomment -type=BranchOp
const (
	BRANCH_EQ  = BranchOp(0) // beq
	BRANCH_NE  = BranchOp(1) // bne
	BRANCH_LEZ = BranchOp(2) // blez
	BRANCH_GTZ = BranchOp(3) // bgtz
)

// HasRt returns true if the branch compares two registers. The
// zero-comparison forms (blez, bgtz) carry no second register operand.
func (op BranchOp) HasRt() bool {
	return op == BRANCH_EQ || op == BRANCH_NE
}

// LoadWidth is a load width and extension type.
type LoadWidth int

//go:generate go tool stringer -linecomment -type=LoadWidth
const (
	LOAD_BYTE   = LoadWidth(0) // lb
	LOAD_HALF   = LoadWidth(1) // lh
	LOAD_WORD   = LoadWidth(2) // lw
	LOAD_BYTE_U = LoadWidth(3) // lbu
	LOAD_HALF_U = LoadWidth(4) // lhu
)

// StoreWidth is a store width type. Stores have no extension variants.
type StoreWidth int

//go:generate go tool stringer -linecomment -type=StoreWidth
const (
	STORE_BYTE = StoreWidth(0) // sb
	STORE_HALF = StoreWidth(1) // sh
	STORE_WORD = StoreWidth(2) // sw
)

// SpecialOp is a HI/LO special register move type.
type SpecialOp int

//go:generate go tool stringer -linecomment -type=SpecialOp
const (
	SPECIAL_MFHI = SpecialOp(0) // mfhi
	SPECIAL_MTHI = SpecialOp(1) // mthi
	SPECIAL_MFLO = SpecialOp(2) // mflo
	SPECIAL_MTLO = SpecialOp(3) // mtlo
)

// MultDivOp is a multiply or divide operation type.
type MultDivOp int

//go:generate go tool stringer -linecomment -type=MultDivOp
const (
	MULTDIV_MULT  = MultDivOp(0) // mult
	MULTDIV_MULTU = MultDivOp(1) // multu
	MULTDIV_DIV   = MultDivOp(2) // div
	MULTDIV_DIVU  = MultDivOp(3) // divu
)

// MakeR builds an R-type instruction word (OP_SPECIAL family).
func MakeR(funct uint32, rs, rt, rd Reg, shamt uint32) uint32 {
	return (uint32(rs&0x1f) << 21) | (uint32(rt&0x1f) << 16) |
		(uint32(rd&0x1f) << 11) | ((shamt & 0x1f) << 6) | (funct & 0x3f)
}

// MakeI builds an I-type instruction word.
func MakeI(op uint32, rs, rt Reg, imm uint16) uint32 {
	return ((op & 0x3f) << 26) | (uint32(rs&0x1f) << 21) |
		(uint32(rt&0x1f) << 16) | uint32(imm)
}

// MakeJ builds a J-type instruction word from a 26-bit word-index target.
func MakeJ(op uint32, target uint32) uint32 {
	return ((op & 0x3f) << 26) | (target & 0x03ffffff)
}

// signExtend widens the 16-bit immediate field as a two's-complement value.
func signExtend(imm uint32) int32 {
	return int32(int16(imm & 0xffff))
}

// zeroExtend widens the 16-bit immediate field as an unsigned value.
func zeroExtend(imm uint32) int32 {
	return int32(imm & 0xffff)
}
