package mips

// Decode decodes a 32-bit instruction word fetched from address pc.
//
// Decode is total: every input maps to exactly one Instruction, with
// reserved and malformed encodings landing on Unknown rather than an
// error. The pc is used only to synthesize branch and jump target
// addresses; it is not advanced or validated here.
func Decode(word uint32, pc uint32) Instruction {
	op := (word >> 26) & 0x3f

	switch op {
	case OP_SPECIAL:
		return decodeSpecial(word)
	case OP_J, OP_JAL:
		// The top nibble of the target comes from the address of the
		// *next* instruction, not the jump itself.
		target := ((pc + 4) & 0xf0000000) | ((word & 0x03ffffff) << 2)
		return Jump{Target: target, Link: op == OP_JAL}
	}

	rs := Reg((word >> 21) & 0x1f)
	rt := Reg((word >> 16) & 0x1f)
	imm := word & 0xffff

	switch op {
	case OP_BEQ:
		return Branch{Op: BRANCH_EQ, Rs: rs, Rt: rt, Target: branchTarget(pc, imm)}
	case OP_BNE:
		return Branch{Op: BRANCH_NE, Rs: rs, Rt: rt, Target: branchTarget(pc, imm)}
	case OP_BLEZ:
		return Branch{Op: BRANCH_LEZ, Rs: rs, Target: branchTarget(pc, imm)}
	case OP_BGTZ:
		return Branch{Op: BRANCH_GTZ, Rs: rs, Target: branchTarget(pc, imm)}
	case OP_ADDI, OP_ADDIU:
		// addi's overflow trap is not modeled; both forms decode alike.
		return ArithImm{Op: ARITH_ADD, Rt: rt, Rs: rs, Imm: signExtend(imm)}
	case OP_SLTI:
		return ArithImm{Op: ARITH_SLT, Rt: rt, Rs: rs, Imm: signExtend(imm)}
	case OP_SLTIU:
		// Unsigned comparison, but the immediate is still sign-extended.
		return ArithImm{Op: ARITH_SLTU, Rt: rt, Rs: rs, Imm: signExtend(imm)}
	case OP_ANDI:
		return ArithImm{Op: ARITH_AND, Rt: rt, Rs: rs, Imm: zeroExtend(imm)}
	case OP_ORI:
		return ArithImm{Op: ARITH_OR, Rt: rt, Rs: rs, Imm: zeroExtend(imm)}
	case OP_XORI:
		return ArithImm{Op: ARITH_XOR, Rt: rt, Rs: rs, Imm: zeroExtend(imm)}
	case OP_LUI:
		return LoadUpper{Rt: rt, Imm: uint16(imm)}
	case OP_LB:
		return Load{Width: LOAD_BYTE, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_LH:
		return Load{Width: LOAD_HALF, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_LW:
		return Load{Width: LOAD_WORD, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_LBU:
		return Load{Width: LOAD_BYTE_U, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_LHU:
		return Load{Width: LOAD_HALF_U, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_SB:
		return Store{Width: STORE_BYTE, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_SH:
		return Store{Width: STORE_HALF, Rt: rt, Base: rs, Offset: signExtend(imm)}
	case OP_SW:
		return Store{Width: STORE_WORD, Rt: rt, Base: rs, Offset: signExtend(imm)}
	}

	return Unknown{Word: word, Op: op, Rs: rs, Rt: rt, Imm: signExtend(imm)}
}

// branchTarget computes the absolute branch destination: the offset is
// relative to the instruction following the branch, in words.
func branchTarget(pc uint32, imm uint32) uint32 {
	return pc + 4 + (uint32(signExtend(imm)) << 2)
}

// decodeSpecial decodes the OP_SPECIAL (R-type) family via the funct
// field.
func decodeSpecial(word uint32) Instruction {
	rs := Reg((word >> 21) & 0x1f)
	rt := Reg((word >> 16) & 0x1f)
	rd := Reg((word >> 11) & 0x1f)
	shamt := (word >> 6) & 0x1f
	funct := word & 0x3f

	switch funct {
	case FN_SLL:
		// sll $zero, $zero, 0 is the canonical nop encoding.
		if rs == 0 && rt == 0 && rd == 0 && shamt == 0 {
			return Nop{}
		}
		return Shift{Op: SHIFT_SLL, Rd: rd, Rt: rt, Amount: shamt}
	case FN_SRL:
		return Shift{Op: SHIFT_SRL, Rd: rd, Rt: rt, Amount: shamt}
	case FN_SRA:
		return Shift{Op: SHIFT_SRA, Rd: rd, Rt: rt, Amount: shamt}
	case FN_JR:
		return JumpReg{Rs: rs}
	case FN_JALR:
		return JumpLinkReg{Rd: rd, Rs: rs}
	case FN_MFHI:
		return MoveSpecial{Op: SPECIAL_MFHI, Reg: rd}
	case FN_MTHI:
		return MoveSpecial{Op: SPECIAL_MTHI, Reg: rs}
	case FN_MFLO:
		return MoveSpecial{Op: SPECIAL_MFLO, Reg: rd}
	case FN_MTLO:
		return MoveSpecial{Op: SPECIAL_MTLO, Reg: rs}
	case FN_MULT:
		return MultDiv{Op: MULTDIV_MULT, Rs: rs, Rt: rt}
	case FN_MULTU:
		return MultDiv{Op: MULTDIV_MULTU, Rs: rs, Rt: rt}
	case FN_DIV:
		return MultDiv{Op: MULTDIV_DIV, Rs: rs, Rt: rt}
	case FN_DIVU:
		return MultDiv{Op: MULTDIV_DIVU, Rs: rs, Rt: rt}
	case FN_ADD, FN_ADDU:
		// add's overflow trap is not modeled; both forms decode alike.
		return Arith{Op: ARITH_ADD, Rd: rd, Rs: rs, Rt: rt}
	case FN_SUB, FN_SUBU:
		return Arith{Op: ARITH_SUB, Rd: rd, Rs: rs, Rt: rt}
	case FN_AND:
		return Arith{Op: ARITH_AND, Rd: rd, Rs: rs, Rt: rt}
	case FN_OR:
		return Arith{Op: ARITH_OR, Rd: rd, Rs: rs, Rt: rt}
	case FN_XOR:
		return Arith{Op: ARITH_XOR, Rd: rd, Rs: rs, Rt: rt}
	case FN_NOR:
		return Arith{Op: ARITH_NOR, Rd: rd, Rs: rs, Rt: rt}
	case FN_SLT:
		return Arith{Op: ARITH_SLT, Rd: rd, Rs: rs, Rt: rt}
	case FN_SLTU:
		return Arith{Op: ARITH_SLTU, Rd: rd, Rs: rs, Rt: rt}
	}

	return Unknown{Word: word, Funct: funct, Rs: rs, Rt: rt, Rd: rd, Shamt: shamt}
}
