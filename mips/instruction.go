package mips

import (
	"fmt"
)

// Instruction is a decoded instruction. The set of variants is closed:
// every 32-bit word decodes to exactly one of the types below, with
// Unknown as the catch-all for reserved or malformed encodings.
type Instruction interface {
	fmt.Stringer

	instruction()
}

// Arith is a three-register arithmetic or logic operation.
// The overflow-trapping encodings (add, sub) and their non-trapping
// counterparts (addu, subu) collapse to the same operation.
type Arith struct {
	Op ArithOp
	Rd Reg // destination
	Rs Reg
	Rt Reg
}

// ArithImm is a register-immediate arithmetic or logic operation.
// Imm is sign-extended for add/slt/sltu and zero-extended for the
// bitwise operations. sltiu still sign-extends its immediate before
// the unsigned comparison; that is the architecture's rule.
type ArithImm struct {
	Op  ArithOp
	Rt  Reg // destination
	Rs  Reg
	Imm int32
}

// Shift is a constant-amount shift.
type Shift struct {
	Op     ShiftOp
	Rd     Reg // destination
	Rt     Reg
	Amount uint32 // 0-31
}

// Load is a memory load through a base register and signed offset.
type Load struct {
	Width  LoadWidth
	Rt     Reg // destination
	Base   Reg
	Offset int32
}

// Store is a memory store through a base register and signed offset.
type Store struct {
	Width  StoreWidth
	Rt     Reg // source
	Base   Reg
	Offset int32
}

// Branch is a conditional branch. Target is the absolute address of the
// branch destination, already computed relative to the instruction's
// location. Rt is meaningful only when Op.HasRt() is true.
type Branch struct {
	Op     BranchOp
	Rs     Reg
	Rt     Reg
	Target uint32
}

// Jump is an unconditional jump to an absolute address. Link is set for
// the jump-and-link form, which captures the return address.
type Jump struct {
	Target uint32
	Link   bool
}

// JumpReg is a jump to the address held in a register.
type JumpReg struct {
	Rs Reg
}

// JumpLinkReg is a jump to the address held in Rs, with the return
// address captured in Rd.
type JumpLinkReg struct {
	Rd Reg
	Rs Reg
}

// MoveSpecial is a move between a general register and the HI or LO
// special register. Reg is the destination for the move-from forms and
// the source for the move-to forms.
type MoveSpecial struct {
	Op  SpecialOp
	Reg Reg
}

// MultDiv is a multiply or divide. The result lands in HI/LO, so the
// encoding carries only the two source registers.
type MultDiv struct {
	Op MultDivOp
	Rs Reg
	Rt Reg
}

// LoadUpper is a load-upper-immediate. Imm is the raw 16-bit constant;
// the consumer places it in the upper half of the destination.
type LoadUpper struct {
	Rt  Reg
	Imm uint16
}

// Nop is the canonical no-operation encoding: sll with all fields zero.
type Nop struct{}

// Unknown is an encoding that matched no known pattern. It echoes the
// raw fields so a caller can log or trap at a higher layer. Funct,
// Rd and Shamt are meaningful only for the OP_SPECIAL family; Imm only
// for the immediate family.
type Unknown struct {
	Word  uint32
	Op    uint32
	Funct uint32
	Rs    Reg
	Rt    Reg
	Rd    Reg
	Shamt uint32
	Imm   int32
}

func (Arith) instruction()       {}
func (ArithImm) instruction()    {}
func (Shift) instruction()       {}
func (Load) instruction()        {}
func (Store) instruction()       {}
func (Branch) instruction()      {}
func (Jump) instruction()        {}
func (JumpReg) instruction()     {}
func (JumpLinkReg) instruction() {}
func (MoveSpecial) instruction() {}
func (MultDiv) instruction()     {}
func (LoadUpper) instruction()   {}
func (Nop) instruction()         {}
func (Unknown) instruction()     {}

// String returns the instruction in canonical assembly syntax.
func (in Arith) String() string {
	return fmt.Sprintf("%v %v, %v, %v", in.Op, in.Rd, in.Rs, in.Rt)
}

// immName maps an ArithOp to its immediate-form mnemonic.
func immName(op ArithOp) string {
	switch op {
	case ARITH_ADD:
		return "addi"
	case ARITH_SLT:
		return "slti"
	case ARITH_SLTU:
		return "sltiu"
	case ARITH_AND:
		return "andi"
	case ARITH_OR:
		return "ori"
	case ARITH_XOR:
		return "xori"
	}

	return fmt.Sprintf("%vi", op)
}

func (in ArithImm) String() string {
	switch in.Op {
	case ARITH_AND, ARITH_OR, ARITH_XOR:
		return fmt.Sprintf("%v %v, %v, %#x", immName(in.Op), in.Rt, in.Rs, uint32(in.Imm))
	}

	return fmt.Sprintf("%v %v, %v, %v", immName(in.Op), in.Rt, in.Rs, in.Imm)
}

func (in Shift) String() string {
	return fmt.Sprintf("%v %v, %v, %v", in.Op, in.Rd, in.Rt, in.Amount)
}

func (in Load) String() string {
	return fmt.Sprintf("%v %v, %v(%v)", in.Width, in.Rt, in.Offset, in.Base)
}

func (in Store) String() string {
	return fmt.Sprintf("%v %v, %v(%v)", in.Width, in.Rt, in.Offset, in.Base)
}

func (in Branch) String() string {
	if in.Op.HasRt() {
		return fmt.Sprintf("%v %v, %v, 0x%08x", in.Op, in.Rs, in.Rt, in.Target)
	}

	return fmt.Sprintf("%v %v, 0x%08x", in.Op, in.Rs, in.Target)
}

func (in Jump) String() string {
	if in.Link {
		return fmt.Sprintf("jal 0x%08x", in.Target)
	}

	return fmt.Sprintf("j 0x%08x", in.Target)
}

func (in JumpReg) String() string {
	return fmt.Sprintf("jr %v", in.Rs)
}

func (in JumpLinkReg) String() string {
	return fmt.Sprintf("jalr %v, %v", in.Rd, in.Rs)
}

func (in MoveSpecial) String() string {
	return fmt.Sprintf("%v %v", in.Op, in.Reg)
}

func (in MultDiv) String() string {
	return fmt.Sprintf("%v %v, %v", in.Op, in.Rs, in.Rt)
}

func (in LoadUpper) String() string {
	return fmt.Sprintf("lui %v, %#x", in.Rt, in.Imm)
}

func (Nop) String() string {
	return "nop"
}

func (in Unknown) String() string {
	return fmt.Sprintf(".word 0x%08x ; op=%#02x funct=%#02x", in.Word, in.Op, in.Funct)
}
