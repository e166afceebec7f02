package riscv

import (
	"fmt"
)

// Instruction is a decoded full-length instruction. The concrete type is
// one of Lui, Auipc, Jal, Jalr, Branch, Load, Store, OpImm, OpImmWord, Op,
// OpWord, Fence, SystemCall, CsrOp or CsrOpImmediate; the set is closed.
type Instruction interface {
	fmt.Stringer

	// Mnemonic returns the assembler mnemonic, such as "addi".
	Mnemonic() string

	appendText(b []byte, names CSRNamer) []byte
	flatten() FlatInstruction
}

// BranchCond is the comparison of a conditional branch. Values are the
// funct3 encodings.
type BranchCond uint8

const (
	BranchEq  BranchCond = 0b000
	BranchNe  BranchCond = 0b001
	BranchLt  BranchCond = 0b100
	BranchGe  BranchCond = 0b101
	BranchLtu BranchCond = 0b110
	BranchGeu BranchCond = 0b111
)

// LoadWidth is the access size and extension of a load. Values are the
// funct3 encodings.
type LoadWidth uint8

const (
	LoadByte   LoadWidth = 0b000
	LoadHalf   LoadWidth = 0b001
	LoadWord   LoadWidth = 0b010
	LoadDouble LoadWidth = 0b011
	LoadByteU  LoadWidth = 0b100
	LoadHalfU  LoadWidth = 0b101
	LoadWordU  LoadWidth = 0b110
)

// StoreWidth is the access size of a store. Values are the funct3
// encodings.
type StoreWidth uint8

const (
	StoreByte   StoreWidth = 0b000
	StoreHalf   StoreWidth = 0b001
	StoreWord   StoreWidth = 0b010
	StoreDouble StoreWidth = 0b011
)

// AluOp is an integer computation shared by the register and immediate
// forms. The low three bits are funct3; bit 3 is set for the alternate
// (funct7 = 0100000) operations.
type AluOp uint8

const (
	AluAdd  AluOp = 0b0000
	AluSll  AluOp = 0b0001
	AluSlt  AluOp = 0b0010
	AluSltu AluOp = 0b0011
	AluXor  AluOp = 0b0100
	AluSrl  AluOp = 0b0101
	AluOr   AluOp = 0b0110
	AluAnd  AluOp = 0b0111
	AluSub  AluOp = 0b1000
	AluSra  AluOp = 0b1101
)

// IsShift reports whether op is one of the shifts.
func (op AluOp) IsShift() bool {
	switch op {
	case AluSll, AluSrl, AluSra:
		return true
	}
	return false
}

// FenceKind distinguishes the memory-ordering fence from the instruction
// fetch fence. Values are the funct3 encodings.
type FenceKind uint8

const (
	FenceData  FenceKind = 0b000
	FenceInstr FenceKind = 0b001
)

// Fence predecessor and successor set bits.
const (
	FenceSetW uint8 = 1 << iota
	FenceSetR
	FenceSetO
	FenceSetI
)

// FenceModeTSO is the fm value of FENCE.TSO.
const FenceModeTSO uint8 = 0b1000

// SystemOp is an environment call, breakpoint, trap return or wait. Values
// are the funct12 encodings.
type SystemOp uint16

const (
	SysECall  SystemOp = 0x000
	SysEBreak SystemOp = 0x001
	SysSRet   SystemOp = 0x102
	SysWfi    SystemOp = 0x105
	SysMRet   SystemOp = 0x302
)

// IsTrapReturn reports whether op returns from a trap handler.
func (op SystemOp) IsTrapReturn() bool {
	return op == SysSRet || op == SysMRet
}

// CsrOpKind is the read-modify-write flavour of a CSR access. Values are
// the low two bits of funct3.
type CsrOpKind uint8

const (
	CsrReadWrite CsrOpKind = 0b01
	CsrReadSet   CsrOpKind = 0b10
	CsrReadClear CsrOpKind = 0b11
)

type Lui struct {
	Rd  Reg
	Imm uint32
}

type Auipc struct {
	Rd  Reg
	Imm uint32
}

type Jal struct {
	Rd     Reg
	Offset int32
}

type Jalr struct {
	Rd, Rs1 Reg
	Offset  int32
}

type Branch struct {
	Cond     BranchCond
	Rs1, Rs2 Reg
	Offset   int32
}

type Load struct {
	Width   LoadWidth
	Rd, Rs1 Reg
	Offset  int32
}

// Store writes Rs2 to the address Rs1+Offset.
type Store struct {
	Width    StoreWidth
	Rs1, Rs2 Reg
	Offset   int32
}

// OpImm is a register-immediate computation. For shifts Imm is the shift
// amount.
type OpImm struct {
	Alu     AluOp
	Rd, Rs1 Reg
	Imm     int32
}

// OpImmWord is the RV64 32-bit register-immediate form (ADDIW and the
// W shifts).
type OpImmWord struct {
	Alu     AluOp
	Rd, Rs1 Reg
	Imm     int32
}

type Op struct {
	Alu          AluOp
	Rd, Rs1, Rs2 Reg
}

type OpWord struct {
	Alu          AluOp
	Rd, Rs1, Rs2 Reg
}

// Fence is FENCE or FENCE.I. Mode, Pred and Succ are only meaningful for
// FenceData.
type Fence struct {
	Kind FenceKind
	Mode uint8
	Pred uint8
	Succ uint8
}

type SystemCall struct {
	Kind SystemOp
}

type CsrOp struct {
	Kind    CsrOpKind
	Rd, Rs1 Reg
	CSR     CSR
}

// CsrOpImmediate is a CSR access whose source operand is a 5-bit
// zero-extended immediate instead of a register.
type CsrOpImmediate struct {
	Kind CsrOpKind
	Rd   Reg
	Zimm uint8
	CSR  CSR
}

var (
	_ Instruction = Lui{}
	_ Instruction = Auipc{}
	_ Instruction = Jal{}
	_ Instruction = Jalr{}
	_ Instruction = Branch{}
	_ Instruction = Load{}
	_ Instruction = Store{}
	_ Instruction = OpImm{}
	_ Instruction = OpImmWord{}
	_ Instruction = Op{}
	_ Instruction = OpWord{}
	_ Instruction = Fence{}
	_ Instruction = SystemCall{}
	_ Instruction = CsrOp{}
	_ Instruction = CsrOpImmediate{}
)
