package riscv

import (
	"fmt"
)

// Reg is an integer register index in the range [0, 31].
type Reg uint8

// NewReg returns the register numbered n. It panics if n is out of range.
func NewReg(n uint8) Reg {
	if n > 31 {
		panic(fmt.Sprintf("riscv.NewReg: register index %d out of range", n))
	}
	return Reg(n)
}

func (r Reg) String() string {
	return fmt.Sprintf("x%d", uint8(r))
}

// CSR is a 12-bit control and status register index.
type CSR uint16

func (c CSR) String() string {
	return fmt.Sprintf("%#x", uint16(c))
}

// Format is one of the canonical operand layouts of a 32-bit instruction.
type Format uint8

const (
	FormatInvalid Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
	// FormatCSR is the I layout with its 12-bit immediate zero-extended,
	// as used by the Zicsr instructions for the CSR index.
	FormatCSR
	// FormatFence carries only the sign-extended fm/pred/succ field of
	// FENCE. Its rd and rs1 fields are reserved and ignored.
	FormatFence
	// FormatNone carries no operands at all.
	FormatNone
)

var formatNames = [...]string{
	FormatInvalid: "invalid",
	FormatR:       "R",
	FormatI:       "I",
	FormatS:       "S",
	FormatB:       "B",
	FormatU:       "U",
	FormatJ:       "J",
	FormatCSR:     "CSR",
	FormatFence:   "fence",
	FormatNone:    "none",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func rd(inst uint32) Reg       { return Reg(Bits(inst, 11, 7)) }
func rs1(inst uint32) Reg      { return Reg(Bits(inst, 19, 15)) }
func rs2(inst uint32) Reg      { return Reg(Bits(inst, 24, 20)) }
func funct3(inst uint32) uint8 { return uint8(Bits(inst, 14, 12)) }
func funct7(inst uint32) uint8 { return uint8(Bits(inst, 31, 25)) }

type RType struct {
	Rd, Rs1, Rs2   Reg
	Funct3, Funct7 uint8
}

type IType struct {
	Rd, Rs1 Reg
	Funct3  uint8
	Imm     int32
}

type SType struct {
	Rs1, Rs2 Reg
	Funct3   uint8
	Imm      int32
}

type BType struct {
	Rs1, Rs2 Reg
	Funct3   uint8
	Imm      int32
}

type UType struct {
	Rd  Reg
	Imm uint32
}

type JType struct {
	Rd  Reg
	Imm int32
}

func DecodeR(inst uint32) RType {
	return RType{
		Rd:     rd(inst),
		Rs1:    rs1(inst),
		Rs2:    rs2(inst),
		Funct3: funct3(inst),
		Funct7: funct7(inst),
	}
}

func DecodeI(inst uint32) IType {
	return IType{
		Rd:     rd(inst),
		Rs1:    rs1(inst),
		Funct3: funct3(inst),
		Imm:    int32(immI.extract(inst)),
	}
}

func DecodeS(inst uint32) SType {
	return SType{
		Rs1:    rs1(inst),
		Rs2:    rs2(inst),
		Funct3: funct3(inst),
		Imm:    int32(immS.extract(inst)),
	}
}

// DecodeB returns the branch operands. The offset is always even; bit zero
// is implied and never encoded.
func DecodeB(inst uint32) BType {
	return BType{
		Rs1:    rs1(inst),
		Rs2:    rs2(inst),
		Funct3: funct3(inst),
		Imm:    int32(immB.extract(inst)),
	}
}

// DecodeU returns the destination and the upper immediate already shifted
// into bits [31:12].
func DecodeU(inst uint32) UType {
	return UType{
		Rd:  rd(inst),
		Imm: immU.extract(inst),
	}
}

func DecodeJ(inst uint32) JType {
	return JType{
		Rd:  rd(inst),
		Imm: int32(immJ.extract(inst)),
	}
}

// flatten builds a flat record with the operands of format f. Fields the
// format does not carry are left zero.
func (f Format) flatten(inst uint32) FlatInstruction {
	switch f {
	case FormatR:
		o := DecodeR(inst)
		return FlatInstruction{Rd: o.Rd, Rs1: o.Rs1, Rs2: o.Rs2}
	case FormatI:
		o := DecodeI(inst)
		return FlatInstruction{Rd: o.Rd, Rs1: o.Rs1, Imm: uint32(o.Imm)}
	case FormatS:
		o := DecodeS(inst)
		return FlatInstruction{Rs1: o.Rs1, Rs2: o.Rs2, Imm: uint32(o.Imm)}
	case FormatB:
		o := DecodeB(inst)
		return FlatInstruction{Rs1: o.Rs1, Rs2: o.Rs2, Imm: uint32(o.Imm)}
	case FormatU:
		o := DecodeU(inst)
		return FlatInstruction{Rd: o.Rd, Imm: o.Imm}
	case FormatJ:
		o := DecodeJ(inst)
		return FlatInstruction{Rd: o.Rd, Imm: uint32(o.Imm)}
	case FormatCSR:
		return FlatInstruction{Rd: rd(inst), Rs1: rs1(inst), Imm: immCSR.extract(inst)}
	case FormatFence:
		return FlatInstruction{Imm: immI.extract(inst)}
	case FormatNone:
		return FlatInstruction{}
	default:
		panic(fmt.Sprintf("no operand extractor for format %s", f))
	}
}
