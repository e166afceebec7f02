// Package riscv decodes full-length (32-bit) RV32I/RV64I instruction words,
// including the Zicsr, Zifencei and trap-return instructions.
//
// There are two independent decoders. Decode dispatches on opcode, funct3
// and funct7 and returns one of the Instruction variants. DecodeFlat runs
// the word through an ordered table of bit-pattern templates and returns a
// FlatInstruction, which has the same shape for every instruction. Both
// share the format extractors, and Flatten projects the first onto the
// second.
package riscv

import (
	"encoding/binary"
)

// InstructionSize is the length in bytes of every instruction this package
// decodes.
const InstructionSize = 4

// Decode decodes inst as an RV64I instruction word. On success the second
// result is always InstructionSize. Unknown and malformed encodings are
// not distinguished; both report false.
func Decode(inst uint32) (Instruction, int, bool) {
	return DecodeXLEN(inst, RV64)
}

// DecodeXLEN is like Decode, but when xlen is RV32 it rejects the RV64-only
// loads, stores and word operations, and shift amounts wider than 5 bits.
func DecodeXLEN(inst uint32, xlen XLEN) (Instruction, int, bool) {
	info := majorOpcodes[OpcodeOf(inst)]
	if info == nil {
		return nil, 0, false
	}
	ret, ok := info.decode(inst, xlen)
	if !ok {
		return nil, 0, false
	}
	return ret, InstructionSize, true
}

// DecodeBytes decodes the little-endian word in the first four bytes of
// src. Any further bytes are ignored. It reports false if src is too short.
func DecodeBytes(src []byte) (Instruction, int, bool) {
	if len(src) < InstructionSize {
		return nil, 0, false
	}
	return Decode(binary.LittleEndian.Uint32(src))
}

func decodeLui(inst uint32, _ XLEN) (Instruction, bool) {
	u := DecodeU(inst)
	return Lui{Rd: u.Rd, Imm: u.Imm}, true
}

func decodeAuipc(inst uint32, _ XLEN) (Instruction, bool) {
	u := DecodeU(inst)
	return Auipc{Rd: u.Rd, Imm: u.Imm}, true
}

func decodeJal(inst uint32, _ XLEN) (Instruction, bool) {
	j := DecodeJ(inst)
	return Jal{Rd: j.Rd, Offset: j.Imm}, true
}

func decodeJalr(inst uint32, _ XLEN) (Instruction, bool) {
	i := DecodeI(inst)
	if i.Funct3 != 0b000 {
		return nil, false
	}
	return Jalr{Rd: i.Rd, Rs1: i.Rs1, Offset: i.Imm}, true
}

func decodeBranch(inst uint32, _ XLEN) (Instruction, bool) {
	b := DecodeB(inst)
	cond := BranchCond(b.Funct3)
	switch cond {
	case BranchEq, BranchNe, BranchLt, BranchGe, BranchLtu, BranchGeu:
	default:
		return nil, false
	}
	return Branch{Cond: cond, Rs1: b.Rs1, Rs2: b.Rs2, Offset: b.Imm}, true
}

func decodeLoad(inst uint32, xlen XLEN) (Instruction, bool) {
	i := DecodeI(inst)
	width := LoadWidth(i.Funct3)
	switch width {
	case LoadByte, LoadHalf, LoadWord, LoadByteU, LoadHalfU:
	case LoadDouble, LoadWordU:
		if xlen == RV32 {
			return nil, false
		}
	default:
		return nil, false
	}
	return Load{Width: width, Rd: i.Rd, Rs1: i.Rs1, Offset: i.Imm}, true
}

func decodeStore(inst uint32, xlen XLEN) (Instruction, bool) {
	s := DecodeS(inst)
	width := StoreWidth(s.Funct3)
	switch width {
	case StoreByte, StoreHalf, StoreWord:
	case StoreDouble:
		if xlen == RV32 {
			return nil, false
		}
	default:
		return nil, false
	}
	return Store{Width: width, Rs1: s.Rs1, Rs2: s.Rs2, Offset: s.Imm}, true
}

func decodeOpImm(inst uint32, xlen XLEN) (Instruction, bool) {
	i := DecodeI(inst)
	op := AluOp(i.Funct3)
	imm := i.Imm

	// Shifts keep a 6-bit shift amount in imm[5:0]; imm[11:6] selects
	// between the logical and arithmetic right shift.
	switch op {
	case AluSll:
		if Bits(inst, 31, 26) != 0b000000 {
			return nil, false
		}
	case AluSrl:
		switch Bits(inst, 31, 26) {
		case 0b000000:
		case 0b010000:
			op = AluSra
		default:
			return nil, false
		}
	}
	if op.IsShift() {
		if xlen == RV32 && Bit(inst, 25) != 0 {
			return nil, false
		}
		imm = int32(Bits(inst, 25, 20))
	}
	return OpImm{Alu: op, Rd: i.Rd, Rs1: i.Rs1, Imm: imm}, true
}

func decodeOpImmWord(inst uint32, xlen XLEN) (Instruction, bool) {
	if xlen == RV32 {
		return nil, false
	}
	i := DecodeI(inst)
	var op AluOp
	switch i.Funct3 {
	case 0b000:
		return OpImmWord{Alu: AluAdd, Rd: i.Rd, Rs1: i.Rs1, Imm: i.Imm}, true
	case 0b001:
		if Bits(inst, 31, 25) != 0b0000000 {
			return nil, false
		}
		op = AluSll
	case 0b101:
		switch Bits(inst, 31, 25) {
		case 0b0000000:
			op = AluSrl
		case 0b0100000:
			op = AluSra
		default:
			return nil, false
		}
	default:
		return nil, false
	}
	return OpImmWord{Alu: op, Rd: i.Rd, Rs1: i.Rs1, Imm: int32(Bits(inst, 24, 20))}, true
}

func decodeOp(inst uint32, _ XLEN) (Instruction, bool) {
	r := DecodeR(inst)
	op, ok := aluOpR(r.Funct3, r.Funct7)
	if !ok {
		return nil, false
	}
	return Op{Alu: op, Rd: r.Rd, Rs1: r.Rs1, Rs2: r.Rs2}, true
}

func decodeOpWord(inst uint32, xlen XLEN) (Instruction, bool) {
	if xlen == RV32 {
		return nil, false
	}
	r := DecodeR(inst)
	op, ok := aluOpR(r.Funct3, r.Funct7)
	if !ok {
		return nil, false
	}
	switch op {
	case AluAdd, AluSub, AluSll, AluSrl, AluSra:
	default:
		return nil, false
	}
	return OpWord{Alu: op, Rd: r.Rd, Rs1: r.Rs1, Rs2: r.Rs2}, true
}

// aluOpR resolves the operation of a register-register instruction.
func aluOpR(funct3, funct7 uint8) (AluOp, bool) {
	switch funct7 {
	case 0b0000000:
		return AluOp(funct3), true
	case 0b0100000:
		switch AluOp(funct3) {
		case AluAdd:
			return AluSub, true
		case AluSrl:
			return AluSra, true
		}
	}
	return 0, false
}

// decodeMiscMem ignores the reserved rd and rs1 fields of both fences and
// the reserved immediate of FENCE.I.
func decodeMiscMem(inst uint32, _ XLEN) (Instruction, bool) {
	switch FenceKind(funct3(inst)) {
	case FenceData:
		raw := Bits(inst, 31, 20)
		return Fence{
			Kind: FenceData,
			Mode: uint8(Bits(raw, 11, 8)),
			Pred: uint8(Bits(raw, 7, 4)),
			Succ: uint8(Bits(raw, 3, 0)),
		}, true
	case FenceInstr:
		return Fence{Kind: FenceInstr}, true
	}
	return nil, false
}

func decodeSystem(inst uint32, _ XLEN) (Instruction, bool) {
	i := DecodeI(inst)
	csr := CSR(immCSR.extract(inst))
	switch i.Funct3 {
	case 0b000:
		if i.Rd != 0 || i.Rs1 != 0 {
			return nil, false
		}
		op := SystemOp(Bits(inst, 31, 20))
		switch op {
		case SysECall, SysEBreak, SysSRet, SysMRet, SysWfi:
			return SystemCall{Kind: op}, true
		}
	case 0b001, 0b010, 0b011:
		return CsrOp{Kind: CsrOpKind(i.Funct3), Rd: i.Rd, Rs1: i.Rs1, CSR: csr}, true
	case 0b101, 0b110, 0b111:
		return CsrOpImmediate{Kind: CsrOpKind(i.Funct3 & 0b011), Rd: i.Rd, Zimm: uint8(i.Rs1), CSR: csr}, true
	}
	return nil, false
}
