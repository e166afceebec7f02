package riscv

import (
	"fmt"
)

// MajorOpcode is the 7-bit field in bits [6:0] of a full-length instruction
// word, selecting the major instruction class.
type MajorOpcode uint8

const (
	OpcodeLoad     MajorOpcode = 0b0000011
	OpcodeMiscMem  MajorOpcode = 0b0001111
	OpcodeOpImm    MajorOpcode = 0b0010011
	OpcodeAuipc    MajorOpcode = 0b0010111
	OpcodeOpImm32  MajorOpcode = 0b0011011
	OpcodeStore    MajorOpcode = 0b0100011
	OpcodeOp       MajorOpcode = 0b0110011
	OpcodeLui      MajorOpcode = 0b0110111
	OpcodeOp32     MajorOpcode = 0b0111011
	OpcodeBranch   MajorOpcode = 0b1100011
	OpcodeJalr     MajorOpcode = 0b1100111
	OpcodeJal      MajorOpcode = 0b1101111
	OpcodeSystem   MajorOpcode = 0b1110011
	opcodeFieldMax             = 0b1111111
)

type majorOpcodeInfo struct {
	Name   string
	Format Format
	decode decodeFunc
}

type decodeFunc func(inst uint32, xlen XLEN) (Instruction, bool)

// majorOpcodes is indexed by major opcode. Each entry gives the opcode's
// name, the layout its operands use and the handler Decode dispatches to.
// Opcodes this package does not decode are nil.
var majorOpcodes = [opcodeFieldMax + 1]*majorOpcodeInfo{
	OpcodeLoad:    {Name: "LOAD", Format: FormatI, decode: decodeLoad},
	OpcodeMiscMem: {Name: "MISC-MEM", Format: FormatI, decode: decodeMiscMem},
	OpcodeOpImm:   {Name: "OP-IMM", Format: FormatI, decode: decodeOpImm},
	OpcodeAuipc:   {Name: "AUIPC", Format: FormatU, decode: decodeAuipc},
	OpcodeOpImm32: {Name: "OP-IMM-32", Format: FormatI, decode: decodeOpImmWord},
	OpcodeStore:   {Name: "STORE", Format: FormatS, decode: decodeStore},
	OpcodeOp:      {Name: "OP", Format: FormatR, decode: decodeOp},
	OpcodeLui:     {Name: "LUI", Format: FormatU, decode: decodeLui},
	OpcodeOp32:    {Name: "OP-32", Format: FormatR, decode: decodeOpWord},
	OpcodeBranch:  {Name: "BRANCH", Format: FormatB, decode: decodeBranch},
	OpcodeJalr:    {Name: "JALR", Format: FormatI, decode: decodeJalr},
	OpcodeJal:     {Name: "JAL", Format: FormatJ, decode: decodeJal},
	OpcodeSystem:  {Name: "SYSTEM", Format: FormatI, decode: decodeSystem},
}

func lookupOpcode(op MajorOpcode) *majorOpcodeInfo {
	if op > opcodeFieldMax {
		return nil
	}
	return majorOpcodes[op]
}

// MajorOpcodes returns the major opcodes understood by Decode, in
// ascending numeric order.
func MajorOpcodes() []MajorOpcode {
	var ret []MajorOpcode
	for op, info := range majorOpcodes {
		if info != nil {
			ret = append(ret, MajorOpcode(op))
		}
	}
	return ret
}

// OpcodeOf returns the major opcode field of inst.
func OpcodeOf(inst uint32) MajorOpcode {
	return MajorOpcode(Bits(inst, 6, 0))
}

// Known reports whether op is one of the major opcodes Decode understands.
func (op MajorOpcode) Known() bool {
	return lookupOpcode(op) != nil
}

// Format returns the operand layout used by op. Unknown opcodes report
// FormatInvalid.
func (op MajorOpcode) Format() Format {
	if info := lookupOpcode(op); info != nil {
		return info.Format
	}
	return FormatInvalid
}

func (op MajorOpcode) String() string {
	if info := lookupOpcode(op); info != nil {
		return info.Name
	}
	return fmt.Sprintf("opcode(%s)", bits8(op))
}
