package riscv

// Flatten projects a structured instruction onto the record DecodeFlat
// would produce for the same word. For any word w that Decode accepts,
// Flatten of its result equals the result of DecodeFlat on w's bytes.
func Flatten(inst Instruction) FlatInstruction {
	return inst.flatten()
}

// shiftFunctBit is bit 10 of an I-format immediate, which separates the
// arithmetic right shifts from the logical ones.
const shiftFunctBit = 1 << 10

func (i Lui) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagLui, Rd: i.Rd, Imm: i.Imm}
}

func (i Auipc) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagAuipc, Rd: i.Rd, Imm: i.Imm}
}

func (i Jal) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagJal, Rd: i.Rd, Imm: uint32(i.Offset)}
}

func (i Jalr) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagJalr, Rd: i.Rd, Rs1: i.Rs1, Imm: uint32(i.Offset)}
}

func (i Branch) flatten() FlatInstruction {
	return FlatInstruction{
		Tag: TagBranch,
		Ext: uint16(i.Cond),
		Rs1: i.Rs1,
		Rs2: i.Rs2,
		Imm: uint32(i.Offset),
	}
}

func (i Load) flatten() FlatInstruction {
	return FlatInstruction{
		Tag: TagLoad,
		Ext: uint16(i.Width),
		Rd:  i.Rd,
		Rs1: i.Rs1,
		Imm: uint32(i.Offset),
	}
}

func (i Store) flatten() FlatInstruction {
	return FlatInstruction{
		Tag: TagStore,
		Ext: uint16(i.Width),
		Rs1: i.Rs1,
		Rs2: i.Rs2,
		Imm: uint32(i.Offset),
	}
}

// shiftImmediate rebuilds the raw I-format immediate of a shift from its
// shift amount.
func shiftImmediate(op AluOp, imm int32) uint32 {
	ret := uint32(imm)
	if op == AluSra {
		ret |= shiftFunctBit
	}
	return ret
}

func (i OpImm) flatten() FlatInstruction {
	imm := uint32(i.Imm)
	if i.Alu.IsShift() {
		imm = shiftImmediate(i.Alu, i.Imm)
	}
	return FlatInstruction{Tag: TagOpImm, Ext: uint16(i.Alu), Rd: i.Rd, Rs1: i.Rs1, Imm: imm}
}

func (i OpImmWord) flatten() FlatInstruction {
	imm := uint32(i.Imm)
	if i.Alu.IsShift() {
		imm = shiftImmediate(i.Alu, i.Imm)
	}
	return FlatInstruction{Tag: TagOpImmWord, Ext: uint16(i.Alu), Rd: i.Rd, Rs1: i.Rs1, Imm: imm}
}

func (i Op) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagOp, Ext: uint16(i.Alu), Rd: i.Rd, Rs1: i.Rs1, Rs2: i.Rs2}
}

func (i OpWord) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagOpWord, Ext: uint16(i.Alu), Rd: i.Rd, Rs1: i.Rs1, Rs2: i.Rs2}
}

func (i Fence) flatten() FlatInstruction {
	ret := FlatInstruction{Tag: TagFence, Ext: uint16(i.Kind)}
	if i.Kind == FenceData {
		raw := uint32(i.Mode&0xf)<<8 | uint32(i.Pred&0xf)<<4 | uint32(i.Succ&0xf)
		ret.Imm = SignExtend(raw, 12, 32)
	}
	return ret
}

func (i SystemCall) flatten() FlatInstruction {
	return FlatInstruction{Tag: TagSystem, Ext: uint16(i.Kind), Imm: uint32(i.Kind)}
}

func (i CsrOp) flatten() FlatInstruction {
	return FlatInstruction{
		Tag: TagCsr,
		Ext: uint16(i.Kind),
		Rd:  i.Rd,
		Rs1: i.Rs1,
		Imm: uint32(i.CSR),
	}
}

func (i CsrOpImmediate) flatten() FlatInstruction {
	return FlatInstruction{
		Tag: TagCsrImm,
		Ext: uint16(i.Kind),
		Rd:  i.Rd,
		Rs1: Reg(i.Zimm),
		Imm: uint32(i.CSR),
	}
}
