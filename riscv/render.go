package riscv

import (
	"fmt"
	"strconv"
)

// CSRNamer maps CSR indices to assembler names. *csr.Table implements it.
type CSRNamer interface {
	CSRName(index uint16) (string, bool)
}

// Render formats inst in assembler syntax, naming CSRs through names when
// it knows them. names may be nil, in which case CSRs are numeric.
func Render(inst Instruction, names CSRNamer) string {
	return string(inst.appendText(nil, names))
}

var branchCondNames = map[BranchCond]string{
	BranchEq:  "eq",
	BranchNe:  "ne",
	BranchLt:  "lt",
	BranchGe:  "ge",
	BranchLtu: "ltu",
	BranchGeu: "geu",
}

func (c BranchCond) String() string {
	if name, ok := branchCondNames[c]; ok {
		return name
	}
	return fmt.Sprintf("BranchCond(%d)", uint8(c))
}

var loadWidthNames = map[LoadWidth]string{
	LoadByte:   "b",
	LoadHalf:   "h",
	LoadWord:   "w",
	LoadDouble: "d",
	LoadByteU:  "bu",
	LoadHalfU:  "hu",
	LoadWordU:  "wu",
}

func (w LoadWidth) String() string {
	if name, ok := loadWidthNames[w]; ok {
		return name
	}
	return fmt.Sprintf("LoadWidth(%d)", uint8(w))
}

var storeWidthNames = map[StoreWidth]string{
	StoreByte:   "b",
	StoreHalf:   "h",
	StoreWord:   "w",
	StoreDouble: "d",
}

func (w StoreWidth) String() string {
	if name, ok := storeWidthNames[w]; ok {
		return name
	}
	return fmt.Sprintf("StoreWidth(%d)", uint8(w))
}

var aluOpNames = map[AluOp]string{
	AluAdd:  "add",
	AluSll:  "sll",
	AluSlt:  "slt",
	AluSltu: "sltu",
	AluXor:  "xor",
	AluSrl:  "srl",
	AluOr:   "or",
	AluAnd:  "and",
	AluSub:  "sub",
	AluSra:  "sra",
}

func (op AluOp) String() string {
	if name, ok := aluOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("AluOp(%d)", uint8(op))
}

func (k FenceKind) String() string {
	switch k {
	case FenceData:
		return "fence"
	case FenceInstr:
		return "fence.i"
	default:
		return fmt.Sprintf("FenceKind(%d)", uint8(k))
	}
}

var systemOpNames = map[SystemOp]string{
	SysECall:  "ecall",
	SysEBreak: "ebreak",
	SysSRet:   "sret",
	SysWfi:    "wfi",
	SysMRet:   "mret",
}

func (op SystemOp) String() string {
	if name, ok := systemOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("SystemOp(%#x)", uint16(op))
}

var csrOpKindNames = map[CsrOpKind]string{
	CsrReadWrite: "rw",
	CsrReadSet:   "rs",
	CsrReadClear: "rc",
}

func (k CsrOpKind) String() string {
	if name, ok := csrOpKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CsrOpKind(%d)", uint8(k))
}

func appendReg(b []byte, r Reg) []byte {
	b = append(b, 'x')
	return strconv.AppendUint(b, uint64(r), 10)
}

func appendSep(b []byte) []byte {
	return append(b, ", "...)
}

// appendMem appends the base+offset operand of a load, store or jalr.
func appendMem(b []byte, offset int32, base Reg) []byte {
	b = strconv.AppendInt(b, int64(offset), 10)
	b = append(b, '(')
	b = appendReg(b, base)
	return append(b, ')')
}

func appendCSR(b []byte, c CSR, names CSRNamer) []byte {
	if names != nil {
		if name, ok := names.CSRName(uint16(c)); ok {
			return append(b, name...)
		}
	}
	return append(b, c.String()...)
}

func (i Lui) Mnemonic() string   { return "lui" }
func (i Auipc) Mnemonic() string { return "auipc" }
func (i Jal) Mnemonic() string   { return "jal" }
func (i Jalr) Mnemonic() string  { return "jalr" }

func (i Branch) Mnemonic() string { return "b" + i.Cond.String() }
func (i Load) Mnemonic() string   { return "l" + i.Width.String() }
func (i Store) Mnemonic() string  { return "s" + i.Width.String() }

func (i OpImm) Mnemonic() string {
	if i.Alu == AluSltu {
		return "sltiu"
	}
	return i.Alu.String() + "i"
}

func (i OpImmWord) Mnemonic() string { return i.Alu.String() + "iw" }
func (i Op) Mnemonic() string        { return i.Alu.String() }
func (i OpWord) Mnemonic() string    { return i.Alu.String() + "w" }

func (i Fence) Mnemonic() string {
	if i.isTSO() {
		return "fence.tso"
	}
	return i.Kind.String()
}

func (i SystemCall) Mnemonic() string     { return i.Kind.String() }
func (i CsrOp) Mnemonic() string          { return "csr" + i.Kind.String() }
func (i CsrOpImmediate) Mnemonic() string { return "csr" + i.Kind.String() + "i" }

func (i Lui) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, "lui "...)
	b = appendReg(b, i.Rd)
	return fmt.Appendf(appendSep(b), "%#x", i.Imm>>12)
}

func (i Auipc) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, "auipc "...)
	b = appendReg(b, i.Rd)
	return fmt.Appendf(appendSep(b), "%#x", i.Imm>>12)
}

func (i Jal) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, "jal "...)
	b = appendReg(b, i.Rd)
	return strconv.AppendInt(appendSep(b), int64(i.Offset), 10)
}

func (i Jalr) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, "jalr "...)
	b = appendReg(b, i.Rd)
	return appendMem(appendSep(b), i.Offset, i.Rs1)
}

func (i Branch) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	b = append(b, ' ')
	b = appendReg(b, i.Rs1)
	b = appendReg(appendSep(b), i.Rs2)
	return strconv.AppendInt(appendSep(b), int64(i.Offset), 10)
}

func (i Load) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	b = append(b, ' ')
	b = appendReg(b, i.Rd)
	return appendMem(appendSep(b), i.Offset, i.Rs1)
}

func (i Store) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	b = append(b, ' ')
	b = appendReg(b, i.Rs2)
	return appendMem(appendSep(b), i.Offset, i.Rs1)
}

func appendRegImm(b []byte, mnemonic string, rd, rs1 Reg, imm int32) []byte {
	b = append(b, mnemonic...)
	b = append(b, ' ')
	b = appendReg(b, rd)
	b = appendReg(appendSep(b), rs1)
	return strconv.AppendInt(appendSep(b), int64(imm), 10)
}

func (i OpImm) appendText(b []byte, _ CSRNamer) []byte {
	return appendRegImm(b, i.Mnemonic(), i.Rd, i.Rs1, i.Imm)
}

func (i OpImmWord) appendText(b []byte, _ CSRNamer) []byte {
	return appendRegImm(b, i.Mnemonic(), i.Rd, i.Rs1, i.Imm)
}

func appendRegReg(b []byte, mnemonic string, rd, rs1, rs2 Reg) []byte {
	b = append(b, mnemonic...)
	b = append(b, ' ')
	b = appendReg(b, rd)
	b = appendReg(appendSep(b), rs1)
	return appendReg(appendSep(b), rs2)
}

func (i Op) appendText(b []byte, _ CSRNamer) []byte {
	return appendRegReg(b, i.Mnemonic(), i.Rd, i.Rs1, i.Rs2)
}

func (i OpWord) appendText(b []byte, _ CSRNamer) []byte {
	return appendRegReg(b, i.Mnemonic(), i.Rd, i.Rs1, i.Rs2)
}

const fenceSetRW = FenceSetR | FenceSetW
const fenceSetAll = FenceSetI | FenceSetO | FenceSetR | FenceSetW

func (i Fence) isTSO() bool {
	return i.Kind == FenceData && i.Mode == FenceModeTSO && i.Pred == fenceSetRW && i.Succ == fenceSetRW
}

// appendFenceSet spells a predecessor or successor set the way assemblers
// do, e.g. "rw" or "iorw".
func appendFenceSet(b []byte, set uint8) []byte {
	if set&fenceSetAll == 0 {
		return append(b, '0')
	}
	for _, s := range [...]struct {
		bit  uint8
		name byte
	}{
		{FenceSetI, 'i'},
		{FenceSetO, 'o'},
		{FenceSetR, 'r'},
		{FenceSetW, 'w'},
	} {
		if set&s.bit != 0 {
			b = append(b, s.name)
		}
	}
	return b
}

func (i Fence) appendText(b []byte, _ CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	if i.Kind != FenceData || i.isTSO() {
		return b
	}
	if i.Mode == 0 && i.Pred == fenceSetAll && i.Succ == fenceSetAll {
		return b
	}
	b = append(b, ' ')
	b = appendFenceSet(b, i.Pred)
	b = appendFenceSet(appendSep(b), i.Succ)
	if i.Mode != 0 {
		// Only TSO has assembler syntax; any other mode is shown raw.
		b = fmt.Appendf(appendSep(b), "fm=%#x", i.Mode)
	}
	return b
}

func (i SystemCall) appendText(b []byte, _ CSRNamer) []byte {
	return append(b, i.Mnemonic()...)
}

func (i CsrOp) appendText(b []byte, names CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	b = append(b, ' ')
	b = appendReg(b, i.Rd)
	b = appendCSR(appendSep(b), i.CSR, names)
	return appendReg(appendSep(b), i.Rs1)
}

func (i CsrOpImmediate) appendText(b []byte, names CSRNamer) []byte {
	b = append(b, i.Mnemonic()...)
	b = append(b, ' ')
	b = appendReg(b, i.Rd)
	b = appendCSR(appendSep(b), i.CSR, names)
	return strconv.AppendUint(appendSep(b), uint64(i.Zimm), 10)
}

func (i Lui) String() string            { return Render(i, nil) }
func (i Auipc) String() string          { return Render(i, nil) }
func (i Jal) String() string            { return Render(i, nil) }
func (i Jalr) String() string           { return Render(i, nil) }
func (i Branch) String() string         { return Render(i, nil) }
func (i Load) String() string           { return Render(i, nil) }
func (i Store) String() string          { return Render(i, nil) }
func (i OpImm) String() string          { return Render(i, nil) }
func (i OpImmWord) String() string      { return Render(i, nil) }
func (i Op) String() string             { return Render(i, nil) }
func (i OpWord) String() string         { return Render(i, nil) }
func (i Fence) String() string          { return Render(i, nil) }
func (i SystemCall) String() string     { return Render(i, nil) }
func (i CsrOp) String() string          { return Render(i, nil) }
func (i CsrOpImmediate) String() string { return Render(i, nil) }

// SubName returns the name of f's extended opcode within its tag, such as
// "eq" for a branch, or "" for tags that have only one operation.
func (f FlatInstruction) SubName() string {
	switch f.Tag {
	case TagBranch:
		return BranchCond(f.Ext).String()
	case TagLoad:
		return LoadWidth(f.Ext).String()
	case TagStore:
		return StoreWidth(f.Ext).String()
	case TagOpImm, TagOpImmWord, TagOp, TagOpWord:
		return AluOp(f.Ext).String()
	case TagFence:
		if FenceKind(f.Ext) == FenceInstr {
			return "i"
		}
		return ""
	case TagSystem:
		return SystemOp(f.Ext).String()
	case TagCsr, TagCsrImm:
		return CsrOpKind(f.Ext).String()
	default:
		return ""
	}
}

// Name returns the tag and sub-operation, such as "br.eq" or "lui".
func (f FlatInstruction) Name() string {
	if sub := f.SubName(); sub != "" {
		return f.Tag.String() + "." + sub
	}
	return f.Tag.String()
}

// Mnemonic returns the assembler mnemonic of the instruction f records.
func (f FlatInstruction) Mnemonic() string {
	switch f.Tag {
	case TagBranch:
		return Branch{Cond: BranchCond(f.Ext)}.Mnemonic()
	case TagLoad:
		return Load{Width: LoadWidth(f.Ext)}.Mnemonic()
	case TagStore:
		return Store{Width: StoreWidth(f.Ext)}.Mnemonic()
	case TagOpImm:
		return OpImm{Alu: AluOp(f.Ext)}.Mnemonic()
	case TagOpImmWord:
		return OpImmWord{Alu: AluOp(f.Ext)}.Mnemonic()
	case TagOp:
		return Op{Alu: AluOp(f.Ext)}.Mnemonic()
	case TagOpWord:
		return OpWord{Alu: AluOp(f.Ext)}.Mnemonic()
	case TagFence:
		fence := Fence{Kind: FenceKind(f.Ext)}
		if fence.Kind == FenceData {
			fence.Mode = uint8(Bits(f.Imm, 11, 8))
			fence.Pred = uint8(Bits(f.Imm, 7, 4))
			fence.Succ = uint8(Bits(f.Imm, 3, 0))
		}
		return fence.Mnemonic()
	case TagSystem:
		return SystemOp(f.Ext).String()
	case TagCsr:
		return CsrOp{Kind: CsrOpKind(f.Ext)}.Mnemonic()
	case TagCsrImm:
		return CsrOpImmediate{Kind: CsrOpKind(f.Ext)}.Mnemonic()
	default:
		return f.Tag.String()
	}
}

func (f FlatInstruction) String() string {
	return fmt.Sprintf("%s rd=%s rs1=%s rs2=%s imm=%#x", f.Name(), f.Rd, f.Rs1, f.Rs2, f.Imm)
}
