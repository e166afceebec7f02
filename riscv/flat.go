package riscv

import (
	"encoding/binary"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Tag is the coarse class of a FlatInstruction.
type Tag uint16

const (
	TagInvalid Tag = iota
	TagLui
	TagAuipc
	TagJal
	TagJalr
	TagBranch
	TagLoad
	TagStore
	TagOpImm
	TagOpImmWord
	TagOp
	TagOpWord
	TagFence
	TagSystem
	TagCsr
	TagCsrImm
	tagCount
)

var tagNames = [tagCount]string{
	TagInvalid:   "invalid",
	TagLui:       "lui",
	TagAuipc:     "auipc",
	TagJal:       "jal",
	TagJalr:      "jalr",
	TagBranch:    "br",
	TagLoad:      "load",
	TagStore:     "store",
	TagOpImm:     "immop",
	TagOpImmWord: "immopw",
	TagOp:        "op",
	TagOpWord:    "opw",
	TagFence:     "fence",
	TagSystem:    "system",
	TagCsr:       "csr",
	TagCsrImm:    "csri",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint16(t))
}

// FlatInstruction is the uniform decoded form: a tag, a numeric extended
// opcode within that tag, three register fields and one immediate. Fields
// an instruction does not use are zero.
//
// Ext holds the value of the structured enum for the tag: BranchCond,
// LoadWidth, StoreWidth, AluOp, FenceKind, SystemOp or CsrOpKind.
type FlatInstruction struct {
	Tag          Tag
	Ext          uint16
	Rd, Rs1, Rs2 Reg
	Imm          uint32
}

type flatEntry struct {
	pattern string
	format  Format
	tag     Tag
	ext     uint16
}

// flatEntries is tried in order and the first match wins, so a pattern must
// come before any more general pattern that would also match it. The
// current entries are pairwise disjoint.
var flatEntries = []flatEntry{
	{"????????????????????_?????_0110111", FormatU, TagLui, 0},
	{"????????????????????_?????_0010111", FormatU, TagAuipc, 0},
	{"????????????????????_?????_1101111", FormatJ, TagJal, 0},
	{"????????????_?????_000_?????_1100111", FormatI, TagJalr, 0},

	{"???????_?????_?????_000_?????_1100011", FormatB, TagBranch, uint16(BranchEq)},
	{"???????_?????_?????_001_?????_1100011", FormatB, TagBranch, uint16(BranchNe)},
	{"???????_?????_?????_100_?????_1100011", FormatB, TagBranch, uint16(BranchLt)},
	{"???????_?????_?????_101_?????_1100011", FormatB, TagBranch, uint16(BranchGe)},
	{"???????_?????_?????_110_?????_1100011", FormatB, TagBranch, uint16(BranchLtu)},
	{"???????_?????_?????_111_?????_1100011", FormatB, TagBranch, uint16(BranchGeu)},

	{"????????????_?????_000_?????_0000011", FormatI, TagLoad, uint16(LoadByte)},
	{"????????????_?????_001_?????_0000011", FormatI, TagLoad, uint16(LoadHalf)},
	{"????????????_?????_010_?????_0000011", FormatI, TagLoad, uint16(LoadWord)},
	{"????????????_?????_011_?????_0000011", FormatI, TagLoad, uint16(LoadDouble)},
	{"????????????_?????_100_?????_0000011", FormatI, TagLoad, uint16(LoadByteU)},
	{"????????????_?????_101_?????_0000011", FormatI, TagLoad, uint16(LoadHalfU)},
	{"????????????_?????_110_?????_0000011", FormatI, TagLoad, uint16(LoadWordU)},

	{"???????_?????_?????_000_?????_0100011", FormatS, TagStore, uint16(StoreByte)},
	{"???????_?????_?????_001_?????_0100011", FormatS, TagStore, uint16(StoreHalf)},
	{"???????_?????_?????_010_?????_0100011", FormatS, TagStore, uint16(StoreWord)},
	{"???????_?????_?????_011_?????_0100011", FormatS, TagStore, uint16(StoreDouble)},

	{"????????????_?????_000_?????_0010011", FormatI, TagOpImm, uint16(AluAdd)},
	{"????????????_?????_010_?????_0010011", FormatI, TagOpImm, uint16(AluSlt)},
	{"????????????_?????_011_?????_0010011", FormatI, TagOpImm, uint16(AluSltu)},
	{"????????????_?????_100_?????_0010011", FormatI, TagOpImm, uint16(AluXor)},
	{"????????????_?????_110_?????_0010011", FormatI, TagOpImm, uint16(AluOr)},
	{"????????????_?????_111_?????_0010011", FormatI, TagOpImm, uint16(AluAnd)},
	{"000000_??????_?????_001_?????_0010011", FormatI, TagOpImm, uint16(AluSll)},
	{"000000_??????_?????_101_?????_0010011", FormatI, TagOpImm, uint16(AluSrl)},
	{"010000_??????_?????_101_?????_0010011", FormatI, TagOpImm, uint16(AluSra)},

	{"????????????_?????_000_?????_0011011", FormatI, TagOpImmWord, uint16(AluAdd)},
	{"0000000_?????_?????_001_?????_0011011", FormatI, TagOpImmWord, uint16(AluSll)},
	{"0000000_?????_?????_101_?????_0011011", FormatI, TagOpImmWord, uint16(AluSrl)},
	{"0100000_?????_?????_101_?????_0011011", FormatI, TagOpImmWord, uint16(AluSra)},

	{"0000000_?????_?????_000_?????_0110011", FormatR, TagOp, uint16(AluAdd)},
	{"0100000_?????_?????_000_?????_0110011", FormatR, TagOp, uint16(AluSub)},
	{"0000000_?????_?????_001_?????_0110011", FormatR, TagOp, uint16(AluSll)},
	{"0000000_?????_?????_010_?????_0110011", FormatR, TagOp, uint16(AluSlt)},
	{"0000000_?????_?????_011_?????_0110011", FormatR, TagOp, uint16(AluSltu)},
	{"0000000_?????_?????_100_?????_0110011", FormatR, TagOp, uint16(AluXor)},
	{"0000000_?????_?????_101_?????_0110011", FormatR, TagOp, uint16(AluSrl)},
	{"0100000_?????_?????_101_?????_0110011", FormatR, TagOp, uint16(AluSra)},
	{"0000000_?????_?????_110_?????_0110011", FormatR, TagOp, uint16(AluOr)},
	{"0000000_?????_?????_111_?????_0110011", FormatR, TagOp, uint16(AluAnd)},

	{"0000000_?????_?????_000_?????_0111011", FormatR, TagOpWord, uint16(AluAdd)},
	{"0100000_?????_?????_000_?????_0111011", FormatR, TagOpWord, uint16(AluSub)},
	{"0000000_?????_?????_001_?????_0111011", FormatR, TagOpWord, uint16(AluSll)},
	{"0000000_?????_?????_101_?????_0111011", FormatR, TagOpWord, uint16(AluSrl)},
	{"0100000_?????_?????_101_?????_0111011", FormatR, TagOpWord, uint16(AluSra)},

	{"????????????_?????_000_?????_0001111", FormatFence, TagFence, uint16(FenceData)},
	{"????????????_?????_001_?????_0001111", FormatNone, TagFence, uint16(FenceInstr)},

	{"000000000000_00000_000_00000_1110011", FormatI, TagSystem, uint16(SysECall)},
	{"000000000001_00000_000_00000_1110011", FormatI, TagSystem, uint16(SysEBreak)},
	{"000100000010_00000_000_00000_1110011", FormatI, TagSystem, uint16(SysSRet)},
	{"000100000101_00000_000_00000_1110011", FormatI, TagSystem, uint16(SysWfi)},
	{"001100000010_00000_000_00000_1110011", FormatI, TagSystem, uint16(SysMRet)},

	{"????????????_?????_001_?????_1110011", FormatCSR, TagCsr, uint16(CsrReadWrite)},
	{"????????????_?????_010_?????_1110011", FormatCSR, TagCsr, uint16(CsrReadSet)},
	{"????????????_?????_011_?????_1110011", FormatCSR, TagCsr, uint16(CsrReadClear)},
	{"????????????_?????_101_?????_1110011", FormatCSR, TagCsrImm, uint16(CsrReadWrite)},
	{"????????????_?????_110_?????_1110011", FormatCSR, TagCsrImm, uint16(CsrReadSet)},
	{"????????????_?????_111_?????_1110011", FormatCSR, TagCsrImm, uint16(CsrReadClear)},
}

type compiledEntry struct {
	flatEntry
	pattern Pattern
}

type flatTable struct {
	entries []compiledEntry

	// opcodes has a bit set for every major opcode some entry pins down.
	// It is only consulted when every entry pins the whole opcode field;
	// otherwise anchored is false.
	opcodes  *bitset.BitSet
	anchored bool
}

func compileFlatTable(entries []flatEntry) *flatTable {
	t := &flatTable{
		entries:  make([]compiledEntry, len(entries)),
		opcodes:  bitset.New(opcodeFieldMax + 1),
		anchored: true,
	}
	for i, e := range entries {
		p := CompilePattern(e.pattern)
		mask, value, ok := p.word()
		if !ok {
			panic(newMalformedPatternError(e.pattern, -1, fmt.Sprintf("flat table supports only 32-bit patterns, got %d bits", p.Len())))
		}
		if mask&opcodeFieldMax == opcodeFieldMax {
			t.opcodes.Set(uint(value & opcodeFieldMax))
		} else {
			t.anchored = false
		}
		t.entries[i] = compiledEntry{flatEntry: e, pattern: p}
	}
	return t
}

var defaultFlatTable = compileFlatTable(flatEntries)

// DecodeFlat matches the start of src against the flat pattern table and
// returns the record built by the first matching entry, together with the
// number of bits consumed (always 32). It reports false if no entry
// matches or src is too short.
func DecodeFlat(src []byte) (FlatInstruction, int, bool) {
	return defaultFlatTable.decode(src)
}

func (t *flatTable) decode(src []byte) (FlatInstruction, int, bool) {
	if t.anchored && len(src) > 0 && !t.opcodes.Test(uint(src[0]&opcodeFieldMax)) {
		return FlatInstruction{}, 0, false
	}
	for i := range t.entries {
		e := &t.entries[i]
		ok, bitLen := e.pattern.Match(src)
		if !ok {
			continue
		}
		inst := binary.LittleEndian.Uint32(src)
		ret := e.format.flatten(inst)
		ret.Tag = e.tag
		ret.Ext = e.ext
		return ret, bitLen, true
	}
	return FlatInstruction{}, 0, false
}

// FlatOpcodes returns the major opcodes that have at least one entry in the
// flat pattern table, in ascending order.
func FlatOpcodes() []MajorOpcode {
	var ret []MajorOpcode
	for i, ok := defaultFlatTable.opcodes.NextSet(0); ok; i, ok = defaultFlatTable.opcodes.NextSet(i + 1) {
		ret = append(ret, MajorOpcode(i))
	}
	return ret
}
