package riscv

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   FlatInstruction
		xlen XLEN
		want FlatInstruction
	}{
		{
			"srai rv64 keeps six bits",
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluSra), Rd: 1, Rs1: 2, Imm: 0x400 | 33},
			RV64,
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluSra), Rd: 1, Rs1: 2, Imm: 33},
		},
		{
			"slli rv32 keeps five bits",
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluSll), Imm: 33},
			RV32,
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluSll), Imm: 1},
		},
		{
			"sraiw keeps five bits in rv64",
			FlatInstruction{Tag: TagOpImmWord, Ext: uint16(AluSra), Imm: 0x400 | 31},
			RV64,
			FlatInstruction{Tag: TagOpImmWord, Ext: uint16(AluSra), Imm: 31},
		},
		{
			"addi is untouched",
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluAdd), Imm: 0xffffffff},
			RV32,
			FlatInstruction{Tag: TagOpImm, Ext: uint16(AluAdd), Imm: 0xffffffff},
		},
		{
			"addiw is untouched",
			FlatInstruction{Tag: TagOpImmWord, Ext: uint16(AluAdd), Imm: 0x7ff},
			RV64,
			FlatInstruction{Tag: TagOpImmWord, Ext: uint16(AluAdd), Imm: 0x7ff},
		},
		{
			"op has no immediate",
			FlatInstruction{Tag: TagOp, Ext: uint16(AluAdd), Rd: 1, Imm: 0x123},
			RV64,
			FlatInstruction{Tag: TagOp, Ext: uint16(AluAdd), Rd: 1},
		},
		{
			"opw has no immediate",
			FlatInstruction{Tag: TagOpWord, Ext: uint16(AluSub), Imm: 0x400},
			RV64,
			FlatInstruction{Tag: TagOpWord, Ext: uint16(AluSub)},
		},
		{
			"mret",
			FlatInstruction{Tag: TagSystem, Ext: uint16(SysMRet), Imm: 0x302},
			RV32,
			FlatInstruction{Tag: TagSystem, Ext: uint16(SysMRet)},
		},
		{
			"ebreak is untouched",
			FlatInstruction{Tag: TagSystem, Ext: uint16(SysEBreak), Imm: 1},
			RV32,
			FlatInstruction{Tag: TagSystem, Ext: uint16(SysEBreak), Imm: 1},
		},
		{
			"csr index is untouched",
			FlatInstruction{Tag: TagCsr, Ext: uint16(CsrReadSet), Imm: 0x300},
			RV32,
			FlatInstruction{Tag: TagCsr, Ext: uint16(CsrReadSet), Imm: 0x300},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, Normalize(test.in, test.xlen))
		})
	}
}

func flatInstructionGen() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt16Range(0, uint16(tagCount)-1),
		gen.UInt16Range(0, 15),
		gen.UInt8Range(0, 31),
		gen.UInt8Range(0, 31),
		gen.UInt8Range(0, 31),
		gen.UInt32(),
	).Map(func(v []interface{}) FlatInstruction {
		return FlatInstruction{
			Tag: Tag(v[0].(uint16)),
			Ext: v[1].(uint16),
			Rd:  Reg(v[2].(uint8)),
			Rs1: Reg(v[3].(uint8)),
			Rs2: Reg(v[4].(uint8)),
			Imm: v[5].(uint32),
		}
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(nil)

	for _, xlen := range []XLEN{RV32, RV64} {
		xlen := xlen
		properties.Property("idempotent for "+xlen.String(), prop.ForAll(
			func(f FlatInstruction) bool {
				once := Normalize(f, xlen)
				return Normalize(once, xlen) == once
			},
			flatInstructionGen(),
		))
	}

	properties.Property("only the immediate changes", prop.ForAll(
		func(f FlatInstruction, rv32 bool) bool {
			xlen := RV64
			if rv32 {
				xlen = RV32
			}
			got := Normalize(f, xlen)
			got.Imm = f.Imm
			return got == f
		},
		flatInstructionGen(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
