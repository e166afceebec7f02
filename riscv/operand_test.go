package riscv

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecodeSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		layout string
		steps  []decodeStep
		width  uint
	}{
		{
			layout: "11:7",
			steps:  []decodeStep{{Mask: 0xf80, RightShift: 7}},
			width:  5,
		},
		{
			layout: "31:20[11:0]",
			steps:  []decodeStep{{Mask: 0xfff00000, RightShift: 20}},
			width:  12,
		},
		{
			layout: "31:12[31:12]",
			steps:  []decodeStep{{Mask: 0xfffff000, RightShift: 0}},
			width:  32,
		},
		{
			layout: "31:25[12|10:5],11:7[4:1|11]",
			steps: []decodeStep{
				{Mask: 0x80000000, RightShift: 19},
				{Mask: 0x7e000000, RightShift: 20},
				{Mask: 0x00000f00, RightShift: 7},
				{Mask: 0x00000080, RightShift: -4},
			},
			width: 13,
		},
		{
			layout: "31:12[20|10:1|11|19:12]",
			steps: []decodeStep{
				{Mask: 0x80000000, RightShift: 11},
				{Mask: 0x7fe00000, RightShift: 20},
				{Mask: 0x00100000, RightShift: 9},
				{Mask: 0x000ff000, RightShift: 0},
			},
			width: 21,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.layout, func(t *testing.T) {
			t.Parallel()

			steps, width, err := parseDecodeSteps(test.layout)
			require.NoError(t, err)
			assert.Equal(t, test.steps, steps)
			assert.Equal(t, test.width, width)
		})
	}
}

func TestParseDecodeStepsErrors(t *testing.T) {
	t.Parallel()

	for _, layout := range []string{
		"",
		"x:7",
		"7:11",
		"40:32",
		"31:25[11:5",
		"31:25[11:6]",
		"31:25[11:4]",
		"31:25[a]",
	} {
		_, _, err := parseDecodeSteps(layout)
		assert.Error(t, err, "layout %q", layout)
	}
}

func TestImmediateRoundTrip(t *testing.T) {
	t.Parallel()

	properties := gopter.NewProperties(nil)

	properties.Property("I immediate", prop.ForAll(
		func(word uint32, imm int32) bool {
			return int32(immI.extract(encI(OpcodeOpImm, word, word>>5, word>>10, imm))) == imm
		},
		gen.UInt32(),
		gen.Int32Range(-2048, 2047),
	))

	properties.Property("S immediate", prop.ForAll(
		func(word uint32, imm int32) bool {
			return int32(immS.extract(encS(OpcodeStore, word, word>>5, word>>10, imm))) == imm
		},
		gen.UInt32(),
		gen.Int32Range(-2048, 2047),
	))

	properties.Property("B immediate", prop.ForAll(
		func(word uint32, imm int32) bool {
			imm &^= 1
			return int32(immB.extract(encB(OpcodeBranch, word, word>>5, word>>10, imm))) == imm
		},
		gen.UInt32(),
		gen.Int32Range(-4096, 4095),
	))

	properties.Property("J immediate", prop.ForAll(
		func(rd uint32, imm int32) bool {
			imm &^= 1
			return int32(immJ.extract(encJ(OpcodeJal, rd, imm))) == imm
		},
		gen.UInt32(),
		gen.Int32Range(-1<<20, 1<<20-1),
	))

	properties.Property("U immediate", prop.ForAll(
		func(rd uint32, imm uint32) bool {
			return immU.extract(encU(OpcodeLui, rd, imm)) == imm&0xfffff000
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.Property("CSR index is zero-extended", prop.ForAll(
		func(word uint32) bool {
			return immCSR.extract(word) == word>>20
		},
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
