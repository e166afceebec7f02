package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatExtractors(t *testing.T) {
	t.Parallel()

	t.Run("R", func(t *testing.T) {
		t.Parallel()

		// sub x1, x2, x3
		assert.Equal(t,
			RType{Rd: 1, Rs1: 2, Rs2: 3, Funct3: 0, Funct7: 0b0100000},
			DecodeR(0x403100b3),
		)
	})

	t.Run("I", func(t *testing.T) {
		t.Parallel()

		// addi x5, x6, -1
		assert.Equal(t,
			IType{Rd: 5, Rs1: 6, Funct3: 0, Imm: -1},
			DecodeI(0xfff30293),
		)
		// lw x5, 2047(x6)
		assert.Equal(t,
			IType{Rd: 5, Rs1: 6, Funct3: 0b010, Imm: 2047},
			DecodeI(0x7ff32283),
		)
	})

	t.Run("S", func(t *testing.T) {
		t.Parallel()

		// sw x2, 8(x1)
		assert.Equal(t,
			SType{Rs1: 1, Rs2: 2, Funct3: 0b010, Imm: 8},
			DecodeS(0x0020a423),
		)
		assert.Equal(t,
			SType{Rs1: 1, Rs2: 2, Funct3: 0b010, Imm: -2048},
			DecodeS(encS(OpcodeStore, 0b010, 1, 2, -2048)),
		)
	})

	t.Run("B", func(t *testing.T) {
		t.Parallel()

		// beq x1, x2, 8
		assert.Equal(t,
			BType{Rs1: 1, Rs2: 2, Funct3: 0, Imm: 8},
			DecodeB(0x00208463),
		)
		// bne x0, x0, -4096
		assert.Equal(t,
			BType{Funct3: 0b001, Imm: -4096},
			DecodeB(0x80001063),
		)
	})

	t.Run("U", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			UType{Rd: 0, Imm: 0xfffff000},
			DecodeU(0xfffff037),
		)
	})

	t.Run("J", func(t *testing.T) {
		t.Parallel()

		// jal x1, 2048
		assert.Equal(t,
			JType{Rd: 1, Imm: 2048},
			DecodeJ(0x001000ef),
		)
		// jal x0, -2
		assert.Equal(t,
			JType{Rd: 0, Imm: -2},
			DecodeJ(0xfffff06f),
		)
	})
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "B", FormatB.String())
	assert.Equal(t, "CSR", FormatCSR.String())
	assert.Equal(t, "fence", FormatFence.String())
	assert.Equal(t, "none", FormatNone.String())
	assert.Equal(t, "Format(99)", Format(99).String())
}

func TestNewReg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x31", NewReg(31).String())
	assert.Panics(t, func() { NewReg(32) })
}
