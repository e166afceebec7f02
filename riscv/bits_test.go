package riscv

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestBit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(1), Bit(0b100, 2))
	assert.Equal(t, uint32(0), Bit(0b100, 1))
	assert.Equal(t, uint32(1), Bit(0x80000000, 31))
}

func TestBits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0b0110111), Bits(0xfffff0b7, 6, 0))
	assert.Equal(t, uint32(0xfffff), Bits(0xfffff0b7, 31, 12))
	assert.Equal(t, uint32(0xffffffff), Bits(0xffffffff, 31, 0))

	assert.Panics(t, func() { Bits(0, 3, 3) })
	assert.Panics(t, func() { Bits(0, 2, 5) })
	assert.Panics(t, func() { Bits(0, 32, 0) })
}

func TestSignExtend(t *testing.T) {
	t.Parallel()

	for _, width := range []uint{12, 13, 21} {
		width := width
		signBit := uint32(1) << (width - 1)
		high := ^uint32(0) << width

		properties := gopter.NewProperties(nil)

		properties.Property("extends the sign bit of a raw value", prop.ForAll(
			func(v uint32) bool {
				got := SignExtend(v, width, 32)
				if v&signBit == 0 {
					return got == v
				}
				return got == v|high
			},
			gen.UInt32Range(0, signBit<<1-1),
		))

		properties.Property("agrees with a two's complement conversion", prop.ForAll(
			func(v uint32) bool {
				shift := 32 - width
				return int32(SignExtend(v, width, 32)) == int32(v<<shift)>>shift
			},
			gen.UInt32Range(0, signBit<<1-1),
		))

		properties.TestingRun(t)
	}

	assert.Equal(t, uint32(0xfffff800), SignExtend(0x800, 12, 32))
	assert.Equal(t, uint32(0x7ff), SignExtend(0x7ff, 12, 32))
	assert.Equal(t, uint32(0xfffff000), SignExtend(0x1000, 13, 32))
	assert.Equal(t, uint32(0xfff00000), SignExtend(0x100000, 21, 32))
	assert.Equal(t, uint32(0x80), SignExtend(0x80, 8, 8))
}
