package riscv

import (
	"fmt"
)

type bits8 uint8

func (v bits8) String() string {
	return fmt.Sprintf("0b%08b", v)
}

func rangeMask(top, bottom uint) uint32 {
	return uint32((uint64(1) << (top + 1)) - (uint64(1) << bottom))
}

// Bit returns bit i of x, counting from the least significant bit.
func Bit(x uint32, i uint) uint32 {
	return (x >> i) & 1
}

// Bits returns the inclusive subfield x[hi:lo], shifted down to bit zero.
//
// hi must be greater than lo. Use Bit for single-bit fields.
func Bits(x uint32, hi, lo uint) uint32 {
	if hi <= lo || hi > 31 {
		panic(fmt.Sprintf("riscv.Bits: invalid range [%d:%d]", hi, lo))
	}
	return (x >> lo) & rangeMask(hi-lo, 0)
}

// SignExtend treats the low rawWidth bits of value as a two's complement
// number and extends its sign bit up to targetWidth bits. If the sign bit
// is clear the value is returned unchanged.
func SignExtend(value uint32, rawWidth, targetWidth uint) uint32 {
	if rawWidth == 0 || targetWidth <= rawWidth {
		return value
	}
	if Bit(value, rawWidth-1) == 0 {
		return value
	}
	return value | rangeMask(targetWidth-1, rawWidth)
}
