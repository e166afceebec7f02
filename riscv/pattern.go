package riscv

import (
	"encoding/binary"
	"fmt"
)

// Bit-pattern templates spell out an instruction word most significant bit
// first. '0' and '1' must match exactly, '?' matches either value, and '_',
// ' ' and '\t' are ignored separators. For example, LUI is
//
//	????????????????????_?????_0110111
//
// Bit offset k of the template (counted from the right) is compared with
// bit k%8 of byte k/8 of the little-endian input.

func isPatternSeparator(c byte) bool {
	return c == '_' || c == ' ' || c == '\t'
}

// stripPattern removes separators and checks the remaining characters. It
// panics with a *MalformedPatternError if the template is unusable.
func stripPattern(pattern string) []byte {
	ret := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case isPatternSeparator(c):
			continue
		case c == '0', c == '1', c == '?':
			ret = append(ret, c)
		default:
			panic(newMalformedPatternError(pattern, i, fmt.Sprintf("invalid character %q", c)))
		}
	}
	if len(ret) == 0 || len(ret)%8 != 0 {
		panic(newMalformedPatternError(pattern, -1, "length is not a positive multiple of 8 bits"))
	}
	return ret
}

// Match reports whether src satisfies the template pattern, along with the
// number of bits the template covers. The length is reported whether or
// not the match succeeds. Input shorter than the template never matches.
//
// A malformed template is a programming error and causes a panic with a
// *MalformedPatternError.
func Match(pattern string, src []byte) (bool, int) {
	bits := stripPattern(pattern)
	bitLen := len(bits)

	for offset := 0; offset < bitLen; offset++ {
		if offset/8 >= len(src) {
			return false, bitLen
		}
		got := Bit(uint32(src[offset/8]), uint(offset%8))
		switch bits[bitLen-1-offset] {
		case '?':
		case '1':
			if got != 1 {
				return false, bitLen
			}
		case '0':
			if got != 0 {
				return false, bitLen
			}
		}
	}
	return true, bitLen
}

// Pattern is a template compiled to per-byte masks, so that matching does
// not re-read the template text.
type Pattern struct {
	text  string
	mask  []byte
	value []byte
}

// CompilePattern compiles a template with the same syntax and semantics as
// Match. It panics with a *MalformedPatternError if the template is
// malformed.
func CompilePattern(pattern string) Pattern {
	bits := stripPattern(pattern)
	bitLen := len(bits)
	p := Pattern{
		text:  pattern,
		mask:  make([]byte, bitLen/8),
		value: make([]byte, bitLen/8),
	}
	for offset := 0; offset < bitLen; offset++ {
		c := bits[bitLen-1-offset]
		if c == '?' {
			continue
		}
		p.mask[offset/8] |= 1 << (offset % 8)
		if c == '1' {
			p.value[offset/8] |= 1 << (offset % 8)
		}
	}
	return p
}

// Len returns the number of bits covered by the pattern.
func (p Pattern) Len() int {
	return len(p.mask) * 8
}

func (p Pattern) String() string {
	return p.text
}

// Match behaves exactly like the package-level Match for the template p was
// compiled from.
func (p Pattern) Match(src []byte) (bool, int) {
	bitLen := p.Len()
	if len(src) < len(p.mask) {
		return false, bitLen
	}
	for i, m := range p.mask {
		if src[i]&m != p.value[i] {
			return false, bitLen
		}
	}
	return true, bitLen
}

// word returns the mask and value of a 32-bit pattern as instruction
// words.
func (p Pattern) word() (mask, value uint32, ok bool) {
	if len(p.mask) != InstructionSize {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(p.mask), binary.LittleEndian.Uint32(p.value), true
}
