package riscv

import (
	"fmt"
	"strings"
)

// XLEN is the integer register width of the execution environment a
// decode or normalization is performed for.
type XLEN uint8

const (
	XLENInvalid XLEN = 0
	RV32        XLEN = 32
	RV64        XLEN = 64
)

// ShamtWidth is the number of bits a register-width shift amount
// occupies: 5 for RV32 and 6 for RV64.
func (x XLEN) ShamtWidth() uint {
	if x == RV32 {
		return 5
	}
	return 6
}

func (x XLEN) String() string {
	switch x {
	case RV32, RV64:
		return fmt.Sprintf("RV%d", uint8(x))
	default:
		return fmt.Sprintf("XLEN(%d)", uint8(x))
	}
}

// ParseXLEN accepts "rv32", "RV64", "32" and so on.
func ParseXLEN(s string) (XLEN, error) {
	bitsStr := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "rv")
	switch bitsStr {
	case "32":
		return RV32, nil
	case "64":
		return RV64, nil
	default:
		return XLENInvalid, fmt.Errorf("unsupported XLEN %q", s)
	}
}
