package riscv

// Normalize returns f with its immediate in canonical form for xlen, so
// that records denoting the same instruction compare equal:
//
//   - immop shifts keep only the shift amount, 5 bits for RV32 and 6 bits
//     for RV64; immopw shifts always keep 5 bits.
//   - op and opw, which have no immediate, get zero.
//   - sret and mret get zero; the operation is already in Ext.
//
// Every other record is returned unchanged. Normalize is idempotent.
func Normalize(f FlatInstruction, xlen XLEN) FlatInstruction {
	switch f.Tag {
	case TagOpImm:
		if AluOp(f.Ext).IsShift() {
			f.Imm &= rangeMask(xlen.ShamtWidth()-1, 0)
		}
	case TagOpImmWord:
		if AluOp(f.Ext).IsShift() {
			f.Imm &= rangeMask(RV32.ShamtWidth()-1, 0)
		}
	case TagOp, TagOpWord:
		f.Imm = 0
	case TagSystem:
		if SystemOp(f.Ext).IsTrapReturn() {
			f.Imm = 0
		}
	}
	return f
}
