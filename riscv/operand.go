package riscv

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeStep masks one group of source bits out of an instruction word and
// shifts it into place. A negative RightShift shifts left.
type decodeStep struct {
	Mask       uint32
	RightShift int
}

func (s decodeStep) apply(inst uint32) uint32 {
	v := inst & s.Mask
	switch {
	case s.RightShift < 0:
		return v << uint(-s.RightShift)
	default:
		return v >> uint(s.RightShift)
	}
}

// parseDecodeSteps deals with operand layouts written in the riscv-meta
// "operands" notation, such as "31:25[12|10:5],11:7[4:1|11]", and normalizes
// them to a sequence of "mask, then shift" operations whose results can be
// bitwise-ORed together to produce the final value. It also returns the
// encoded width of the operand, which is one more than the highest
// destination bit.
func parseDecodeSteps(raw string) ([]decodeStep, uint, error) {
	parts := strings.Split(raw, ",")
	var ret []decodeStep
	var width uint
	for _, rawPart := range parts {
		brack := strings.IndexByte(rawPart, '[')
		switch {
		case brack == -1:
			// A simple right-justified field, then.
			rawTop, rawBottom := partition(rawPart, ":")
			if rawBottom == "" {
				rawBottom = rawTop
			}
			top, err := strconv.ParseUint(rawTop, 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid field top in %q: %w", rawPart, err)
			}
			bottom, err := strconv.ParseUint(rawBottom, 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid field bottom in %q: %w", rawPart, err)
			}
			if top < bottom || top > 31 {
				return nil, 0, fmt.Errorf("invalid field range %q", rawPart)
			}

			ret = append(ret, decodeStep{
				Mask:       rangeMask(uint(top), uint(bottom)),
				RightShift: int(bottom),
			})
			width = max(width, uint(top-bottom)+1)

		default:
			// A more complicated sequence of operations gathering values
			// for a single field from several separate sources. A
			// consecutive run of source bits can land in non-consecutive
			// destination bits, so one part may yield several steps.
			rawSrc, rawDests := partition(rawPart, "[")
			if !strings.HasSuffix(rawDests, "]") {
				return nil, 0, fmt.Errorf("unterminated destination list in %q", rawPart)
			}
			rawDests = rawDests[:len(rawDests)-1]

			rawSrcTop, rawSrcBottom := partition(rawSrc, ":")
			srcTop, err := strconv.ParseUint(rawSrcTop, 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid source top in %q: %w", rawPart, err)
			}
			srcEnd := srcTop
			if rawSrcBottom != "" {
				srcEnd, err = strconv.ParseUint(rawSrcBottom, 10, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("invalid source bottom in %q: %w", rawPart, err)
				}
			}

			for _, rawConcat := range strings.Split(rawDests, "|") {
				rawDestTop, rawDestBottom := partition(rawConcat, ":")
				if rawDestBottom == "" {
					rawDestBottom = rawDestTop
				}
				destTop, err := strconv.ParseUint(rawDestTop, 10, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("invalid destination in %q: %w", rawPart, err)
				}
				destBottom, err := strconv.ParseUint(rawDestBottom, 10, 64)
				if err != nil {
					return nil, 0, fmt.Errorf("invalid destination in %q: %w", rawPart, err)
				}
				if destTop < destBottom || destTop-destBottom > srcTop {
					return nil, 0, fmt.Errorf("invalid destination range %q in %q", rawConcat, rawPart)
				}
				span := destTop - destBottom
				srcBottom := srcTop - span

				ret = append(ret, decodeStep{
					Mask:       rangeMask(uint(srcTop), uint(srcBottom)),
					RightShift: int(srcBottom) - int(destBottom),
				})
				width = max(width, uint(destTop)+1)

				// The next concat picks up where this one left off.
				srcTop = srcBottom - 1
			}
			if srcTop+1 != srcEnd {
				return nil, 0, fmt.Errorf("destinations in %q do not cover source bits %s", rawPart, rawSrc)
			}
		}
	}
	if len(ret) == 0 {
		return nil, 0, fmt.Errorf("empty operand layout %q", raw)
	}
	return ret, width, nil
}

// immediate is an operand reassembled from one or more bit groups of an
// instruction word.
type immediate struct {
	steps  []decodeStep
	width  uint
	signed bool
}

func mustImmediate(layout string, signed bool) immediate {
	steps, width, err := parseDecodeSteps(layout)
	if err != nil {
		panic(fmt.Sprintf("invalid immediate layout: %s", err))
	}
	return immediate{
		steps:  steps,
		width:  width,
		signed: signed,
	}
}

func (imm immediate) extract(inst uint32) uint32 {
	var raw uint32
	for _, step := range imm.steps {
		raw |= step.apply(inst)
	}
	if imm.signed {
		return SignExtend(raw, imm.width, 32)
	}
	return raw
}

var (
	immI   = mustImmediate("31:20[11:0]", true)
	immS   = mustImmediate("31:25[11:5],11:7[4:0]", true)
	immB   = mustImmediate("31:25[12|10:5],11:7[4:1|11]", true)
	immU   = mustImmediate("31:12[31:12]", false)
	immJ   = mustImmediate("31:12[20|10:1|11|19:12]", true)
	immCSR = mustImmediate("31:20[11:0]", false)
)

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}
