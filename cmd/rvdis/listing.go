package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"
	"github.com/logrusorgru/aurora/v4"

	"github.com/apparentlymart/riscv-decode/riscv"
)

// record is one line of the listing.
type record struct {
	Offset int         `yaml:"offset"`
	Word   string      `yaml:"word,omitempty"`
	Text   string      `yaml:"text"`
	Flat   *flatRecord `yaml:"flat,omitempty"`
	Error  string      `yaml:"error,omitempty"`

	Inst riscv.Instruction `yaml:"-"`
}

type flatRecord struct {
	Tag string `yaml:"tag"`
	Ext uint16 `yaml:"ext"`
	Rd  uint8  `yaml:"rd"`
	Rs1 uint8  `yaml:"rs1"`
	Rs2 uint8  `yaml:"rs2"`
	Imm string `yaml:"imm"`
}

// decodeStream decodes src one word at a time. A word neither path accepts
// is listed as data and skipped; a trailing fragment shorter than a word
// ends the listing.
func decodeStream(src []byte, flat bool, xlen riscv.XLEN, names riscv.CSRNamer) []record {
	var ret []record
	for offset := 0; offset < len(src); offset += riscv.InstructionSize {
		rest := src[offset:]
		if len(rest) < riscv.InstructionSize {
			ret = append(ret, record{
				Offset: offset,
				Text:   fmt.Sprintf(".byte % x", rest),
				Error:  riscv.ErrShortInput.Error(),
			})
			break
		}

		word := binary.LittleEndian.Uint32(rest)
		rec := record{
			Offset: offset,
			Word:   fmt.Sprintf("0x%08x", word),
		}
		ok := false
		if flat {
			var f riscv.FlatInstruction
			f, _, ok = riscv.DecodeFlat(rest)
			if ok {
				f = riscv.Normalize(f, xlen)
				rec.Text = f.String()
				rec.Flat = &flatRecord{
					Tag: f.Name(),
					Ext: f.Ext,
					Rd:  uint8(f.Rd),
					Rs1: uint8(f.Rs1),
					Rs2: uint8(f.Rs2),
					Imm: fmt.Sprintf("%#x", f.Imm),
				}
			}
		} else {
			rec.Inst, _, ok = riscv.DecodeXLEN(word, xlen)
			if ok {
				rec.Text = riscv.Render(rec.Inst, names)
			}
		}
		if !ok {
			rec.Text = fmt.Sprintf(".word 0x%08x", word)
			rec.Error = riscv.ErrUnrecognizedEncoding.Error()
		}
		ret = append(ret, rec)
	}
	return ret
}

func writeListing(w io.Writer, opts *options, records []record) error {
	switch opts.format {
	case "yaml":
		return writeYAML(w, records)
	case "dump":
		spew.Fdump(w, records)
		return nil
	default:
		return writeText(w, records, opts.color)
	}
}

func writeText(w io.Writer, records []record, color bool) error {
	au := aurora.New(aurora.WithColors(color))
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, rec := range records {
		offset := fmt.Sprintf("%08x:", rec.Offset)
		word := rec.Word
		if word == "" {
			word = "-"
		}
		switch {
		case rec.Error != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\n", au.Faint(offset), au.Yellow(word), au.Red(rec.Text))
		default:
			fmt.Fprintf(tw, "%s\t%s\t%s\n", au.Faint(offset), au.Cyan(word), rec.Text)
		}
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, records []record) error {
	buf, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode listing: %w", err)
	}
	_, err = w.Write(buf)
	return err
}
