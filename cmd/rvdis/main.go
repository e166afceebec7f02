// Command rvdis disassembles RISC-V RV32I/RV64I instruction words, either
// given as hex words on the command line or read from a little-endian
// binary file.
//
//	rvdis 00208463 fff30293
//	rvdis -flat -xlen 32 -file prog.bin
//	rvdis -format yaml -csr custom_csrs 7c0090f3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/apparentlymart/riscv-decode/csr"
	"github.com/apparentlymart/riscv-decode/riscv"
)

type options struct {
	flat    bool
	xlen    riscv.XLEN
	format  string
	color   bool
	csrFile string
	file    string
	words   []string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("rvdis: ")

	opts, err := parseOptions(os.Args[1:], os.Stderr, term.IsTerminal(int(os.Stdout.Fd())))
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}

	names := csr.Default()
	if opts.csrFile != "" {
		names, err = loadCSRFile(opts.csrFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	src, err := readInput(opts, os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	records := decodeStream(src, opts.flat, opts.xlen, names)
	if err := writeListing(os.Stdout, opts, records); err != nil {
		log.Fatal(err)
	}
}

func parseOptions(args []string, stderr io.Writer, isTerminal bool) (*options, error) {
	fs := flag.NewFlagSet("rvdis", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: rvdis [flags] [hex words...]\n")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.BoolVar(&opts.flat, "flat", false, "decode with the flat pattern table and print normalized records")
	rawXLEN := fs.String("xlen", "64", "register width for decoding and normalization: 32 or 64")
	fs.StringVar(&opts.format, "format", "text", "output format: text, yaml or dump")
	rawColor := fs.String("color", "auto", "colorize text output: auto, always or never")
	fs.StringVar(&opts.csrFile, "csr", "", "read CSR names from `file` instead of the built-in table")
	fs.StringVar(&opts.file, "file", "", "decode the little-endian binary `file` (\"-\" for stdin)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.words = fs.Args()

	var err error
	opts.xlen, err = riscv.ParseXLEN(*rawXLEN)
	if err != nil {
		return nil, err
	}

	switch opts.format {
	case "text", "yaml", "dump":
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.format)
	}

	switch *rawColor {
	case "auto":
		opts.color = isTerminal
	case "always":
		opts.color = true
	case "never":
		opts.color = false
	default:
		return nil, fmt.Errorf("invalid -color value %q", *rawColor)
	}

	if opts.file != "" && len(opts.words) > 0 {
		return nil, fmt.Errorf("-file cannot be combined with words on the command line")
	}
	if opts.file == "" && len(opts.words) == 0 {
		return nil, fmt.Errorf("nothing to decode; give hex words or -file")
	}

	return opts, nil
}

func loadCSRFile(filename string) (*csr.Table, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	t, err := csr.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load CSR names from %s: %w", filename, err)
	}
	return t, nil
}
