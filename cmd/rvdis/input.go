package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// readInput returns the bytes to decode: the named file, stdin for "-",
// or the command line words in little-endian order.
func readInput(opts *options, stdin io.Reader) ([]byte, error) {
	switch opts.file {
	case "":
		return parseWords(opts.words)
	case "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(opts.file)
	}
}

// parseWords accepts 32-bit hex words with or without a 0x prefix and
// with optional '_' separators, e.g. "0x0020_8463".
func parseWords(words []string) ([]byte, error) {
	ret := make([]byte, 0, len(words)*4)
	for _, raw := range words {
		s := strings.ReplaceAll(raw, "_", "")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid instruction word %q: %w", raw, err)
		}
		ret = binary.LittleEndian.AppendUint32(ret, uint32(v))
	}
	return ret, nil
}
