package csr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads CSR definitions, one "name index" pair per line. Anything
// after a '#' is a comment and blank lines are ignored. The index may be
// written in any Go integer literal syntax, such as 768, 0x300 or 0o1400.
func Parse(r io.Reader) (*Table, error) {
	var entries []Entry
	seenNames := make(map[string]int)
	seenIndices := make(map[uint16]int)

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := trimComments(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"name index\", got %q", lineNum, strings.TrimSpace(line))
		}
		name, rawIndex := fields[0], fields[1]

		index, err := strconv.ParseUint(rawIndex, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid index for %s: %w", lineNum, name, err)
		}
		if index > MaxIndex {
			return nil, fmt.Errorf("line %d: index %#x for %s does not fit in 12 bits", lineNum, index, name)
		}

		if prev, exists := seenNames[name]; exists {
			return nil, fmt.Errorf("line %d: duplicate name %s, first defined on line %d", lineNum, name, prev)
		}
		if prev, exists := seenIndices[uint16(index)]; exists {
			return nil, fmt.Errorf("line %d: duplicate index %#x for %s, first defined on line %d", lineNum, index, name, prev)
		}
		seenNames[name] = lineNum
		seenIndices[uint16(index)] = lineNum

		entries = append(entries, Entry{Name: name, Index: uint16(index)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CSR definitions: %w", err)
	}

	return newTable(entries), nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}
