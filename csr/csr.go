// Package csr maps RISC-V control and status register indices to their
// assembler names and back.
package csr

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/SaveTheRbtz/mph"

	"github.com/apparentlymart/riscv-decode/riscv"
)

//go:embed csr_def
var defaultDef string

// MaxIndex is the largest index a 12-bit CSR field can hold.
const MaxIndex = 0xfff

// Table is an immutable, bidirectional CSR name table. It is safe for
// concurrent use.
type Table struct {
	names   map[uint16]string
	entries []Entry
	byName  *mph.Table
}

// Entry is one line of a CSR definition file.
type Entry struct {
	Name  string
	Index uint16
}

var _ riscv.CSRNamer = (*Table)(nil)

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(strings.NewReader(defaultDef))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in CSR definitions: %s", err))
	}
	return t
})

// Default returns the built-in table of standard CSR names. It is built on
// first use and shared by all callers.
func Default() *Table {
	return defaultTable()
}

func newTable(entries []Entry) *Table {
	t := &Table{
		names:   make(map[uint16]string, len(entries)),
		entries: entries,
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		t.names[e.Index] = e.Name
		keys[i] = e.Name
	}
	if len(keys) > 0 {
		t.byName = mph.Build(keys)
	}
	return t
}

// CSRName returns the name of the CSR at index.
func (t *Table) CSRName(index uint16) (string, bool) {
	name, ok := t.names[index]
	return name, ok
}

// Lookup returns the index of the CSR called name.
func (t *Table) Lookup(name string) (uint16, bool) {
	if t.byName == nil {
		return 0, false
	}
	i, ok := t.byName.Lookup(name)
	if !ok {
		return 0, false
	}
	return t.entries[i].Index, true
}

// Len returns the number of CSRs in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the table's CSRs in definition order.
func (t *Table) Entries() []Entry {
	ret := make([]Entry, len(t.entries))
	copy(ret, t.entries)
	return ret
}
