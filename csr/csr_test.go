package csr

import (
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/apparentlymart/riscv-decode/riscv"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	table := Default()
	assert.Same(t, table, Default())
	assert.Equal(t, 281, table.Len())

	for name, index := range map[string]uint16{
		"fflags":    0x001,
		"sstatus":   0x100,
		"satp":      0x180,
		"mstatus":   0x300,
		"mepc":      0x341,
		"pmpaddr63": 0x3ef,
		"cycle":     0xc00,
		"time":      0xc01,
		"mhartid":   0xf14,
	} {
		got, ok := table.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, index, got, name)

		gotName, ok := table.CSRName(index)
		require.True(t, ok, name)
		assert.Equal(t, name, gotName)
	}

	_, ok := table.CSRName(0x7c0)
	assert.False(t, ok)
	_, ok = table.Lookup("nosuchcsr")
	assert.False(t, ok)
}

func TestDefaultConcurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}
}

func TestEntriesRoundTrip(t *testing.T) {
	t.Parallel()

	table := Default()
	entries := table.Entries()
	require.Len(t, entries, table.Len())
	for _, e := range entries {
		index, ok := table.Lookup(e.Name)
		require.True(t, ok, e.Name)
		assert.Equal(t, e.Index, index)

		name, ok := table.CSRName(e.Index)
		require.True(t, ok, e.Name)
		assert.Equal(t, e.Name, name)
	}

	entries[0].Name = "changed"
	assert.NotEqual(t, "changed", table.Entries()[0].Name)
}

func TestParse(t *testing.T) {
	t.Parallel()

	table, err := Parse(strings.NewReader(`
# comment line
custom0 0x7c0   # trailing comment
custom1 1985
custom2 0o3702
`))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	for name, index := range map[string]uint16{
		"custom0": 0x7c0,
		"custom1": 0x7c1,
		"custom2": 0x7c2,
	} {
		got, ok := table.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, index, got)
	}

	assert.Equal(t, "csrrw x1, custom0, x2", riscv.Render(riscv.CsrOp{
		Kind: riscv.CsrReadWrite,
		Rd:   1,
		Rs1:  2,
		CSR:  0x7c0,
	}, table))
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	table, err := Parse(strings.NewReader("# nothing here\n\n"))
	require.NoError(t, err)
	assert.Zero(t, table.Len())

	_, ok := table.Lookup("mstatus")
	assert.False(t, ok)
	_, ok = table.CSRName(0x300)
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"missing index", "mstatus\n", `line 1: want "name index", got "mstatus"`},
		{"extra field", "mstatus 0x300 extra\n", `line 1: want "name index"`},
		{"bad index", "\nmstatus three\n", "line 2: invalid index for mstatus"},
		{"too wide", "big 0x1000\n", "line 1: index 0x1000 for big does not fit in 12 bits"},
		{"duplicate name", "a 1\na 2\n", "line 2: duplicate name a, first defined on line 1"},
		{"duplicate index", "a 1\nb 0x1\n", "line 2: duplicate index 0x1 for b, first defined on line 1"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(test.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}

	_, err := Parse(iotest.ErrReader(assert.AnError))
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to read CSR definitions")
}

func TestCSRNamerRendering(t *testing.T) {
	t.Parallel()

	inst, _, ok := riscv.Decode(0x30029073) // csrrw x0, mstatus, x5
	require.True(t, ok)
	assert.Equal(t, "csrrw x0, mstatus, x5", riscv.Render(inst, Default()))
	assert.Equal(t, "csrrw x0, 0x300, x5", inst.String())
}
