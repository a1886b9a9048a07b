package jobsec_test

import (
	"strconv"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"
)

// referenceDraws computes the expected generator output straight from the
// recurrence, without going through Rand.
func referenceDraws(seed uint32, n int) []uint32 {
	out := make([]uint32, 0, n)
	state := uint64(seed)

	for range n {
		state = (state*1103515245 + 12345) % (1 << 32)
		out = append(out, uint32((state/65536)%32768))
	}

	return out
}

// addFunc adds a void function to m. Each size is the total number of
// instructions of one block, terminator included; size 0 makes an empty
// block (no instructions, no terminator).
func addFunc(m *ir.Module, name string, sizes ...int) *ir.Func {
	f := m.NewFunc(name, types.Void)

	blocks := make([]*ir.Block, len(sizes))
	for i := range sizes {
		blocks[i] = f.NewBlock("bb" + strconv.Itoa(i))
	}

	for i, size := range sizes {
		b := blocks[i]
		if size == 0 {
			continue
		}

		for range size - 1 {
			b.NewAdd(constant.NewInt(types.I32, 1), constant.NewInt(types.I32, 2))
		}

		if i+1 < len(blocks) {
			b.NewBr(blocks[i+1])
		} else {
			b.NewRet(nil)
		}
	}

	return f
}

func findGlobal(t *testing.T, m *ir.Module, name string) *ir.Global {
	t.Helper()

	for _, g := range m.Globals {
		if g.GlobalName == name {
			return g
		}
	}

	require.Failf(t, "global not found", "no global named %q", name)

	return nil
}

// decoyIndex maps a decoy handle back to the index of its string global.
func decoyIndex(t *testing.T, m *ir.Module, handle any) int {
	t.Helper()

	cast, ok := handle.(*constant.ExprBitCast)
	require.True(t, ok, "handle should be a bitcast, got %T", handle)

	idx := 0

	for _, g := range m.Globals {
		if !g.Immutable {
			continue
		}

		if g == cast.From {
			return idx
		}

		idx++
	}

	require.Fail(t, "handle does not reference a decoy string global")

	return -1
}

// storeSite is one decoy store found in a function body.
type storeSite struct {
	// Position is the traversal position of the original instruction the
	// store precedes.
	Position int

	// Decoy is the index of the stored string.
	Decoy int
}

// decoyStores walks f and returns every store into slot together with the
// original instruction position it precedes.
func decoyStores(t *testing.T, m *ir.Module, f *ir.Func, slot *ir.Global) []storeSite {
	t.Helper()

	var sites []storeSite

	pos := 0

	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if st, ok := inst.(*ir.InstStore); ok && st.Dst == slot {
				sites = append(sites, storeSite{Position: pos, Decoy: decoyIndex(t, m, st.Src)})

				continue
			}

			pos++
		}

		if b.Term != nil {
			pos++
		}
	}

	return sites
}

func blockNames(m *ir.Module) []string {
	var names []string

	for _, f := range m.Funcs {
		for _, b := range f.Blocks {
			names = append(names, b.LocalName)
		}
	}

	return names
}
