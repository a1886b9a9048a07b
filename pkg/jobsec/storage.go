package jobsec

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// decoyStringName is the base name of decoy string globals, matching what
// clang emits for string literals.
const decoyStringName = ".str"

// buildDecoys adds one private constant global per string, holding the
// string's bytes plus a NUL terminator, and returns an i8* handle for each.
//
// Handles are index-aligned with strs. Duplicate strings get their own
// global, so index i always refers to strs[i].
func buildDecoys(m *ir.Module, syms symbols, strs []string) []constant.Constant {
	handles := make([]constant.Constant, 0, len(strs))

	for _, s := range strs {
		data := constant.NewCharArrayFromString(s + "\x00")

		g := m.NewGlobalDef(syms.claim(decoyStringName), data)
		g.Linkage = enum.LinkagePrivate
		g.Immutable = true

		handles = append(handles, constant.NewBitCast(g, types.I8Ptr))
	}

	return handles
}
