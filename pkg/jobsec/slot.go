package jobsec

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
)

// newSlot creates the single mutable i8* global that all decoy stores target.
//
// Exactly two draws are consumed, in this order: the initial handle, then the
// label used as the global's name.
func newSlot(m *ir.Module, syms symbols, handles []constant.Constant, labels []string, rnd *Rand) *ir.Global {
	init := handles[rnd.Intn(len(handles))]
	label := labels[rnd.Intn(len(labels))]

	g := m.NewGlobalDef(syms.claim(label), init)
	g.Linkage = enum.LinkageInternal

	return g
}
