package jobsec

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// symbols is a set of names already in use in one LLVM namespace.
type symbols map[string]bool

// moduleSymbols collects the names of all module-level symbols.
func moduleSymbols(m *ir.Module) symbols {
	syms := make(symbols)

	for _, g := range m.Globals {
		syms.add(g.GlobalName)
	}

	for _, f := range m.Funcs {
		syms.add(f.GlobalName)
	}

	for _, a := range m.Aliases {
		syms.add(a.GlobalName)
	}

	for _, i := range m.IFuncs {
		syms.add(i.GlobalName)
	}

	return syms
}

// localSymbols collects the names of parameters and named instructions of f.
// Block names are left out: every block is about to be renamed.
func localSymbols(f *ir.Func) symbols {
	syms := make(symbols)

	for _, p := range f.Params {
		syms.add(p.LocalName)
	}

	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if named, ok := inst.(value.Named); ok {
				syms.add(named.Name())
			}
		}

		if named, ok := b.Term.(value.Named); ok {
			syms.add(named.Name())
		}
	}

	return syms
}

func (s symbols) add(name string) {
	if name != "" {
		s[name] = true
	}
}

// claim reserves name, or the first free "name.N" (N = 1, 2, ...) if name is
// taken, and returns the reserved name.
func (s symbols) claim(name string) string {
	if !s[name] {
		s[name] = true

		return name
	}

	for n := 1; ; n++ {
		candidate := name + "." + strconv.Itoa(n)
		if !s[candidate] {
			s[candidate] = true

			return candidate
		}
	}
}
