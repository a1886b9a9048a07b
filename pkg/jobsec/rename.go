package jobsec

import (
	"strconv"

	"github.com/llir/llvm/ir"
)

// renameBlocks renames every block of m to "<label>_<n>".
//
// n counts blocks across the whole module, starting at 1, and label is
// labels[(n-1) mod len(labels)]. Labels are picked cyclically; no random
// draws happen here. Returns the number of renamed blocks.
func renameBlocks(m *ir.Module, labels []string) int {
	counter := 0

	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 {
			continue
		}

		locals := localSymbols(f)

		for _, b := range f.Blocks {
			label := labels[counter%len(labels)]
			counter++

			b.SetName(locals.claim(label + "_" + strconv.Itoa(counter)))
		}
	}

	return counter
}
