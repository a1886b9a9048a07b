package jobsec

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

// injectInterval is the distance, in original instructions, between two
// decoy stores within a function.
const injectInterval = 5

// injector inserts decoy stores into function bodies.
type injector struct {
	slot    *ir.Global
	handles []constant.Constant
	rnd     *Rand
}

// injectFunc inserts a decoy store before the instructions at positions
// 0, 5, 10, ... of f. Positions count every instruction of every block in
// order, terminators included, and restart at 0 for each function.
//
// Returns the number of original instructions and the number of stores
// inserted.
func (in *injector) injectFunc(f *ir.Func) (int, int) {
	counter := 0
	inserted := 0

	for _, b := range f.Blocks {
		insts := make([]ir.Instruction, 0, len(b.Insts)+len(b.Insts)/injectInterval+2)

		for _, inst := range b.Insts {
			if counter%injectInterval == 0 {
				insts = append(insts, in.decoyStore())
				inserted++
			}

			counter++

			insts = append(insts, inst)
		}

		// The terminator is an instruction position too. A store in front of
		// it is the last non-terminator instruction of the block.
		if b.Term != nil {
			if counter%injectInterval == 0 {
				insts = append(insts, in.decoyStore())
				inserted++
			}

			counter++
		}

		if len(insts) != len(b.Insts) {
			b.Insts = insts
		}
	}

	return counter, inserted
}

// decoyStore returns a store of a freshly drawn handle into the slot.
func (in *injector) decoyStore() *ir.InstStore {
	handle := in.handles[in.rnd.Intn(len(in.handles))]

	return ir.NewStore(handle, in.slot)
}
