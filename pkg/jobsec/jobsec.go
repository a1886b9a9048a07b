package jobsec

import "github.com/llir/llvm/ir"

// PassName is the name the engine is registered under in a pass pipeline.
const PassName = "job-security"

// Preserved tells the host which of its analyses survive a pass.
type Preserved int

const (
	// PreserveNone means every analysis of the module must be recomputed.
	PreserveNone Preserved = iota

	// PreserveAll means the module was not changed.
	PreserveAll
)

// FunctionReport describes what the injector did to one function.
type FunctionReport struct {
	Name string

	// Instructions is the number of original instructions, terminators
	// included.
	Instructions int

	// Injected is the number of decoy stores inserted.
	Injected int
}

// Report summarizes one [Mutate] call.
type Report struct {
	Seed uint32

	// Slot is the final name of the decoy slot global.
	Slot string

	// Decoys is the number of decoy string globals added.
	Decoys int

	// Functions lists every function with a body, in module order.
	Functions []FunctionReport

	// Injected is the total number of decoy stores inserted.
	Injected int

	// RenamedBlocks is the number of blocks that were renamed.
	RenamedBlocks int

	Preserved Preserved
}

// Mutate applies decoy injection and block renaming to m in place.
//
// The pools are validated before anything else happens; on error m is left
// untouched and the error wraps [ErrConfig]. Mutation itself cannot fail.
//
// Random draws happen in a fixed order: two for the slot (initial handle,
// then name), then one per inserted store in module order. Renaming draws
// nothing.
func Mutate(m *ir.Module, pools Pools, seed uint32) (Report, error) {
	if err := pools.Validate(); err != nil {
		return Report{Seed: seed, Preserved: PreserveAll}, err
	}

	rnd := NewRand(seed)
	syms := moduleSymbols(m)

	handles := buildDecoys(m, syms, pools.Strings)
	slot := newSlot(m, syms, handles, pools.Labels, rnd)

	report := Report{
		Seed:   seed,
		Slot:   slot.GlobalName,
		Decoys: len(handles),
	}

	in := &injector{slot: slot, handles: handles, rnd: rnd}

	for _, f := range m.Funcs {
		if len(f.Blocks) == 0 {
			continue
		}

		total, inserted := in.injectFunc(f)

		report.Functions = append(report.Functions, FunctionReport{
			Name:         f.GlobalName,
			Instructions: total,
			Injected:     inserted,
		})
		report.Injected += inserted
	}

	report.RenamedBlocks = renameBlocks(m, pools.Labels)
	report.Preserved = PreserveNone

	return report, nil
}
