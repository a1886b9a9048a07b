// Package jobsec mutates LLVM IR to make static analysis of the compiled
// program more tedious, without changing what the program does.
//
// Two mutations are applied, in this order:
//   - decoy writes: every decoy string becomes a private constant global, one
//     internal pointer-sized global (the "slot") is created, and a store of a
//     randomly chosen decoy into the slot is inserted before every fifth
//     instruction of each function
//   - block renaming: every basic block is renamed to "<label>_<n>", picking
//     labels cyclically from the label pool
//
// The mutation is fully deterministic: the same seed, pools and input module
// always produce the same output module.
//
// # Basic Usage
//
//	m, err := asm.ParseFile("input.ll")
//	if err != nil {
//	    return err
//	}
//
//	report, err := jobsec.Mutate(m, jobsec.Pools{
//	    Strings: []string{"license check failed", "debug backdoor"},
//	    Labels:  []string{"decrypt", "verify_key"},
//	}, 42)
//	if err != nil {
//	    // errors.Is(err, jobsec.ErrConfig): the module was not touched
//	}
//
//	fmt.Print(m)
//
// # Concurrency
//
// A [Rand] is owned by a single [Mutate] call, so independent modules can be
// mutated in parallel. A single [ir.Module] must not be shared between
// concurrent calls.
//
// # Error Handling
//
// Only configuration problems are errors: an empty string pool or an empty
// label pool. Both wrap [ErrConfig] and are reported before any change is
// made to the module.
package jobsec
