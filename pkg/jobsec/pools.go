package jobsec

import "fmt"

// Pools holds the resources the engine draws from.
//
// Strings are the decoy payloads written into the slot. Labels name the slot
// and the renamed blocks. Both must be non-empty; order matters, since all
// selections are by index.
type Pools struct {
	Strings []string
	Labels  []string
}

// Validate reports whether the pools can be used for a run.
func (p Pools) Validate() error {
	if len(p.Strings) == 0 {
		return fmt.Errorf("%w: %w", ErrConfig, ErrNoStrings)
	}

	if len(p.Labels) == 0 {
		return fmt.Errorf("%w: %w", ErrConfig, ErrNoLabels)
	}

	return nil
}
