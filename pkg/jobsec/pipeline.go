package jobsec

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
)

// PassFunc is the signature shared by all registered passes.
type PassFunc func(m *ir.Module, pools Pools, seed uint32) (Report, error)

// Pass is a registered pass together with the name it was requested by.
type Pass struct {
	Name string
	Run  PassFunc
}

var passes = map[string]PassFunc{
	PassName: Mutate,
}

// PassNames returns the names of all registered passes.
func PassNames() []string {
	return []string{PassName}
}

// ParsePipeline resolves a comma separated list of pass names, for example
// "job-security" or "job-security,job-security".
//
// Whitespace around names is ignored. Unknown names return an error wrapping
// [ErrUnknownPass].
func ParsePipeline(pipeline string) ([]Pass, error) {
	var out []Pass

	for name := range strings.SplitSeq(pipeline, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		run, ok := passes[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownPass, name, strings.Join(PassNames(), ", "))
		}

		out = append(out, Pass{Name: name, Run: run})
	}

	if len(out) == 0 {
		return nil, ErrEmptyPipeline
	}

	return out, nil
}
