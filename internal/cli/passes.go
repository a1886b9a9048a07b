package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobsec/pkg/jobsec"
)

// PassesCmd returns the passes command.
func PassesCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("passes", flag.ContinueOnError),
		Usage: "passes",
		Short: "List passes usable in --passes",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			for _, name := range jobsec.PassNames() {
				o.Println(name)
			}

			return nil
		},
	}
}
