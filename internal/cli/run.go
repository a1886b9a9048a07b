// Package cli implements the jobsec command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobsec/internal/config"
	"github.com/calvinalkan/jobsec/internal/fs"
)

// ErrUnknownCommand is returned for a command name that is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// globalFlags holds the parsed global options.
type globalFlags struct {
	set *flag.FlagSet

	help       bool
	workDir    string
	configPath string
	strings    string
	labels     string
	seed       uint32
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{set: flag.NewFlagSet("jobsec", flag.ContinueOnError)}

	g.set.SetInterspersed(false)
	g.set.SetOutput(&strings.Builder{}) // discard pflag output

	g.set.BoolVarP(&g.help, "help", "h", false, "Show help")
	g.set.StringVarP(&g.workDir, "cwd", "C", "", "Run as if started in `dir`")
	g.set.StringVarP(&g.configPath, "config", "c", "", "Use specified config `file`")
	g.set.StringVar(&g.strings, "strings", "", "Decoy string `file`, one string per line (default \"strings.txt\")")
	g.set.StringVar(&g.labels, "labels", "", "Label `file`, one label per line (default \"labels.txt\")")
	g.set.Uint32Var(&g.seed, "seed", 0, "Seed for the pseudorandom generator (default 42)")

	return g
}

// overrides returns the config overrides for flags that were set explicitly.
func (g *globalFlags) overrides() config.Overrides {
	var ov config.Overrides

	if g.set.Changed("strings") {
		ov.Strings = &g.strings
	}

	if g.set.Changed("labels") {
		ov.Labels = &g.labels
	}

	if g.set.Changed("seed") {
		ov.Seed = &g.seed
	}

	return ov
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(stdin, out, errOut)
	globals := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.set.Parse(args); err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		printUsage(o.Err(), globals, commandList(&config.Config{}, nil))

		return 1
	}

	rest := globals.set.Args()

	if globals.help || len(rest) == 0 {
		printUsage(o, globals, commandList(&config.Config{}, nil))

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: globals.workDir,
		ConfigPath:      globals.configPath,
		Overrides:       globals.overrides(),
		Env:             env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	commands := commandList(&cfg, fs.NewReal())

	name := rest[0]
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(context.Background(), o, rest[1:])
		}
	}

	o.ErrPrintln("error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
	o.ErrPrintln()
	printUsage(o.Err(), globals, commands)

	return 1
}

// commandList returns all commands in help order.
func commandList(cfg *config.Config, fsys fs.FS) []*Command {
	return []*Command{
		MutateCmd(cfg, fsys),
		PassesCmd(),
		PrintConfigCmd(cfg),
	}
}

func printUsage(o *IO, globals *globalFlags, commands []*Command) {
	o.Println(`jobsec - seed-driven LLVM IR obfuscator

Usage: jobsec [global flags] <command> [args]

Global flags:`)
	o.Printf("%s", globals.set.FlagUsages())

	if len(commands) == 0 {
		return
	}

	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}
}
