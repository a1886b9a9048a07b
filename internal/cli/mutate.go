package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/jobsec/internal/config"
	"github.com/calvinalkan/jobsec/internal/fs"
	"github.com/calvinalkan/jobsec/internal/resource"
	"github.com/calvinalkan/jobsec/pkg/jobsec"
)

// Error variables for the mutate command.
var (
	ErrInputRequired = errors.New("input module is required")
	ErrTooManyInputs = errors.New("only one input module is supported")
	ErrInputNotFound = errors.New("input module not found")
	ErrNoStdin       = errors.New("no stdin attached")
	ErrInvalidModule = errors.New("invalid LLVM IR module")
)

const (
	stdioPath  = "-"
	outputPerm = 0o644
)

// MutateCmd returns the mutate command.
func MutateCmd(cfg *config.Config, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("mutate", flag.ContinueOnError)
	output := flags.StringP("output", "o", stdioPath, "Write the mutated module to `file` (- for stdout)")
	pipeline := flags.StringP("passes", "p", jobsec.PassName, "Comma separated pass `pipeline` to run")
	verbose := flags.BoolP("verbose", "v", false, "Print seed, resource and injection diagnostics to stderr")

	return &Command{
		Flags: flags,
		Usage: "mutate [flags] <input.ll>",
		Short: "Inject decoy writes and rename blocks",
		Long: `Parse a textual LLVM IR module, inject decoy string writes into every
function and rename every basic block, then print the mutated module.

Use - as input to read the module from stdin. The same seed, strings and
labels always produce the same output.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execMutate(o, cfg, fsys, mutateOptions{
				output:   *output,
				pipeline: *pipeline,
				verbose:  *verbose,
			}, args)
		},
	}
}

type mutateOptions struct {
	output   string
	pipeline string
	verbose  bool
}

func execMutate(o *IO, cfg *config.Config, fsys fs.FS, opts mutateOptions, args []string) error {
	if len(args) == 0 {
		return ErrInputRequired
	}

	if len(args) > 1 {
		return fmt.Errorf("%w: %v", ErrTooManyInputs, args)
	}

	passes, err := jobsec.ParsePipeline(opts.pipeline)
	if err != nil {
		return err
	}

	if opts.verbose {
		o.ErrPrintln("Using seed value:", cfg.Seed)
	}

	// Resources first: a config error must stop the run before the module
	// is even read.
	pools, err := resource.LoadPools(fsys, cfg.StringsAbs, cfg.LabelsAbs)
	if err != nil {
		return err
	}

	if opts.verbose {
		o.ErrPrintf("Loaded %d strings from file: %s\n", len(pools.Strings), cfg.StringsAbs)
		o.ErrPrintf("Loaded %d labels from file: %s\n", len(pools.Labels), cfg.LabelsAbs)
	}

	m, err := readModule(o, fsys, cfg.EffectiveCwd, args[0])
	if err != nil {
		return err
	}

	for _, pass := range passes {
		report, err := pass.Run(m, pools, cfg.Seed)
		if err != nil {
			return fmt.Errorf("pass %s: %w", pass.Name, err)
		}

		if opts.verbose {
			printReport(o, pass.Name, report)
		}
	}

	return writeModule(o, fsys, cfg.EffectiveCwd, opts.output, m)
}

func readModule(o *IO, fsys fs.FS, workDir, path string) (*ir.Module, error) {
	var (
		data []byte
		err  error
		name = path
	)

	if path == stdioPath {
		if o.In() == nil {
			return nil, ErrNoStdin
		}

		name = "<stdin>"

		data, err = io.ReadAll(o.In())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		abs := resolvePath(workDir, path)

		exists, existsErr := fsys.Exists(abs)
		if existsErr != nil {
			return nil, fmt.Errorf("checking module: %w", existsErr)
		}

		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, abs)
		}

		data, err = fsys.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("reading module: %w", err)
		}
	}

	m, err := asm.ParseBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModule, name, err)
	}

	return m, nil
}

func writeModule(o *IO, fsys fs.FS, workDir, path string, m *ir.Module) error {
	text := []byte(m.String())

	if path == stdioPath {
		return o.Write(text)
	}

	abs := resolvePath(workDir, path)

	lock, err := fsys.Lock(abs)
	if err != nil {
		return fmt.Errorf("locking output: %w", err)
	}
	defer func() { _ = lock.Close() }()

	if err := fsys.WriteFileAtomic(abs, text, outputPerm); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func printReport(o *IO, pass string, report jobsec.Report) {
	o.ErrPrintf("%s: decoy slot @%s, %d decoy strings\n", pass, report.Slot, report.Decoys)

	for _, fn := range report.Functions {
		o.ErrPrintf("  @%s: %d decoy stores over %d instructions\n", fn.Name, fn.Injected, fn.Instructions)
	}

	o.ErrPrintf("%s: %d decoy stores, %d blocks renamed\n", pass, report.Injected, report.RenamedBlocks)
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}
