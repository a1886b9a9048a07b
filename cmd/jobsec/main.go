// Package main provides jobsec, a seed-driven LLVM IR obfuscator.
package main

import (
	"os"
	"strings"

	"github.com/calvinalkan/jobsec/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env))
}
