package cli

import (
	"fmt"
	"io"
)

// IO routes command output. Module text and requested listings go to out;
// diagnostics and errors go to errOut.
type IO struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

// In returns the input stream. It may be nil when no stdin is attached.
func (o *IO) In() io.Reader {
	return o.in
}

// Err returns an IO whose standard output is this IO's error stream.
// Used to print help text after a usage error.
func (o *IO) Err() *IO {
	return &IO{in: o.in, out: o.errOut, errOut: o.errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Write writes raw bytes to stdout.
func (o *IO) Write(p []byte) error {
	_, err := o.out.Write(p)

	return err
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// ErrPrintf writes formatted output to stderr.
func (o *IO) ErrPrintf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, format, a...)
}
