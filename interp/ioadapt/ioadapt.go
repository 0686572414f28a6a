// Package ioadapt wires the interpreter's READ/WRITE/DPRINT/BREAK
// instructions to the process's standard streams or a file named on the
// command line, mirroring the teacher's own split between vm/io.go (the
// blocking rune/line readers behind IN) and the CLI's stdout writer.
package ioadapt

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/AdamBalu/IPP/interp/ipperr"
)

// Input is the source READ draws from: either stdin or the file named by
// --input. It is a thin line-oriented reader since IPPcode22 READ always
// consumes one whole token (line) at a time, whatever the requested type
// (int/string/bool/nil).
type Input struct {
	r    *bufio.Reader
	c    io.Closer
	eof  bool
}

// NewInput wraps r. If r also implements io.Closer, Close releases it.
func NewInput(r io.Reader) *Input {
	in := &Input{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		in.c = c
	}
	return in
}

// OpenInputFile opens path for READ's input stream. The caller must Close
// it on every exit path (SPEC_FULL.md §5: "input file handle ... released
// on all exit paths").
func OpenInputFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ipperr.Wrapf(err, ipperr.FileOpen, "cannot open input file %q", path)
	}
	return NewInput(f), nil
}

// Close releases the underlying file, if any. Safe to call on a stdin-backed Input.
func (in *Input) Close() error {
	if in.c == nil {
		return nil
	}
	return in.c.Close()
}

// ReadLine returns the next line with its trailing newline stripped. ok is
// false once the stream is exhausted; READ's caller treats that as
// end-of-input, yielding Nil per spec.md §4.4.
func (in *Input) ReadLine() (line string, ok bool) {
	if in.eof {
		return "", false
	}
	s, err := in.r.ReadString('\n')
	if err == io.EOF {
		in.eof = true
		if s == "" {
			return "", false
		}
		return trimNewline(s), true
	}
	if err != nil {
		in.eof = true
		return "", false
	}
	return trimNewline(s), true
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// Output writes WRITE/DPRINT/BREAK rendering to the process's stdout and
// stderr streams without adding or assuming any trailing newline, since
// spec.md requires WRITE/DPRINT to render a value's text exactly.
type Output struct {
	Out io.Writer
	Err io.Writer
}

// NewOutput returns an Output over os.Stdout and os.Stderr.
func NewOutput() *Output {
	return &Output{Out: os.Stdout, Err: os.Stderr}
}

// Write writes s to stdout (the target of WRITE).
func (o *Output) Write(s string) error {
	_, err := io.WriteString(o.Out, s)
	if err != nil {
		return errors.Wrap(err, "write to stdout")
	}
	return nil
}

// DPrint writes s to stderr (the target of DPRINT).
func (o *Output) DPrint(s string) error {
	_, err := io.WriteString(o.Err, s)
	if err != nil {
		return errors.Wrap(err, "write to stderr")
	}
	return nil
}

// Diagnostic writes a BREAK state dump to stderr.
func (o *Output) Diagnostic(s string) {
	io.WriteString(o.Err, s)
}
