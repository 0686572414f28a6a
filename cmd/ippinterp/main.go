// Command ippinterp loads and executes an IPPcode22 XML program, wiring
// together the xmlload, program, exec and ioadapt packages the way the
// teacher's cmd/retro wires together vm, asm and lang/retro.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/AdamBalu/IPP/interp/exec"
	"github.com/AdamBalu/IPP/interp/ioadapt"
	"github.com/AdamBalu/IPP/interp/ipperr"
	"github.com/AdamBalu/IPP/interp/program"
	"github.com/AdamBalu/IPP/interp/xmlload"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ippinterp --source=FILE | --input=FILE [--source=FILE --input=FILE] [--stats]")
	flag.PrintDefaults()
}

func main() {
	var (
		sourcePath string
		inputPath  string
		help       bool
		stats      bool
	)
	flag.StringVar(&sourcePath, "source", "", "read the IPPcode22 XML program from `FILE` (default: stdin)")
	flag.StringVar(&inputPath, "input", "", "read READ's input from `FILE` (default: stdin)")
	flag.BoolVar(&help, "help", false, "print usage and exit")
	flag.BoolVar(&help, "h", false, "print usage and exit")
	flag.BoolVar(&stats, "stats", false, "print the executed instruction count to stderr on exit")
	flag.Usage = usage
	flag.Parse()

	// --help/-h is mutually exclusive with every other flag and with any
	// positional argument (spec.md §6): it only succeeds when it is the
	// sole thing on the command line.
	if help && flag.NFlag() == 1 && flag.NArg() == 0 {
		usage()
		os.Exit(0)
	}

	if help {
		atExit(nil, ipperr.New(ipperr.Params, "--help/-h must be the only argument given"))
	}
	if flag.NArg() > 0 {
		atExit(nil, ipperr.New(ipperr.Params, "unexpected positional argument(s)"))
	}
	// SPEC_FULL.md §7: both --source and --input defaulting to stdin at
	// once would make READ's stream ambiguous, so at least one is required.
	if sourcePath == "" && inputPath == "" {
		atExit(nil, ipperr.New(ipperr.Params, "at least one of --source or --input is required"))
	}

	source, closeSource, err := openOrStdin(sourcePath)
	if err != nil {
		atExit(nil, err)
	}
	defer closeSource()

	prog, err := xmlload.Load(source)
	if err != nil {
		atExit(nil, err)
	}

	labels, err := program.BuildLabels(prog)
	if err != nil {
		atExit(nil, err)
	}

	in, err := openInput(inputPath)
	if err != nil {
		atExit(nil, err)
	}
	defer in.Close()

	interp := exec.New(prog, labels, in, ioadapt.NewOutput())
	runErr := interp.Run()

	if stats {
		fmt.Fprintf(os.Stderr, "executed %d instruction(s)\n", interp.ExecutedCount())
	}

	if runErr == nil {
		os.Exit(0)
	}
	if sig, ok := runErr.(*exec.ExitSignal); ok {
		os.Exit(sig.Code)
	}
	atExit(interp, runErr)
}

func openOrStdin(path string) (*os.File, func() error, error) {
	if path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ipperr.Wrapf(err, ipperr.FileOpen, "cannot open source file %q", path)
	}
	return f, f.Close, nil
}

func openInput(path string) (*ioadapt.Input, error) {
	if path == "" {
		return ioadapt.NewInput(os.Stdin), nil
	}
	return ioadapt.OpenInputFile(path)
}

// atExit prints the error's classification and terminates with its
// mapped exit code, mirroring the teacher's own atExit-then-os.Exit
// shape in cmd/retro/main.go.
func atExit(interp *exec.Interpreter, err error) {
	ie, ok := ipperr.As(err)
	if !ok {
		ie = ipperr.Wrap(err, ipperr.Internal, "unclassified error")
	}
	if interp != nil {
		fmt.Fprintf(os.Stderr, "%v (after %d instruction(s))\n", ie, interp.ExecutedCount())
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", ie)
	}
	os.Exit(ie.Kind.ExitCode())
}
