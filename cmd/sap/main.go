// Command sap runs the typesetting engine's driver, §6's CLI contract,
// for one input script, optionally re-running on every source change.
// It checks its arguments and that the input is readable, then reports
// a parse error, since no surface-syntax parser is wired into this
// build; it does not write a PDF.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"sap/diag"
	"sap/errs"
)

// stringList collects a repeatable flag (-I, -L) into an ordered
// slice, the same shape flag.Value wants for multi-valued options.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code directly rather than calling
// os.Exit itself, so main stays a one-line adapter and the exit-code
// rules (0/1/2, §6) are unit-testable.
func run(args []string) int {
	fs := flag.NewFlagSet("sap", flag.ContinueOnError)
	output := fs.String("o", "", "output PDF file (default: input with .pdf extension)")
	var includeDirs, libDirs stringList
	fs.Var(&includeDirs, "I", "add a directory to the script include search path (repeatable)")
	fs.Var(&libDirs, "L", "add a directory to the font search path (repeatable)")
	watch := fs.Bool("watch", false, "re-run on every change to the input file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: sap <input> [-o <output>] [-I <dir>]* [-L <dir>]* [--watch]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	input := fs.Arg(0)
	out := *output
	if out == "" {
		out = deriveOutputName(input)
	}

	if *watch {
		return runWatch(input, out, includeDirs, libDirs)
	}
	return runOnce(input, out, includeDirs, libDirs)
}

// runOnce runs the pipeline exactly once, mapping the outcome to §6's
// exit codes: 0 success, 1 a reported diagnostic (parse/type/eval/io),
// 2 an internal-error panic recovered at this boundary. Diagnostics are
// collected in a Bag and written to stderr once the run is over, the
// same two-phase collect-then-render split diag.Bag is built for.
func runOnce(input, output string, includeDirs, libDirs stringList) (code int) {
	d := &diag.Bag{}
	defer d.WriteTo(os.Stderr)

	defer func() {
		if r := recover(); r != nil {
			if abortErr, ok := r.(*errs.Error); ok && abortErr.Kind == errs.Internal {
				d.Report(abortErr, diag.Error)
				code = 2
				return
			}
			panic(r) // not one of ours: a genuine bug, let it crash loudly
		}
	}()

	if err := compileAndRender(input, output, includeDirs, libDirs); err != nil {
		if e, ok := err.(*errs.Error); ok {
			d.Report(e, diag.Error)
		} else {
			d.Report(&errs.Error{Kind: errs.IO, Msg: err.Error()}, diag.Error)
		}
		return 1
	}
	return 0
}

// runWatch re-runs runOnce on every write to input, using fsnotify so
// the same code path works across the kqueue/inotify split §6 calls
// out; platforms fsnotify doesn't support print the documented
// diagnostic and fall back to a single run.
func runWatch(input, output string, includeDirs, libDirs stringList) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sap: file watching is not supported on this platform: %v\n", err)
		return runOnce(input, output, includeDirs, libDirs)
	}
	defer watcher.Close()

	if err := watcher.Add(input); err != nil {
		fmt.Fprintf(os.Stderr, "sap: cannot watch %s: %v\n", input, err)
		return 1
	}

	runOnce(input, output, includeDirs, libDirs)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				runOnce(input, output, includeDirs, libDirs)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "sap: watch error: %v\n", err)
		}
	}
}

// deriveOutputName replaces input's extension with .pdf, or appends it
// if there is none.
func deriveOutputName(input string) string {
	for i := len(input) - 1; i >= 0 && input[i] != '/'; i-- {
		if input[i] == '.' {
			return input[:i] + ".pdf"
		}
	}
	return input + ".pdf"
}
