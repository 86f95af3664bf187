package main

import (
	"os"

	"sap/errs"
)

// compileAndRender drives one input file through the pipeline spec.md
// §0 draws: source -> parser (external) -> AST -> interp.typecheck ->
// typed tree -> interp.eval -> tree of BlockObject/InlineObject ->
// layout -> output.Document.Render. includeDirs and libDirs are the
// script's include search path and font search path respectively,
// threaded through from the -I/-L flags to whatever stage ends up
// resolving `include` statements and font family names.
//
// The parser itself is explicitly external to this module (spec.md
// §0: "source -> parser (external) -> AST"), and no such front end
// exists anywhere in the reference pack this module was built
// against — every example repo either consumes an already-parsed
// representation or has no scripting language at all. So this
// function stops at the one boundary it cannot cross honestly: it
// checks the input is readable, then reports that no parser is wired,
// rather than inventing one. Everything downstream of the AST
// (interp.Checker, interp.Exec, layout.BreakParagraph/LayoutContainer,
// output.Document) is fully built and exercised by its own package's
// tests.
func compileAndRender(input, output string, includeDirs, libDirs []string) error {
	if _, err := os.Stat(input); err != nil {
		return errs.New(errs.IO, errs.Location{File: input}, "cannot read input: %v", err)
	}
	return errs.New(errs.Parse, errs.Location{File: input},
		"no surface-syntax parser is wired into this build; supply an already-parsed AST via the interp package directly")
}
