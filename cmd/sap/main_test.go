package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeriveOutputNameReplacesExtension(t *testing.T) {
	got := deriveOutputName("doc.sap")
	if got != "doc.pdf" {
		t.Fatalf("expected doc.pdf, got %q", got)
	}
}

func TestDeriveOutputNameAppendsExtensionWhenMissing(t *testing.T) {
	got := deriveOutputName("doc")
	if got != "doc.pdf" {
		t.Fatalf("expected doc.pdf, got %q", got)
	}
}

func TestDeriveOutputNameIgnoresDotsInDirectory(t *testing.T) {
	got := deriveOutputName("a.b/doc")
	if got != "a.b/doc.pdf" {
		t.Fatalf("expected a.b/doc.pdf, got %q", got)
	}
}

func TestRunMissingArgumentExitsOne(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("expected exit code 1 for a missing input argument, got %d", code)
	}
}

func TestRunUnknownFlagExitsOne(t *testing.T) {
	if code := run([]string{"--nope", "doc.sap"}); code != 1 {
		t.Fatalf("expected exit code 1 for an unrecognised flag, got %d", code)
	}
}

// TestRunNoParserExitsOne exercises the real, honest failure mode of
// compileAndRender: reading a file that exists but has no surface-
// syntax parser to hand it to still reports a diagnostic (exit 1),
// not an internal panic (exit 2).
func TestRunNoParserExitsOne(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.sap")
	if err := os.WriteFile(input, []byte("placeholder"), 0o644); err != nil {
		t.Fatal(err)
	}
	if code := run([]string{input}); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunMissingInputFileExitsOne(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "missing.sap")}); code != 1 {
		t.Fatalf("expected exit code 1 for an unreadable input file, got %d", code)
	}
}
