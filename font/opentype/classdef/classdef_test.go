package classdef

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadFormat1(t *testing.T) {
	data := []byte{0, 1, 0, 10, 0, 3, 0, 0, 0, 2, 0, 1}
	table, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	// glyph 10 -> class 0 (omitted), 11 -> 2, 12 -> 1
	want := Table{11: 2, 12: 1}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("class table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFormat2(t *testing.T) {
	data := []byte{
		0, 2, 0, 1,
		0, 20, 0, 22, 0, 5,
	}
	table, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Table{20: 5, 21: 5, 22: 5}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("class table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsOverlappingRanges(t *testing.T) {
	data := []byte{
		0, 2, 0, 2,
		0, 20, 0, 25, 0, 1,
		0, 24, 0, 30, 0, 2,
	}
	if _, err := Read(data); err == nil {
		t.Error("expected an error for overlapping ranges")
	}
}
