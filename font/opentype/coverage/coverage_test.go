package coverage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sap/font"
)

func TestReadFormat1(t *testing.T) {
	data := []byte{0, 1, 0, 3, 0, 5, 0, 7, 0, 9}
	table, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Table{5: 0, 7: 1, 9: 2}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("coverage table mismatch (-want +got):\n%s", diff)
	}
	if !table.Contains(7) || table.Contains(6) {
		t.Error("Contains gave the wrong answer")
	}
	if diff := cmp.Diff([]font.GlyphId{5, 7, 9}, table.Glyphs()); diff != "" {
		t.Errorf("Glyphs() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFormat2(t *testing.T) {
	// one range: glyphs 10..12 at coverage indices 0..2
	data := []byte{0, 2, 0, 1, 0, 10, 0, 12, 0, 0}
	table, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	want := Table{10: 0, 11: 1, 12: 2}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("coverage table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsUnsortedFormat1(t *testing.T) {
	data := []byte{0, 1, 0, 2, 0, 9, 0, 5}
	if _, err := Read(data); err == nil {
		t.Error("expected an error for unsorted glyph list")
	}
}

func TestReadRejectsUnknownFormat(t *testing.T) {
	data := []byte{0, 9}
	if _, err := Read(data); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
