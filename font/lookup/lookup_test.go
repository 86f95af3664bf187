package lookup

import (
	"testing"

	"sap/font"
)

func TestFormat0(t *testing.T) {
	data := []byte{0, 0, 0, 5, 0, 7, 0, 9}
	l, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := l.Search(1); !ok || v != 7 {
		t.Errorf("Search(1) = %d, %v; want 7, true", v, ok)
	}
}

func TestFormat6(t *testing.T) {
	data := []byte{
		0, 6, // format
		0, 4, // unitSize (unused by Search, informational)
		0, 2, // nUnits
		0, 0, 0, 0, 0, 0, // searchRange, entrySelector, rangeShift
		0, 3, 0, 100,
		0, 5, 0, 200,
	}
	l, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := l.Search(5); !ok || v != 200 {
		t.Errorf("Search(5) = %d, %v; want 200, true", v, ok)
	}
	if _, ok := l.Search(4); ok {
		t.Error("Search(4) should miss")
	}
}

func TestFormat8(t *testing.T) {
	data := []byte{
		0, 8, // format
		0, 10, // first
		0, 3, // count
		0, 50, 0, 60, 0, 70,
	}
	l, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := l.Search(11); !ok || v != 60 {
		t.Errorf("Search(11) = %d, %v; want 60, true", v, ok)
	}
	if _, ok := l.Search(13); ok {
		t.Error("Search(13) should be out of range")
	}

	got := l.ToMap(20)
	want := map[font.GlyphId]uint64{10: 50, 11: 60, 12: 70}
	if len(got) != len(want) {
		t.Fatalf("ToMap length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ToMap[%d] = %d, want %d", k, got[k], v)
		}
	}
}

func TestFormat10(t *testing.T) {
	data := []byte{
		0, 10, // format
		0, 4, // unitSize (bytes per element)
		0, 5, // first
		0, 3, // count
		0, 0, 0, 11, 0, 0, 0, 22, 0, 0, 0, 33,
	}
	l, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := l.Search(6); !ok || v != 22 {
		t.Errorf("Search(6) = %d, %v; want 22, true", v, ok)
	}
}
