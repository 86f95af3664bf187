package aat

import (
	"encoding/binary"
	"testing"

	"sap/font"
)

func put16(buf []byte, v uint16) []byte { return append(buf, byte(v>>8), byte(v)) }
func put32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// buildExtendedStateTable assembles a minimal STX table with a format 1
// class table mapping glyph 100 to class 4, two states, and three
// entries: state 0 stays put except on class 4 (-> state 1); state 1
// on class 4 transitions back to state 0 without advancing.
func buildExtendedStateTable() []byte {
	const (
		headerLen = 16
		classOff  = headerLen
	)
	classTable := []byte{}
	classTable = put16(classTable, 1)   // format 1
	classTable = put16(classTable, 100) // startGlyphID
	classTable = put16(classTable, 1)   // glyphCount
	classTable = put16(classTable, 4)   // class value

	stateOff := classOff + len(classTable)
	stateArray := []byte{}
	// state 0: classes 0..3 -> entry 0, class 4 -> entry 1
	for c := 0; c < 4; c++ {
		stateArray = put16(stateArray, 0)
	}
	stateArray = put16(stateArray, 1)
	// state 1: classes 0..3 -> entry 0, class 4 -> entry 2
	for c := 0; c < 4; c++ {
		stateArray = put16(stateArray, 0)
	}
	stateArray = put16(stateArray, 2)

	entryOff := stateOff + len(stateArray)
	entries := []byte{}
	entries = put16(entries, 0) // entry 0: nextState=0
	entries = put16(entries, 0) // flags=0
	entries = put16(entries, 1) // entry 1: nextState=1
	entries = put16(entries, 0) // flags=0
	entries = put16(entries, 0) // entry 2: nextState=0
	entries = put16(entries, FlagDontAdvance)

	var header []byte
	header = put32(header, 5) // nClasses
	header = put32(header, uint32(classOff))
	header = put32(header, uint32(stateOff))
	header = put32(header, uint32(entryOff))

	data := append(header, classTable...)
	data = append(data, stateArray...)
	data = append(data, entries...)
	return data
}

func TestReadExtendedAndRun(t *testing.T) {
	data := buildExtendedStateTable()
	st, err := ReadExtended(data, 0)
	if err != nil {
		t.Fatal(err)
	}

	if got := st.ClassOf(100); got != 4 {
		t.Errorf("ClassOf(100) = %d, want 4", got)
	}
	if got := st.ClassOf(999); got != ClassOutOfBounds {
		t.Errorf("ClassOf(999) = %d, want ClassOutOfBounds", got)
	}

	glyphs := []font.GlyphId{100, 100, 999}
	classes := make([]uint16, len(glyphs))
	for i, g := range glyphs {
		classes[i] = st.ClassOf(g)
	}

	type call struct {
		i     int
		flags uint16
	}
	var calls []call
	Run(st, classes, Forward, func(i int, flags uint16, extra [2]uint16) {
		calls = append(calls, call{i, flags})
	})

	want := []call{
		{0, 0},
		{1, FlagDontAdvance},
		{1, 0},
		{2, 0},
	}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d: %+v", len(calls), len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}
