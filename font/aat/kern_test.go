package aat

import "testing"

func TestReadKernV0Format0(t *testing.T) {
	var subtable []byte
	subtable = put16(subtable, 0) // subtable version
	lengthPos := len(subtable)
	subtable = put16(subtable, 0) // length placeholder
	subtable = append(subtable, 0, 0b00000001) // format 0, flags: horizontal kern data
	subtable = put16(subtable, 2)              // nPairs
	subtable = put16(subtable, 0)               // searchRange
	subtable = put16(subtable, 0)               // entrySelector
	subtable = put16(subtable, 0)               // rangeShift
	subtable = append(subtable, pair(10, 20, 50)...)
	subtable = append(subtable, pair(10, 21, -30)...)

	length := uint16(len(subtable))
	subtable[lengthPos] = byte(length >> 8)
	subtable[lengthPos+1] = byte(length)

	var data []byte
	data = put16(data, 0) // version
	data = put16(data, 1) // nTables
	data = append(data, subtable...)

	k, err := ReadKern(data)
	if err != nil {
		t.Fatal(err)
	}
	if v := k[GlyphPair{10, 20}]; v != 50 {
		t.Errorf("kern[10,20] = %d, want 50", v)
	}
	if v := k[GlyphPair{10, 21}]; v != -30 {
		t.Errorf("kern[10,21] = %d, want -30", v)
	}
}

func pair(left, right uint16, value int16) []byte {
	var b []byte
	b = put16(b, left)
	b = put16(b, right)
	b = put16(b, uint16(value))
	return b
}

func TestReadKernUnsupportedFormatIsSkipped(t *testing.T) {
	var subtable []byte
	subtable = put16(subtable, 0) // subtable version
	lengthPos := len(subtable)
	subtable = put16(subtable, 0) // length placeholder
	subtable = append(subtable, 1, 0b00000001) // format 1 (state table), unsupported
	subtable = put16(subtable, 0)

	length := uint16(len(subtable))
	subtable[lengthPos] = byte(length >> 8)
	subtable[lengthPos+1] = byte(length)

	var data []byte
	data = put16(data, 0)
	data = put16(data, 1)
	data = append(data, subtable...)

	k, err := ReadKern(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(k) != 0 {
		t.Errorf("expected no kerning pairs, got %v", k)
	}
}
