package aat

import (
	"testing"

	"sap/font"
)

func ids(vs ...int) []font.GlyphId {
	out := make([]font.GlyphId, len(vs))
	for i, v := range vs {
		out[i] = font.GlyphId(v)
	}
	return out
}

func TestRearrangementVerbs(t *testing.T) {
	tests := []struct {
		verb uint16
		in   []font.GlyphId
		want []font.GlyphId
	}{
		{1, ids(1, 2), ids(2, 1)},          // Ax => xA
		{2, ids(1, 2), ids(2, 1)},          // xD => Dx
		{3, ids(1, 2, 3), ids(3, 2, 1)},    // AxD => DxA
		{4, ids(1, 2, 3), ids(3, 1, 2)},    // ABx => xAB
		{5, ids(1, 2, 3), ids(3, 2, 1)},    // ABx => xBA
		{6, ids(1, 2, 3), ids(2, 3, 1)},    // xCD => CDx
		{7, ids(1, 2, 3), ids(3, 2, 1)},    // xCD => DCx
		{12, ids(1, 2, 3, 4), ids(3, 4, 1, 2)}, // ABxCD => CDxAB
		{15, ids(1, 2, 3, 4), ids(4, 3, 2, 1)}, // ABxCD => DCxBA
	}
	for _, tc := range tests {
		ws := append([]font.GlyphId(nil), tc.in...)
		applyRearrangementVerb(ws, tc.verb)
		if len(ws) != len(tc.want) {
			t.Fatalf("verb %d: length changed: %v", tc.verb, ws)
		}
		for i := range ws {
			if ws[i] != tc.want[i] {
				t.Errorf("verb %d: got %v, want %v", tc.verb, ws, tc.want)
				break
			}
		}
	}
}

func TestRearrangementVerbZeroIsNoop(t *testing.T) {
	ws := ids(1, 2, 3)
	orig := append([]font.GlyphId(nil), ws...)
	applyRearrangementVerb(ws, 0)
	for i := range ws {
		if ws[i] != orig[i] {
			t.Errorf("verb 0 modified input: got %v, want %v", ws, orig)
		}
	}
}

func TestApplyNonContextual(t *testing.T) {
	// format 0 lookup: glyph i -> i+100
	body := []byte{0, 0}
	for i := 0; i < 5; i++ {
		body = put16(body, uint16(i+100))
	}
	glyphs := ids(0, 2, 4)
	out := applyNonContextual(body, glyphs)
	want := ids(100, 102, 104)
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("applyNonContextual: got %v, want %v", out, want)
			break
		}
	}
}
