// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package hmtx decodes the "hmtx" table: the per-glyph advance widths
// consulted for every shaping and line-breaking measurement.
package hmtx

import (
	"sap/font"
	"sap/font/sfntio"
)

// Table holds per-glyph advance widths. Glyphs beyond the last explicit
// entry repeat the final advance, per the "hmtx" run-length convention.
type Table struct {
	advances []uint16
}

// Read decodes an "hmtx" table body holding numGlyphs glyphs, of which
// numLong carry an explicit advance width (the rest repeat the last
// one); numLong is hhea.Info.NumOfLongHorMetrics.
func Read(body []byte, numGlyphs, numLong int) (*Table, error) {
	if numLong <= 0 || numLong > numGlyphs {
		return nil, &font.InvalidFontError{SubSystem: "font/hmtx", Reason: "invalid long metric count"}
	}
	advances := make([]uint16, numGlyphs)
	pos := 0
	var last uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			w, err := sfntio.Peek16(body[pos:])
			if err != nil {
				return nil, &font.InvalidFontError{SubSystem: "font/hmtx", Reason: "table too short"}
			}
			last = w
			pos += 4 // advance width + left side bearing
		} else {
			if pos+2 > len(body) {
				return nil, &font.InvalidFontError{SubSystem: "font/hmtx", Reason: "table too short"}
			}
			pos += 2 // trailing left-side-bearing-only entry
		}
		advances[i] = last
	}
	return &Table{advances: advances}, nil
}

// Advance returns the advance width of gid, in font design units,
// clamping to the last explicit entry for glyphs past the table end.
func (t *Table) Advance(gid font.GlyphId) uint16 {
	i := int(gid)
	if i >= len(t.advances) {
		i = len(t.advances) - 1
	}
	if i < 0 {
		return 0
	}
	return t.advances[i]
}
