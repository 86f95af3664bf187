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

package cmap

import (
	"fmt"

	"sap/font"
)

// format0 is the byte-encoding table: a flat array of 256 glyph ids.
type format0 struct {
	glyphIDArray [256]uint8
}

func decodeFormat0(data []byte) (Subtable, error) {
	data = data[6:]
	if len(data) != 256 {
		return nil, fmt.Errorf("cmap: format 0: expected 256 bytes, got %d", len(data))
	}
	res := &format0{}
	copy(res.glyphIDArray[:], data)
	return res, nil
}

func (cmap *format0) Lookup(code font.Codepoint) font.GlyphId {
	if code < 256 {
		return font.GlyphId(cmap.glyphIDArray[code])
	}
	return 0
}

func (cmap *format0) CodeRange() (low, high font.Codepoint) {
	for i, c := range cmap.glyphIDArray {
		if c == 0 {
			continue
		}
		if low == 0 {
			low = font.Codepoint(i)
		}
		high = font.Codepoint(i)
	}
	return
}
