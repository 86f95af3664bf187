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

// Package classdef reads OpenType "Class Definition Tables".
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#classDefTbl
package classdef

import (
	"fmt"

	"sap/font"
	"sap/font/sfntio"
)

// Table maps a glyph to its class. Glyphs absent from the map are
// implicitly class 0.
type Table map[font.GlyphId]uint16

// Read decodes a class definition table at the start of data (formats
// 1 and 2).
func Read(data []byte) (Table, error) {
	version, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}

	switch version {
	case 1:
		startGlyphID, err := sfntio.Peek16(data[2:])
		if err != nil {
			return nil, err
		}
		glyphCount, err := sfntio.Peek16(data[4:])
		if err != nil {
			return nil, err
		}
		if int(startGlyphID)+int(glyphCount)-1 > 0xFFFF {
			return nil, &font.InvalidFontError{SubSystem: "font/opentype/classdef", Reason: "glyph count too large"}
		}

		res := make(Table, glyphCount)
		for i := 0; i < int(glyphCount); i++ {
			classValue, err := sfntio.Peek16(data[6+2*i:])
			if err != nil {
				return nil, err
			}
			if classValue != 0 {
				res[font.GlyphId(startGlyphID)+font.GlyphId(i)] = classValue
			}
		}
		return res, nil

	case 2:
		classRangeCount, err := sfntio.Peek16(data[2:])
		if err != nil {
			return nil, err
		}

		res := Table{}
		var prevEnd font.GlyphId
		for i := 0; i < int(classRangeCount); i++ {
			base := 4 + 6*i
			if base+6 > len(data) {
				return nil, sfntio.ErrShortBuffer
			}
			buf := data[base : base+6]
			startGlyphID := font.GlyphId(buf[0])<<8 | font.GlyphId(buf[1])
			endGlyphID := font.GlyphId(buf[2])<<8 | font.GlyphId(buf[3])
			classValue := uint16(buf[4])<<8 | uint16(buf[5])

			if i > 0 && startGlyphID <= prevEnd {
				return nil, &font.InvalidFontError{SubSystem: "font/opentype/classdef", Reason: "overlapping ranges"}
			}
			prevEnd = endGlyphID

			if classValue != 0 {
				for j := startGlyphID; j <= endGlyphID; j++ {
					res[j] = classValue
				}
			}
		}
		return res, nil

	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/classdef", Feature: fmt.Sprintf("class definition table version %d", version)}
	}
}
