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

import "sap/font"

// format4 is the segment-mapping-to-delta-values table used by nearly
// all BMP-only Windows cmaps.
type format4 map[uint16]font.GlyphId

func decodeFormat4(in []byte, code2rune func(c int) font.Codepoint) (Subtable, error) {
	if code2rune == nil {
		code2rune = func(c int) font.Codepoint { return font.Codepoint(c) }
	}

	if len(in)%2 != 0 || len(in) < 16 {
		return nil, errMalformedSubtable
	}

	segCountX2 := int(in[6])<<8 | int(in[7])
	if segCountX2%2 != 0 || 4*segCountX2+16 > len(in) {
		return nil, errMalformedSubtable
	}
	segCount := segCountX2 / 2

	words := make([]uint16, 0, (len(in)-14)/2)
	for i := 14; i < len(in); i += 2 {
		words = append(words, uint16(in[i])<<8|uint16(in[i+1]))
	}
	endCode := words[:segCount]
	startCode := words[segCount+1 : 2*segCount+1]
	idDelta := words[2*segCount+1 : 3*segCount+1]
	idRangeOffset := words[3*segCount+1 : 4*segCount+1]
	glyphIDArray := words[4*segCount+1:]

	cm := format4{}
	prevEnd := uint32(0)
	for k := 0; k < segCount; k++ {
		start := uint32(startCode[k])
		end := uint32(endCode[k]) + 1
		if start < prevEnd || end <= start {
			return nil, errMalformedSubtable
		}
		prevEnd = end

		if idRangeOffset[k] == 0 {
			delta := idDelta[k]
			for idx := start; idx < end; idx++ {
				c := font.GlyphId(uint16(idx) + delta)
				if c != 0 {
					cm[uint16(code2rune(int(idx)))] = c
				}
			}
		} else {
			d := int(idRangeOffset[k])/2 - (segCount - k)
			if d < 0 || d+int(end-start) > len(glyphIDArray) {
				if start == 0xFFFF {
					continue
				}
				return nil, errMalformedSubtable
			}
			for idx := start; idx < end; idx++ {
				c := font.GlyphId(glyphIDArray[d+int(idx-start)])
				if c != 0 {
					cm[uint16(code2rune(int(idx)))] = c
				}
			}
		}
	}
	return cm, nil
}

func (cm format4) Lookup(r font.Codepoint) font.GlyphId {
	return cm[uint16(r)]
}

func (cm format4) CodeRange() (low, high font.Codepoint) {
	if len(cm) == 0 {
		return
	}
	low = 1<<31 - 1
	for k := range cm {
		if font.Codepoint(k) < low {
			low = font.Codepoint(k)
		}
		if font.Codepoint(k) > high {
			high = font.Codepoint(k)
		}
	}
	return
}
