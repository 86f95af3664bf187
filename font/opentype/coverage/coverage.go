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

// Package coverage reads OpenType "Coverage Tables".
// https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#coverage-table
package coverage

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"sap/font"
	"sap/font/sfntio"
)

// Table maps a covered glyph to its coverage index. The map from glyph
// id to coverage index is strictly monotonic in glyph id.
type Table map[font.GlyphId]int

// Contains reports whether gid is covered.
func (table Table) Contains(gid font.GlyphId) bool {
	_, ok := table[gid]
	return ok
}

// Glyphs returns the covered glyphs in increasing order.
func (table Table) Glyphs() []font.GlyphId {
	keys := maps.Keys(table)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Read decodes a coverage table at the start of data (formats 1 and 2).
func Read(data []byte) (Table, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	table := make(Table)

	switch format {
	case 1:
		glyphCount, err := sfntio.Peek16(data[2:])
		if err != nil {
			return nil, err
		}
		prev := -1
		for i := 0; i < int(glyphCount); i++ {
			gid, err := sfntio.Peek16(data[4+2*i:])
			if err != nil {
				return nil, err
			}
			if int(gid) <= prev {
				return nil, &font.InvalidFontError{SubSystem: "font/opentype/coverage", Reason: "invalid coverage table (format 1)"}
			}
			table[font.GlyphId(gid)] = i
			prev = int(gid)
		}

	case 2:
		rangeCount, err := sfntio.Peek16(data[2:])
		if err != nil {
			return nil, err
		}
		pos := 0
		prev := -1
		for i := 0; i < int(rangeCount); i++ {
			base := 4 + 6*i
			if base+6 > len(data) {
				return nil, sfntio.ErrShortBuffer
			}
			buf := data[base : base+6]
			startGlyphID := int(buf[0])<<8 | int(buf[1])
			endGlyphID := int(buf[2])<<8 | int(buf[3])
			startCoverageIndex := int(buf[4])<<8 | int(buf[5])
			if startCoverageIndex != pos || startGlyphID <= prev || endGlyphID < startGlyphID {
				return nil, &font.InvalidFontError{SubSystem: "font/opentype/coverage", Reason: "invalid coverage table (format 2)"}
			}
			for gid := startGlyphID; gid <= endGlyphID; gid++ {
				table[font.GlyphId(gid)] = pos
				pos++
			}
			prev = endGlyphID
		}

	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/coverage", Feature: fmt.Sprintf("coverage format %d", format)}
	}

	return table, nil
}
