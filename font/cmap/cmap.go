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

// Package cmap decodes "cmap" subtables, the codepoint-to-glyph side
// of the bidirectional map the spec's font component needs (the
// reverse, glyph-to-codepoint, direction is reconstructed by the
// caller from the forward map since none of the supported formats are
// naturally invertible).
package cmap

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"

	"sap/font"
	"sap/font/mac"
	"sap/font/sfntio"
)

// Subtable maps codepoints to glyph ids.
type Subtable interface {
	Lookup(code font.Codepoint) font.GlyphId
	CodeRange() (low, high font.Codepoint)
}

// Key selects one subtable of a "cmap" table by platform/encoding/language.
type Key struct {
	PlatformID uint16
	EncodingID uint16
	Language   uint16
}

// Table is the set of subtables carried by one font's "cmap" table,
// each subtable still an unparsed byte slice until Get is called.
type Table map[Key][]byte

var (
	errMalformedCmap         = fmt.Errorf("cmap: malformed table")
	errMalformedSubtable     = fmt.Errorf("cmap: malformed subtable")
	errUnsupportedCmapFormat = fmt.Errorf("cmap: unsupported subtable format")
)

// Decode parses a "cmap" table's header and locates its subtables
// without decoding them.
func Decode(data []byte) (Table, error) {
	const minLength = 10

	if len(data) < 4 {
		return nil, errMalformedCmap
	}
	version, _ := sfntio.Peek16(data)
	if version != 0 {
		return nil, &font.NotSupportedError{SubSystem: "font/cmap", Feature: "table version"}
	}
	numTables := int(data[2])<<8 | int(data[3])
	if len(data) < 4+8*numTables {
		return nil, errMalformedCmap
	}

	endOfHeader := uint32(4 + 8*numTables)
	endOfData := uint32(len(data))

	type seg struct{ start, end uint32 }
	var segs []seg

	res := make(Table)
	for i := 0; i < numTables; i++ {
		platformID := uint16(data[4+i*8])<<8 | uint16(data[5+i*8])
		if platformID > 4 {
			return nil, errMalformedCmap
		}
		encodingID := uint16(data[6+i*8])<<8 | uint16(data[7+i*8])

		o := uint32(data[8+i*8])<<24 | uint32(data[9+i*8])<<16 |
			uint32(data[10+i*8])<<8 | uint32(data[11+i*8])
		if o < endOfHeader || o > endOfData-minLength {
			return nil, errMalformedCmap
		}

		var language uint16
		var length uint32
		format := uint16(data[o])<<8 | uint16(data[o+1])
		checkLength := uint32(minLength)
		switch format {
		case 0, 2, 4, 6:
			length = uint32(data[o+2])<<8 | uint32(data[o+3])
			language = uint16(data[o+4])<<8 | uint16(data[o+5])
		case 8, 10, 12, 13:
			checkLength = 12
			if o > endOfData-checkLength {
				return nil, errMalformedCmap
			}
			length = uint32(data[o+4])<<24 | uint32(data[o+5])<<16 |
				uint32(data[o+6])<<8 | uint32(data[o+7])
			language = uint16(data[o+10])<<8 | uint16(data[o+11])
		case 14:
			length = uint32(data[o+2])<<24 | uint32(data[o+3])<<16 |
				uint32(data[o+4])<<8 | uint32(data[o+5])
		default:
			return nil, errMalformedCmap
		}
		if length < checkLength || length > endOfData-o {
			return nil, errMalformedCmap
		}

		if platformID != 1 {
			language = 0
		}

		idx := sort.Search(len(segs), func(i int) bool { return o <= segs[i].start })
		if idx == len(segs) || o != segs[idx].start {
			if idx > 0 && o < segs[idx-1].end ||
				idx < len(segs) && o+length > segs[idx].start {
				return nil, errMalformedCmap
			}
			segs = slices.Insert(segs, idx, seg{o, o + length})
		}

		res[Key{PlatformID: platformID, EncodingID: encodingID, Language: language}] = data[o : o+length]
	}

	return res, nil
}

// Get decodes the subtable stored under key.
func (ss Table) Get(key Key) (Subtable, error) {
	data, ok := ss[key]
	if !ok {
		return nil, fmt.Errorf("cmap: no such subtable")
	}

	code2rune := func(c int) font.Codepoint { return font.Codepoint(c) }
	if key.PlatformID == 1 {
		if key.EncodingID != 0 {
			return nil, &font.NotSupportedError{SubSystem: "font/cmap", Feature: "non-Roman Mac encoding"}
		}
		code2rune = func(c int) font.Codepoint {
			s := mac.Decode([]byte{byte(c)})
			for _, r := range s {
				return font.Codepoint(r)
			}
			return 0
		}
	}

	format, _ := sfntio.Peek16(data)
	switch format {
	case 0:
		return decodeFormat0(data)
	case 4:
		return decodeFormat4(data, code2rune)
	case 6:
		return decodeFormat6(data, code2rune)
	case 12:
		return decodeFormat12(data)
	default:
		return nil, errUnsupportedCmapFormat
	}
}

// GetBest selects the most useful subtable for Unicode text shaping,
// preferring full Unicode coverage over the BMP-only and vintage
// encodings.
func (ss Table) GetBest() (Subtable, error) {
	candidates := []Key{
		{3, 10, 0}, // full Unicode, Windows
		{0, 4, 0},  // full Unicode
		{3, 1, 0},  // BMP, Windows
		{0, 3, 0},  // BMP
		{1, 0, 0},  // Mac Roman
	}
	for _, k := range candidates {
		if sub, err := ss.Get(k); err == nil {
			return sub, nil
		}
	}
	return nil, fmt.Errorf("cmap: no suitable subtable found")
}
