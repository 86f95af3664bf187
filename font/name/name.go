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

// Package name decodes the "name" table far enough to recover the
// family, subfamily, full and PostScript names the font-matching
// fallback chain and the document's font registry need. Unlike the
// general-purpose reader this engine is descended from, it does not
// attempt to expose every locale present in the table: it picks the
// single most useful record and returns it.
package name

import (
	"unicode/utf16"

	"sap/font"
	"sap/font/mac"
	"sap/font/sfntio"
)

// Info holds the strings recovered from the "name" table, taken from
// the Windows English-US record when present, falling back to the
// Macintosh Roman/English record, and finally to any record at all.
type Info struct {
	Family         string
	Subfamily      string
	FullName       string
	PostScriptName string
}

const (
	platformUnicode   = 0
	platformMacintosh = 1
	platformWindows   = 3

	langWindowsEnglishUS = 0x0409
	langMacEnglish       = 0
)

// Read decodes a "name" table body and selects the best available
// record for each of the four strings this engine needs.
func Read(body []byte) (*Info, error) {
	if len(body) < 6 {
		return nil, &font.InvalidFontError{SubSystem: "font/name", Reason: "table too short"}
	}
	numRec := int(body[2])<<8 | int(body[3])
	storageOffset := int(body[4])<<8 | int(body[5])

	recBase := 6
	if recBase+12*numRec > len(body) || storageOffset > len(body) {
		return nil, &font.InvalidFontError{SubSystem: "font/name", Reason: "malformed name table"}
	}

	type candidate struct {
		rank int // lower is better
		val  string
	}
	best := map[uint16]candidate{} // nameID -> best candidate seen

	consider := func(nameID uint16, rank int, val string) {
		if val == "" {
			return
		}
		if c, ok := best[nameID]; !ok || rank < c.rank {
			best[nameID] = candidate{rank: rank, val: val}
		}
	}

	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		platformID := be16(body, pos)
		encodingID := be16(body, pos+2)
		languageID := be16(body, pos+4)
		nameID := be16(body, pos+6)
		nameLen := int(be16(body, pos+8))
		nameOffset := int(be16(body, pos+10))

		start := storageOffset + nameOffset
		end := start + nameLen
		if start < 0 || end > len(body) {
			continue
		}
		raw := body[start:end]

		var val string
		var rank int
		switch platformID {
		case platformWindows, platformUnicode:
			val = utf16BEDecode(raw)
			if platformID == platformWindows && languageID == langWindowsEnglishUS {
				rank = 0
			} else {
				rank = 2
			}
		case platformMacintosh:
			if encodingID != 0 {
				continue
			}
			val = mac.Decode(raw)
			if languageID == langMacEnglish {
				rank = 1
			} else {
				rank = 3
			}
		default:
			continue
		}

		consider(nameID, rank, val)
	}

	info := &Info{}
	if c, ok := best[1]; ok {
		info.Family = c.val
	}
	if c, ok := best[2]; ok {
		info.Subfamily = c.val
	}
	if c, ok := best[4]; ok {
		info.FullName = c.val
	}
	if c, ok := best[6]; ok {
		info.PostScriptName = c.val
	}
	return info, nil
}

func be16(b []byte, pos int) uint16 {
	v, _ := sfntio.Peek16(b[pos:])
	return v
}

func utf16BEDecode(b []byte) string {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	u := make([]uint16, len(b)/2)
	for i := range u {
		u[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(u))
}
