// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
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

package table

import "sap/font"

// MaxpInfo holds the one field of the "maxp" table this library needs:
// the number of glyphs in the font.
type MaxpInfo struct {
	NumGlyphs int
}

// ReadMaxp decodes a "maxp" table body, accepting either the TrueType
// (version 0x00010000) or the CFF (version 0x00005000) layout — both
// share the same numGlyphs field at offset 4.
func ReadMaxp(body []byte) (*MaxpInfo, error) {
	if len(body) < 6 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "maxp table too short"}
	}
	version := be32(body)
	if version != 0x00005000 && version != 0x00010000 {
		return nil, &font.NotSupportedError{SubSystem: "font/table", Feature: "maxp version"}
	}
	numGlyphs := int(be16(body[4:]))
	return &MaxpInfo{NumGlyphs: numGlyphs}, nil
}
