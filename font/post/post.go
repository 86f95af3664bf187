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

// Package post decodes the "post" table header: the italic angle and
// fixed-pitch flag used by the font-matching fallback chain. Glyph
// name tables (versions 2.0/1.0) are not decoded, since the engine
// never needs PostScript glyph names.
package post

import (
	"sap/font"
	"sap/font/sfntio"
)

// Info holds the fields of "post" this engine consumes.
type Info struct {
	ItalicAngle        int32 // 16.16 fixed point, degrees counter-clockwise
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
}

// Read decodes the fixed-size "post" table header.
func Read(body []byte) (*Info, error) {
	version, err := sfntio.Peek32(body)
	if err != nil {
		return nil, err
	}
	switch version {
	case 0x00010000, 0x00020000, 0x00025000, 0x00030000:
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/post", Feature: "table version"}
	}

	italicAngle, err := sfntio.Peek32(body[4:])
	if err != nil {
		return nil, err
	}
	underlinePosition, _ := sfntio.Peek16(body[8:])
	underlineThickness, _ := sfntio.Peek16(body[10:])
	isFixedPitch, err := sfntio.Peek32(body[12:])
	if err != nil {
		return nil, err
	}

	return &Info{
		ItalicAngle:        int32(italicAngle),
		UnderlinePosition:  int16(underlinePosition),
		UnderlineThickness: int16(underlineThickness),
		IsFixedPitch:       isFixedPitch != 0,
	}, nil
}
