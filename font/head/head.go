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

// Package head decodes the "head" table: the font-wide bounding box,
// the design units per em, and the style flags needed to pick a
// substitute face when an exact match is unavailable.
package head

import (
	"sap/font"
	"sap/font/sfntio"
)

// Info holds the fields of the "head" table this engine consumes.
type Info struct {
	UnitsPerEm     uint16
	FontBBox       [4]int16 // xMin, yMin, xMax, yMax
	IsBold         bool
	IsItalic       bool
	HasLongOffsets bool // "loca" table uses 32-bit offsets
}

// Read decodes a "head" table body in place, without copying.
func Read(body []byte) (*Info, error) {
	version, err := sfntio.Peek32(body)
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 {
		return nil, &font.NotSupportedError{SubSystem: "font/head", Feature: "table version"}
	}
	magic, err := sfntio.Peek32(body[12:])
	if err != nil {
		return nil, err
	}
	if magic != 0x5F0F3CF5 {
		return nil, &font.InvalidFontError{SubSystem: "font/head", Reason: "bad magic number"}
	}

	unitsPerEm, err := sfntio.Peek16(body[18:])
	if err != nil {
		return nil, err
	}
	xMin, _ := sfntio.Peek16(body[36:])
	yMin, _ := sfntio.Peek16(body[38:])
	xMax, _ := sfntio.Peek16(body[40:])
	yMax, _ := sfntio.Peek16(body[42:])
	macStyle, err := sfntio.Peek16(body[44:])
	if err != nil {
		return nil, err
	}
	indexToLocFormat, err := sfntio.Peek16(body[50:])
	if err != nil {
		return nil, err
	}

	return &Info{
		UnitsPerEm:     unitsPerEm,
		FontBBox:       [4]int16{int16(xMin), int16(yMin), int16(xMax), int16(yMax)},
		IsBold:         macStyle&(1<<0) != 0,
		IsItalic:       macStyle&(1<<1) != 0,
		HasLongOffsets: indexToLocFormat != 0,
	}, nil
}
