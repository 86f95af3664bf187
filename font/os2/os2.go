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

// Package os2 decodes the "OS/2" table: the weight/width class and
// vertical metrics used by the font-matching fallback chain.
package os2

import (
	"sap/font"
	"sap/font/sfntio"
)

// Info holds the fields of "OS/2" this engine consumes.
type Info struct {
	WeightClass uint16
	WidthClass  uint16

	IsBold    bool
	IsItalic  bool
	IsRegular bool
	IsOblique bool

	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	CapHeight     int16 // 0 if the font predates version 2
	XHeight       int16 // 0 if the font predates version 2
}

// Read decodes an "OS/2" table body in place.
func Read(body []byte) (*Info, error) {
	version, err := sfntio.Peek16(body)
	if err != nil {
		return nil, err
	}
	if version > 5 {
		return nil, &font.NotSupportedError{SubSystem: "font/os2", Feature: "table version"}
	}
	weightClass, _ := sfntio.Peek16(body[4:])
	widthClass, _ := sfntio.Peek16(body[6:])
	fsSelection, err := sfntio.Peek16(body[62:])
	if err != nil {
		return nil, err
	}
	ascender, _ := sfntio.Peek16(body[68:])
	descender, _ := sfntio.Peek16(body[70:])
	lineGap, _ := sfntio.Peek16(body[72:])

	info := &Info{
		WeightClass:   weightClass,
		WidthClass:    widthClass,
		IsItalic:      fsSelection&(1<<0) != 0,
		IsBold:        fsSelection&(1<<5) != 0,
		IsRegular:     fsSelection&(1<<6) != 0,
		IsOblique:     fsSelection&(1<<9) != 0,
		TypoAscender:  int16(ascender),
		TypoDescender: int16(descender),
		TypoLineGap:   int16(lineGap),
	}

	if version >= 2 && len(body) >= 88 {
		xHeight, _ := sfntio.Peek16(body[86:])
		info.XHeight = int16(xHeight)
	}
	if version >= 2 && len(body) >= 90 {
		capHeight, _ := sfntio.Peek16(body[88:])
		info.CapHeight = int16(capHeight)
	}

	return info, nil
}
