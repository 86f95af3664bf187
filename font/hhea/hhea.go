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

// Package hhea decodes the "hhea" table, giving the baseline-relative
// ascent, descent and line gap used to size lines during layout, plus
// the count of long metrics records that "hmtx" holds explicitly.
package hhea

import (
	"sap/font"
	"sap/font/sfntio"
)

// Info holds the fields of "hhea" this engine consumes.
type Info struct {
	Ascent              int16
	Descent             int16 // negative
	LineGap             int16
	NumOfLongHorMetrics uint16
}

// Read decodes an "hhea" table body in place.
func Read(body []byte) (*Info, error) {
	version, err := sfntio.Peek32(body)
	if err != nil {
		return nil, err
	}
	if version != 0x00010000 {
		return nil, &font.NotSupportedError{SubSystem: "font/hhea", Feature: "table version"}
	}
	ascent, _ := sfntio.Peek16(body[4:])
	descent, _ := sfntio.Peek16(body[6:])
	lineGap, _ := sfntio.Peek16(body[8:])
	numLong, err := sfntio.Peek16(body[34:])
	if err != nil {
		return nil, err
	}
	return &Info{
		Ascent:              int16(ascent),
		Descent:             int16(descent),
		LineGap:             int16(lineGap),
		NumOfLongHorMetrics: numLong,
	}, nil
}
