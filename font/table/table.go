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

// Package table parses the sfnt table directory. At load time only the
// directory is parsed; individual table contents are returned as raw,
// non-owning byte slices into the caller's font image and are decoded
// lazily by the table-specific packages.
package table

import (
	"fmt"
	"sort"

	"sap/font"
)

const (
	ScalerTypeTrueType = 0x00010000
	ScalerTypeCFF      = 0x4F54544F
	ScalerTypeApple    = 0x74727565
)

// Record locates one table's bytes within the font image.
type Record struct {
	Offset uint32
	Length uint32
}

// Directory is the parsed table directory ("table of contents") of an
// sfnt font file.
type Directory struct {
	ScalerType uint32
	Toc        map[font.Tag]Record
}

// ErrNoTable indicates that a required table is missing from a font file.
type ErrNoTable struct {
	Name font.Tag
}

func (err *ErrNoTable) Error() string {
	return "missing " + err.Name.String() + " table in font"
}

// IsMissing returns true if err indicates a missing table.
func IsMissing(err error) bool {
	_, missing := err.(*ErrNoTable)
	return missing
}

// ReadDirectory parses the table directory at the start of an sfnt
// image. image must cover the whole file; table bytes are sliced out of
// it without copying.
func ReadDirectory(image []byte) (*Directory, error) {
	if len(image) < 12 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "file too short"}
	}
	scalerType := be32(image)
	numTables := int(be16(image[4:]))

	if scalerType != ScalerTypeTrueType && scalerType != ScalerTypeCFF && scalerType != ScalerTypeApple {
		return nil, &font.NotSupportedError{
			SubSystem: "font/table",
			Feature:   fmt.Sprintf("scaler type 0x%x", scalerType),
		}
	}
	if numTables > 280 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "too many tables"}
	}
	if len(image) < 12+numTables*16 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "table directory truncated"}
	}

	d := &Directory{ScalerType: scalerType, Toc: make(map[font.Tag]Record, numTables)}

	type span struct{ start, end uint32 }
	var coverage []span
	for i := 0; i < numTables; i++ {
		rec := image[12+i*16:]
		tag := font.Tag(be32(rec))
		offset := be32(rec[8:])
		length := be32(rec[12:])
		d.Toc[tag] = Record{Offset: offset, Length: length}
		coverage = append(coverage, span{offset, offset + length})
	}
	if len(d.Toc) == 0 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "no tables found"}
	}

	sort.Slice(coverage, func(i, j int) bool {
		if coverage[i].start != coverage[j].start {
			return coverage[i].start < coverage[j].start
		}
		return coverage[i].end < coverage[j].end
	})
	if coverage[0].start < 12 {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "invalid table offset"}
	}
	for i := 1; i < len(coverage); i++ {
		if coverage[i-1].end > coverage[i].start {
			return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "overlapping tables"}
		}
	}
	if last := coverage[len(coverage)-1].end; int(last) > len(image) {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "table extends beyond end of file"}
	}

	return d, nil
}

// Has reports whether every named table is present.
func (d *Directory) Has(tags ...font.Tag) bool {
	for _, t := range tags {
		if _, ok := d.Toc[t]; !ok {
			return false
		}
	}
	return true
}

// Find looks up a table's directory record.
func (d *Directory) Find(tag font.Tag) (Record, error) {
	rec, ok := d.Toc[tag]
	if !ok {
		return rec, &ErrNoTable{Name: tag}
	}
	return rec, nil
}

// Bytes returns the raw, non-owning byte slice for a table, sliced
// directly out of image.
func (d *Directory) Bytes(image []byte, tag font.Tag) ([]byte, error) {
	rec, err := d.Find(tag)
	if err != nil {
		return nil, err
	}
	if uint64(rec.Offset)+uint64(rec.Length) > uint64(len(image)) {
		return nil, &font.InvalidFontError{SubSystem: "font/table", Reason: "table " + tag.String() + " extends beyond end of file"}
	}
	return image[rec.Offset : rec.Offset+rec.Length], nil
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
