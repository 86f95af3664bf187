// Package glyf confirms the presence of TrueType outline data. This
// engine never rasterizes glyph contours itself — that is the PDF
// embedder's job — so it stops at checking the table pair exists and
// reporting the loca offset format.
package glyf

import (
	"sap/font"
	"sap/font/table"
)

// Info records that a font carries TrueType outlines.
type Info struct {
	LongOffsets bool
}

var tagGlyf = font.MakeTag("glyf")
var tagLoca = font.MakeTag("loca")

// Probe reports whether dir names both "glyf" and "loca", returning nil
// (not an error) when the font uses CFF outlines instead.
func Probe(dir *table.Directory, longOffsets bool) *Info {
	if !dir.Has(tagGlyf, tagLoca) {
		return nil
	}
	return &Info{LongOffsets: longOffsets}
}
