// Package lookup decodes the six on-disk AAT/OpenType "lookup table"
// formats, each a dense or sparse GlyphId→value mapping. morx subtable
// substitutions, kern class tables and AAT feature selectors are all
// ultimately one of these six formats; this package provides the one
// decoder they all share, grounded the same way font/opentype/coverage
// and font/opentype/classdef ground their own binary-search tables.
package lookup

import (
	"fmt"
	"sort"

	"sap/font"
	"sap/font/sfntio"
)

// Lookup is a decoded GlyphId -> u64 mapping. The zero value matches
// no glyph.
type Lookup struct {
	format  uint16
	data    []byte // format-specific body, header already consumed
	unitLen int     // format 10 only: element size in bytes
}

const binSrchHeaderLen = 10 // unitSize, nUnits, searchRange, entrySelector, rangeShift

// Read decodes a lookup table's format field and retains the rest of
// data for on-demand search; it does not itself allocate a map.
func Read(data []byte) (*Lookup, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	l := &Lookup{format: format, data: data[2:]}
	switch format {
	case 0, 2, 4, 6, 8:
		return l, nil
	case 10:
		unitLen, err := sfntio.Peek16(l.data)
		if err != nil {
			return nil, err
		}
		if unitLen != 1 && unitLen != 2 && unitLen != 4 && unitLen != 8 {
			return nil, &font.InvalidFontError{SubSystem: "font/lookup", Reason: "invalid format 10 unit size"}
		}
		l.unitLen = int(unitLen)
		l.data = l.data[2:]
		return l, nil
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/lookup", Feature: fmt.Sprintf("lookup format %d", format)}
	}
}

// Search looks up gid without allocating.
func (l *Lookup) Search(gid font.GlyphId) (value uint64, ok bool) {
	switch l.format {
	case 0:
		off := int(gid) * 2
		v, err := sfntio.Peek16(l.data[off:])
		if err != nil {
			return 0, false
		}
		return uint64(v), true

	case 2:
		n, segs := l.binSrch()
		idx := sort.Search(n, func(i int) bool {
			last, _, _ := l.segment2(segs, i)
			return gid <= last
		})
		if idx == n {
			return 0, false
		}
		last, first, value16 := l.segment2(segs, idx)
		if gid < first || gid > last {
			return 0, false
		}
		return uint64(value16), true

	case 4:
		n, segs := l.binSrch()
		idx := sort.Search(n, func(i int) bool {
			last, _, _ := l.segment2(segs, i)
			return gid <= last
		})
		if idx == n {
			return 0, false
		}
		last, first, offset := l.segment2(segs, idx)
		if gid < first || gid > last {
			return 0, false
		}
		v, err := sfntio.Peek16(l.data[int(offset)+2*int(gid-first):])
		if err != nil {
			return 0, false
		}
		return uint64(v), true

	case 6:
		n, segs := l.binSrch()
		idx := sort.Search(n, func(i int) bool {
			g, _ := sfntio.Peek16(l.data[segs+4*i:])
			return gid <= font.GlyphId(g)
		})
		if idx == n {
			return 0, false
		}
		g, _ := sfntio.Peek16(l.data[segs+4*idx:])
		if font.GlyphId(g) != gid {
			return 0, false
		}
		v, err := sfntio.Peek16(l.data[segs+4*idx+2:])
		if err != nil {
			return 0, false
		}
		return uint64(v), true

	case 8:
		first, _ := sfntio.Peek16(l.data)
		count, _ := sfntio.Peek16(l.data[2:])
		if gid < font.GlyphId(first) || gid >= font.GlyphId(first)+font.GlyphId(count) {
			return 0, false
		}
		v, err := sfntio.Peek16(l.data[4+2*int(gid-font.GlyphId(first)):])
		if err != nil {
			return 0, false
		}
		return uint64(v), true

	case 10:
		first, _ := sfntio.Peek16(l.data)
		count, _ := sfntio.Peek16(l.data[2:])
		if gid < font.GlyphId(first) || gid >= font.GlyphId(first)+font.GlyphId(count) {
			return 0, false
		}
		v, err := sfntio.ElementAt(l.data[4:], l.unitLen, int(gid-font.GlyphId(first)))
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// binSrch reads the BinSrchHeader and returns the segment count and
// the byte offset where the segment array starts.
func (l *Lookup) binSrch() (n int, segOffset int) {
	nUnits, _ := sfntio.Peek16(l.data[2:])
	return int(nUnits), binSrchHeaderLen
}

// segment2 reads the i'th (lastGlyph, firstGlyph, value) segment of a
// format 2/4 lookup table, relative to the segment array's start.
func (l *Lookup) segment2(segOffset, i int) (last, first font.GlyphId, value uint16) {
	base := segOffset + 6*i
	lastG, _ := sfntio.Peek16(l.data[base:])
	firstG, _ := sfntio.Peek16(l.data[base+2:])
	v, _ := sfntio.Peek16(l.data[base+4:])
	return font.GlyphId(lastG), font.GlyphId(firstG), v
}

// ToMap decodes the whole table into a map. Used where the caller
// needs to enumerate every covered glyph rather than look one up.
func (l *Lookup) ToMap(maxGlyph font.GlyphId) map[font.GlyphId]uint64 {
	res := make(map[font.GlyphId]uint64)
	switch l.format {
	case 0:
		for gid := font.GlyphId(0); gid <= maxGlyph; gid++ {
			if v, ok := l.Search(gid); ok && v != 0 {
				res[gid] = v
			}
		}
	case 2, 4:
		n, segs := l.binSrch()
		for i := 0; i < n; i++ {
			last, first, _ := l.segment2(segs, i)
			for gid := first; gid <= last; gid++ {
				if v, ok := l.Search(gid); ok {
					res[gid] = v
				}
			}
		}
	case 6:
		n, segs := l.binSrch()
		for i := 0; i < n; i++ {
			g, _ := sfntio.Peek16(l.data[segs+4*i:])
			v, _ := sfntio.Peek16(l.data[segs+4*i+2:])
			res[font.GlyphId(g)] = uint64(v)
		}
	case 8, 10:
		first, _ := sfntio.Peek16(l.data)
		count, _ := sfntio.Peek16(l.data[2:])
		for i := 0; i < int(count); i++ {
			gid := font.GlyphId(first) + font.GlyphId(i)
			if v, ok := l.Search(gid); ok {
				res[gid] = v
			}
		}
	}
	return res
}
