// Code in this file decodes the "kern" table: the classic (version 0)
// layout shared by Apple and Microsoft and Apple's extended version 1
// layout. Only the two "static" subtable formats (0: ordered pairs, 2:
// two-dimensional class arrays) are decoded; format 1 (a kerning state
// table, built on StateTable) and format 3 (a compact array encoding)
// are rare enough in practice that this engine reports them as
// unsupported rather than decoding them.
package aat

import (
	"fmt"
	"sort"

	"sap/font"
	"sap/font/sfntio"
)

// GlyphPair identifies a left/right glyph pair for kerning lookup.
type GlyphPair struct {
	Left, Right font.GlyphId
}

// Kerning maps a glyph pair to its kerning adjustment in font units.
// Positive values move the pair apart, negative values move it closer
// together.
type Kerning map[GlyphPair]int16

const (
	kernCoverageVertical    = 0x8000
	kernCoverageCrossStream = 0x4000
	kernCoverageVariation   = 0x2000
	kernFormatMask          = 0x00FF

	kernFlagVertical    = 0x80
	kernFlagCrossStream = 0x40
	kernFlagVariation   = 0x20
	kernFlagOverride    = 0x08
	kernFlagMinimum     = 0x02
)

// ReadKern decodes a "kern" table, combining every horizontal,
// non-cross-stream subtable into a single Kerning map. Per-pair
// combination follows each subtable's override/minimum/additive flag,
// the same rule the classic version 0 format defines.
func ReadKern(data []byte) (Kerning, error) {
	if len(data) < 4 {
		return nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "table too short"}
	}
	hi, _ := sfntio.Peek16(data)
	if hi != 0 {
		return readKernV1(data)
	}
	return readKernV0(data)
}

func readKernV0(data []byte) (Kerning, error) {
	nTables, err := sfntio.Peek16(data[2:])
	if err != nil {
		return nil, err
	}
	res := make(Kerning)
	pos := 4
	for i := 0; i < int(nTables); i++ {
		if pos+6 > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "truncated subtable header"}
		}
		length, _ := sfntio.Peek16(data[pos+2:])
		format := data[pos+4]
		flags := data[pos+5]
		if int(length) < 6 || pos+int(length) > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "invalid subtable length"}
		}
		body := data[pos+6 : pos+int(length)]

		if flags&(kernFlagVertical|kernFlagCrossStream|kernFlagVariation) == 0 {
			if err := decodeKernBody(format, flags, body, res); err != nil && !font.IsUnsupported(err) {
				return nil, err
			}
		}
		pos += int(length)
	}
	return res, nil
}

func readKernV1(data []byte) (Kerning, error) {
	nTables, err := sfntio.Peek32(data[4:])
	if err != nil {
		return nil, err
	}
	res := make(Kerning)
	pos := 8
	for i := uint32(0); i < nTables; i++ {
		if pos+8 > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "truncated subtable header"}
		}
		length, _ := sfntio.Peek32(data[pos:])
		coverage, _ := sfntio.Peek16(data[pos+4:])
		format := uint8(coverage & kernFormatMask)
		if int(length) < 8 || pos+int(length) > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "invalid subtable length"}
		}
		body := data[pos+8 : pos+int(length)]

		var flags uint8
		if coverage&kernCoverageVertical != 0 {
			flags |= kernFlagVertical
		}
		if coverage&kernCoverageCrossStream != 0 {
			flags |= kernFlagCrossStream
		}
		if coverage&kernCoverageVariation != 0 {
			flags |= kernFlagVariation
		}
		if flags&(kernFlagVertical|kernFlagCrossStream|kernFlagVariation) == 0 {
			if err := decodeKernBody(format, flags, body, res); err != nil && !font.IsUnsupported(err) {
				return nil, err
			}
		}
		pos += int(length)
	}
	return res, nil
}

func decodeKernBody(format, flags uint8, body []byte, res Kerning) error {
	switch format {
	case 0:
		return decodeKernFormat0(flags, body, res)
	case 2:
		return decodeKernFormat2(body, res)
	default:
		return &font.NotSupportedError{SubSystem: "font/aat/kern", Feature: fmt.Sprintf("subtable format %d", format)}
	}
}

func decodeKernFormat0(flags uint8, body []byte, res Kerning) error {
	if len(body) < 8 {
		return &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "format 0 subtable too short"}
	}
	nPairs, err := sfntio.Peek16(body)
	if err != nil {
		return err
	}
	isMinimum := flags&kernFlagMinimum != 0
	isOverride := flags&kernFlagOverride != 0

	pos := 8
	for j := 0; j < int(nPairs); j++ {
		if pos+6 > len(body) {
			return &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "truncated pair list"}
		}
		left, _ := sfntio.Peek16(body[pos:])
		right, _ := sfntio.Peek16(body[pos+2:])
		value, _ := sfntio.Peek16(body[pos+4:])
		key := GlyphPair{Left: font.GlyphId(left), Right: font.GlyphId(right)}
		v := int16(value)
		switch {
		case isMinimum:
			if cur, ok := res[key]; !ok || v < cur {
				res[key] = v
			}
		case isOverride:
			res[key] = v
		default:
			res[key] += v
		}
		pos += 6
	}
	return nil
}

// decodeKernFormat2 decodes the two-dimensional class-array subtable.
// Each class table entry already holds a pre-scaled byte offset (a
// multiple of rowWidth for the left table, a multiple of 2 for the
// right table), so a glyph pair's value is found at
// arrayOffset + leftOffset + rightOffset.
func decodeKernFormat2(body []byte, res Kerning) error {
	if len(body) < 8 {
		return &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "format 2 subtable too short"}
	}
	rowWidth, err := sfntio.Peek16(body)
	if err != nil {
		return err
	}
	leftOff, _ := sfntio.Peek16(body[2:])
	rightOff, _ := sfntio.Peek16(body[4:])
	arrayOff, _ := sfntio.Peek16(body[6:])

	leftFirst, leftOffsets, err := readKernClassTable(body, leftOff)
	if err != nil {
		return err
	}
	rightFirst, rightOffsets, err := readKernClassTable(body, rightOff)
	if err != nil {
		return err
	}

	for li, lo := range leftOffsets {
		for ri, ro := range rightOffsets {
			idx := int(arrayOff) + int(lo) + int(ro)
			if idx+2 > len(body) {
				continue
			}
			v, err := sfntio.Peek16(body[idx:])
			if err != nil {
				continue
			}
			if v == 0 {
				continue
			}
			key := GlyphPair{
				Left:  font.GlyphId(leftFirst) + font.GlyphId(li),
				Right: font.GlyphId(rightFirst) + font.GlyphId(ri),
			}
			res[key] += int16(v)
			_ = rowWidth
		}
	}
	return nil
}

func readKernClassTable(body []byte, offset uint16) (firstGlyph uint16, classOffsets []uint16, err error) {
	if int(offset)+4 > len(body) {
		return 0, nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "class table offset out of range"}
	}
	firstGlyph, err = sfntio.Peek16(body[offset:])
	if err != nil {
		return 0, nil, err
	}
	nGlyphs, err := sfntio.Peek16(body[offset+2:])
	if err != nil {
		return 0, nil, err
	}
	classOffsets = make([]uint16, nGlyphs)
	for i := 0; i < int(nGlyphs); i++ {
		pos := int(offset) + 4 + 2*i
		if pos+2 > len(body) {
			return 0, nil, &font.InvalidFontError{SubSystem: "font/aat/kern", Reason: "truncated class table"}
		}
		v, _ := sfntio.Peek16(body[pos:])
		classOffsets[i] = v
	}
	return firstGlyph, classOffsets, nil
}

// Pairs returns the kerning pairs in a deterministic (left, then right)
// order, useful for tests and for serialising a shaped run.
func (k Kerning) Pairs() []GlyphPair {
	pairs := make([]GlyphPair, 0, len(k))
	for p := range k {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Left != pairs[j].Left {
			return pairs[i].Left < pairs[j].Left
		}
		return pairs[i].Right < pairs[j].Right
	})
	return pairs
}
