// Code in this file decodes the "morx" (extended glyph metamorphosis)
// table: a sequence of chains, each a sequence of subtables of one of
// five kinds, all built on the StateTable runner in statetable.go.
package aat

import (
	"sort"

	"sap/font"
	"sap/font/lookup"
	"sap/font/sfntio"
)

// SubtableKind identifies one of the five morx subtable algorithms.
type SubtableKind uint8

const (
	Rearrangement SubtableKind = iota
	Contextual
	Ligature
	NonContextual
	Insertion
)

// Coverage bits of a morx subtable's coverage field (the top byte of
// the leading uint32).
const (
	coverVertical           = 0x8000_0000
	coverDescendingOrder    = 0x4000_0000
	coverAllDirections      = 0x2000_0000
	coverLogicalOrder       = 0x1000_0000 // reserved bit 28, kept for documentation
)

// Subtable is one morx chain subtable: its direction/coverage flags,
// the feature subtable mask that gates whether it runs, its kind, and
// its still-undecoded body.
type Subtable struct {
	Vertical        bool
	DescendingOrder bool
	SubFeatureFlags uint32
	Kind            SubtableKind
	Body            []byte
}

// Chain is one morx chain: a default feature-enable mask plus its
// ordered subtables.
type Chain struct {
	DefaultFlags uint32
	Features     []FeatureEntry
	Subtables    []Subtable
}

// ReadChains decodes every chain in a "morx" table body (version 2 or
// 3; version 3 adds a subtable-anchor glyph extension this engine
// does not need and so does not decode).
func ReadChains(data []byte) ([]Chain, error) {
	if len(data) < 8 {
		return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "table too short"}
	}
	version, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	if version != 2 && version != 3 {
		return nil, &font.NotSupportedError{SubSystem: "font/aat/morx", Feature: "table version"}
	}
	nChains, err := sfntio.Peek32(data[4:])
	if err != nil {
		return nil, err
	}

	pos := 8
	chains := make([]Chain, 0, nChains)
	for c := uint32(0); c < nChains; c++ {
		if pos+16 > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "truncated chain header"}
		}
		defaultFlags, _ := sfntio.Peek32(data[pos:])
		chainLength, _ := sfntio.Peek32(data[pos+4:])
		nFeatureEntries, _ := sfntio.Peek32(data[pos+8:])
		nSubtables, _ := sfntio.Peek32(data[pos+12:])

		if int(chainLength) < 16 || pos+int(chainLength) > len(data) {
			return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "malformed chain length"}
		}
		chainEnd := pos + int(chainLength)

		// Feature table: nFeatureEntries * 12 bytes, each (type u16,
		// setting u16, enableFlags u32, disableFlags u32).
		featPos := pos + 16
		var features []FeatureEntry
		for f := uint32(0); f < nFeatureEntries; f++ {
			if featPos+12 > chainEnd {
				return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "truncated feature table"}
			}
			ftype, _ := sfntio.Peek16(data[featPos:])
			setting, _ := sfntio.Peek16(data[featPos+2:])
			enable, _ := sfntio.Peek32(data[featPos+4:])
			disable, _ := sfntio.Peek32(data[featPos+8:])
			features = append(features, FeatureEntry{
				Selector:     Selector{Type: ftype, Selector: setting},
				EnableFlags:  enable,
				DisableFlags: disable,
			})
			featPos += 12
		}
		sub := featPos

		chain := Chain{DefaultFlags: defaultFlags, Features: features}
		for s := uint32(0); s < nSubtables; s++ {
			if sub+12 > chainEnd {
				return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "truncated subtable header"}
			}
			length, _ := sfntio.Peek32(data[sub:])
			coverage, _ := sfntio.Peek32(data[sub+4:])
			subFeatureFlags, _ := sfntio.Peek32(data[sub+8:])

			if int(length) < 12 || sub+int(length) > chainEnd {
				return nil, &font.InvalidFontError{SubSystem: "font/aat/morx", Reason: "malformed subtable length"}
			}

			chain.Subtables = append(chain.Subtables, Subtable{
				Vertical:        coverage&coverVertical != 0,
				DescendingOrder: coverage&coverDescendingOrder != 0,
				SubFeatureFlags: subFeatureFlags,
				Kind:            SubtableKind(coverage & 0xFF),
				Body:            data[sub+12 : sub+int(length)],
			})

			sub += int(length)
		}

		chains = append(chains, chain)
		pos = chainEnd
	}

	return chains, nil
}

// Mapping records, for a glyph sequence produced by ApplyChain, which
// output positions replaced which input positions — needed so the
// caller can keep per-glyph source-text attachment in sync with
// ligature formation and insertion.
type Mapping struct {
	// Contractions maps the position, in the glyph sequence the ligature
	// subtable received, of each glyph replaced by a ligature to the
	// number of input glyphs that ligature consumed, itself included.
	Contractions map[int]int
}

// ApplyChain runs every subtable of chain whose SubFeatureFlags
// intersects enabledMask, in subtable order, threading the glyph
// sequence through each.
func ApplyChain(chain Chain, enabledMask uint32, glyphs []font.GlyphId) ([]font.GlyphId, *Mapping) {
	mapping := &Mapping{Contractions: map[int]int{}}
	for _, st := range chain.Subtables {
		if st.SubFeatureFlags&enabledMask == 0 {
			continue
		}
		dir := Forward
		if st.DescendingOrder {
			dir = Reverse
		}
		switch st.Kind {
		case Rearrangement:
			glyphs = applyRearrangement(st.Body, glyphs, dir)
		case Contextual:
			glyphs = applyContextual(st.Body, glyphs, dir)
		case Ligature:
			glyphs = applyLigature(st.Body, glyphs, dir, mapping)
		case NonContextual:
			glyphs = applyNonContextual(st.Body, glyphs)
		case Insertion:
			glyphs = applyInsertion(st.Body, glyphs, dir)
		}
	}
	return glyphs, mapping
}

func glyphClasses(st *StateTable, glyphs []font.GlyphId) []uint16 {
	classes := make([]uint16, len(glyphs))
	for i, g := range glyphs {
		classes[i] = st.ClassOf(g)
	}
	return classes
}

// --- 1. Rearrangement ---------------------------------------------------

const (
	rearrMarkFirst = 0x8000
	rearrMarkLast  = 0x2000
	rearrVerbMask  = 0x000F
)

func applyRearrangement(body []byte, glyphs []font.GlyphId, dir Direction) []font.GlyphId {
	st, err := ReadExtended(body, 0)
	if err != nil {
		return glyphs
	}
	classes := glyphClasses(st, glyphs)

	markFirst, markLast := -1, -1
	Run(st, classes, dir, func(i int, flags uint16, extra [2]uint16) {
		if flags&rearrMarkFirst != 0 {
			markFirst = i
		}
		if flags&rearrMarkLast != 0 {
			markLast = i
		}
		verb := flags & rearrVerbMask
		if verb != 0 && markFirst >= 0 && markLast >= markFirst {
			applyRearrangementVerb(glyphs[markFirst:markLast+1], verb)
		}
	})
	return glyphs
}

func applyRearrangementVerb(ws []font.GlyphId, verb uint16) {
	n := len(ws)
	switch verb {
	case 1: // Ax => xA
		if n < 2 {
			return
		}
		a := ws[0]
		copy(ws, ws[1:])
		ws[n-1] = a
	case 2: // xD => Dx
		if n < 2 {
			return
		}
		d := ws[n-1]
		copy(ws[1:], ws[:n-1])
		ws[0] = d
	case 3: // AxD => DxA
		if n < 2 {
			return
		}
		ws[0], ws[n-1] = ws[n-1], ws[0]
	case 4: // ABx => xAB
		if n < 3 {
			return
		}
		a, b := ws[0], ws[1]
		copy(ws, ws[2:])
		ws[n-2], ws[n-1] = a, b
	case 5: // ABx => xBA
		if n < 3 {
			return
		}
		a, b := ws[0], ws[1]
		copy(ws, ws[2:])
		ws[n-2], ws[n-1] = b, a
	case 6: // xCD => CDx
		if n < 3 {
			return
		}
		c, d := ws[n-2], ws[n-1]
		copy(ws[2:], ws[:n-2])
		ws[0], ws[1] = c, d
	case 7: // xCD => DCx
		if n < 3 {
			return
		}
		c, d := ws[n-2], ws[n-1]
		copy(ws[2:], ws[:n-2])
		ws[0], ws[1] = d, c
	case 8: // AxCD => CDxA
		if n < 3 {
			return
		}
		a := ws[0]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[1:n-2]...)
		ws[0], ws[1] = c, d
		copy(ws[2:], mid)
		ws[n-1] = a
	case 9: // AxCD => DCxA
		if n < 3 {
			return
		}
		a := ws[0]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[1:n-2]...)
		ws[0], ws[1] = d, c
		copy(ws[2:], mid)
		ws[n-1] = a
	case 10: // ABxD => DxAB
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		d := ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-1]...)
		ws[0] = d
		copy(ws[1:], mid)
		ws[n-2], ws[n-1] = a, b
	case 11: // ABxD => DxBA
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		d := ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-1]...)
		ws[0] = d
		copy(ws[1:], mid)
		ws[n-2], ws[n-1] = b, a
	case 12: // ABxCD => CDxAB
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-2]...)
		ws[0], ws[1] = c, d
		copy(ws[2:], mid)
		ws[n-2], ws[n-1] = a, b
	case 13: // ABxCD => CDxBA
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-2]...)
		ws[0], ws[1] = c, d
		copy(ws[2:], mid)
		ws[n-2], ws[n-1] = b, a
	case 14: // ABxCD => DCxAB
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-2]...)
		ws[0], ws[1] = d, c
		copy(ws[2:], mid)
		ws[n-2], ws[n-1] = a, b
	case 15: // ABxCD => DCxBA
		if n < 4 {
			return
		}
		a, b := ws[0], ws[1]
		c, d := ws[n-2], ws[n-1]
		mid := append([]font.GlyphId(nil), ws[2:n-2]...)
		ws[0], ws[1] = d, c
		copy(ws[2:], mid)
		ws[n-2], ws[n-1] = b, a
	}
}

// --- 2. Contextual -------------------------------------------------------

const contextualSetMark = 0x8000

func applyContextual(body []byte, glyphs []font.GlyphId, dir Direction) []font.GlyphId {
	if len(body) < 4 {
		return glyphs
	}
	substTableOff, _ := sfntio.Peek32(body)
	st, err := ReadExtended(body[4:], 2) // extra: markIndex, currIndex
	if err != nil {
		return glyphs
	}
	subst := body[substTableOff:]

	classes := glyphClasses(st, glyphs)
	markPos := -1
	Run(st, classes, dir, func(i int, flags uint16, extra [2]uint16) {
		markIdx, currIdx := extra[0], extra[1]
		if currIdx != 0xFFFF && i < len(glyphs) {
			if l, err := lookup.Read(subst[2*int(currIdx):]); err == nil {
				if v, ok := l.Search(glyphs[i]); ok {
					glyphs[i] = font.GlyphId(v)
				}
			}
		}
		if markIdx != 0xFFFF && markPos >= 0 && markPos < len(glyphs) {
			if l, err := lookup.Read(subst[2*int(markIdx):]); err == nil {
				if v, ok := l.Search(glyphs[markPos]); ok {
					glyphs[markPos] = font.GlyphId(v)
				}
			}
		}
		if flags&contextualSetMark != 0 {
			markPos = i
		}
	})
	return glyphs
}

// --- 3. Ligature -----------------------------------------------------------

const (
	ligSetComponent  = 0x8000
	ligPerformAction = 0x2000
	ligActionLast    = 0x8000_0000
	ligActionStore   = 0x4000_0000
	ligActionOffsetMask = 0x3FFF_FFFF
)

func applyLigature(body []byte, glyphs []font.GlyphId, dir Direction, mapping *Mapping) []font.GlyphId {
	if len(body) < 12 {
		return glyphs
	}
	ligActionOff, _ := sfntio.Peek32(body)
	componentOff, _ := sfntio.Peek32(body[4:])
	ligatureOff, _ := sfntio.Peek32(body[8:])
	st, err := ReadExtended(body[12:], 1) // extra: ligActionIndex
	if err != nil {
		return glyphs
	}

	componentAt := func(i int) uint16 {
		v, _ := sfntio.Peek16(body[componentOff+uint32(2*i):])
		return v
	}
	ligatureAt := func(i int) font.GlyphId {
		v, _ := sfntio.Peek16(body[ligatureOff+uint32(2*i):])
		return font.GlyphId(v)
	}
	actionAt := func(i int) uint32 {
		v, _ := sfntio.Peek32(body[ligActionOff+uint32(4*i):])
		return v
	}

	classes := glyphClasses(st, glyphs)

	var stack []int // glyph positions pushed since the last ligature formed
	var deleted []bool
	deleted = make([]bool, len(glyphs))

	out := append([]font.GlyphId(nil), glyphs...)

	Run(st, classes, dir, func(i int, flags uint16, extra [2]uint16) {
		if flags&ligSetComponent != 0 {
			stack = append(stack, i)
		}
		if flags&ligPerformAction != 0 && len(stack) > 0 {
			actionIdx := int(extra[0])
			sum := uint32(0)
			var last bool
			depth := 0
			consumed := 0
			for !last && len(stack) > 0 {
				pos := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				consumed++
				a := actionAt(actionIdx + depth)
				depth++
				last = a&ligActionLast != 0
				store := a&ligActionStore != 0
				offset := int32(a & ligActionOffsetMask)
				if offset&(1<<29) != 0 {
					offset |= ^int32(ligActionOffsetMask) // sign extend bit 29
				}
				compIdx := int(int32(out[pos]) + offset)
				sum += uint32(componentAt(compIdx))
				if store {
					repl := ligatureAt(int(sum))
					out[pos] = repl
					sum = 0
					mapping.Contractions[pos] = consumed
					consumed = 0
				} else {
					deleted[pos] = true
				}
			}
		}
	})

	result := out[:0]
	for i, g := range out {
		if !deleted[i] {
			result = append(result, g)
		}
	}
	return result
}

// --- 4. Non-contextual ------------------------------------------------------

func applyNonContextual(body []byte, glyphs []font.GlyphId) []font.GlyphId {
	l, err := lookup.Read(body)
	if err != nil {
		return glyphs
	}
	for i, g := range glyphs {
		if v, ok := l.Search(g); ok {
			glyphs[i] = font.GlyphId(v)
		}
	}
	return glyphs
}

// --- 5. Insertion ------------------------------------------------------------

const (
	insSetMark                = 0x8000
	insCurrentInsertBefore    = 0x0800
	insMarkedInsertBefore     = 0x0400
	insCurrentInsertCountMask = 0x03E0
	insMarkedInsertCountMask  = 0x001F
)

func applyInsertion(body []byte, glyphs []font.GlyphId, dir Direction) []font.GlyphId {
	if len(body) < 4 {
		return glyphs
	}
	insertionOff, _ := sfntio.Peek32(body)
	st, err := ReadExtended(body[4:], 2) // extra: currentInsertIndex, markedInsertIndex
	if err != nil {
		return glyphs
	}
	insertGlyph := func(i int) font.GlyphId {
		v, _ := sfntio.Peek16(body[insertionOff+uint32(2*i):])
		return font.GlyphId(v)
	}

	classes := glyphClasses(st, glyphs)
	type pending struct {
		pos    int
		before bool
		ids    []font.GlyphId
	}
	var inserts []pending
	markPos := -1

	Run(st, classes, dir, func(i int, flags uint16, extra [2]uint16) {
		currIdx, markIdx := extra[0], extra[1]
		currCount := int(flags&insCurrentInsertCountMask) >> 5
		markCount := int(flags & insMarkedInsertCountMask)

		if currCount > 0 && currIdx != 0xFFFF {
			ids := make([]font.GlyphId, currCount)
			for k := 0; k < currCount; k++ {
				ids[k] = insertGlyph(int(currIdx) + k)
			}
			inserts = append(inserts, pending{pos: i, before: flags&insCurrentInsertBefore != 0, ids: ids})
		}
		if markCount > 0 && markIdx != 0xFFFF && markPos >= 0 {
			ids := make([]font.GlyphId, markCount)
			for k := 0; k < markCount; k++ {
				ids[k] = insertGlyph(int(markIdx) + k)
			}
			inserts = append(inserts, pending{pos: markPos, before: flags&insMarkedInsertBefore != 0, ids: ids})
		}
		if flags&insSetMark != 0 {
			markPos = i
		}
	})

	if len(inserts) == 0 {
		return glyphs
	}
	// Apply from the highest position down so earlier positions remain valid.
	sort.SliceStable(inserts, func(a, b int) bool { return inserts[a].pos < inserts[b].pos })
	result := append([]font.GlyphId(nil), glyphs...)
	for k := len(inserts) - 1; k >= 0; k-- {
		ins := inserts[k]
		at := ins.pos
		if !ins.before {
			at++
		}
		if at < 0 {
			at = 0
		}
		if at > len(result) {
			at = len(result)
		}
		tail := append([]font.GlyphId(nil), result[at:]...)
		result = append(result[:at], ins.ids...)
		result = append(result, tail...)
	}
	return result
}
