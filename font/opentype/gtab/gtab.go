package gtab

import (
	"sap/font"
	"sap/font/sfntio"
)

// LookupType identifies which subtable decoder a GSUB/GPOS lookup uses.
type LookupType uint16

const (
	GSUBSingle     LookupType = 1
	GSUBContextual LookupType = 5
	GSUBChained    LookupType = 6

	GPOSSingle     LookupType = 1
	GPOSPair       LookupType = 2
	GPOSContextual LookupType = 7
	GPOSChained    LookupType = 8
)

// Subtable is the decoded form of one of this package's lookup kinds.
// Exactly one field is non-nil.
type Subtable struct {
	Single     *SingleSubstitution
	PosSingle  *SingleAdjustment
	PosPair    *PairAdjustment
	Context    *SequenceContext
	Chained    *ChainedSequenceContext
}

// Lookup is one GSUB or GPOS lookup: a type plus its subtables, tried
// in order until one matches a given glyph/position.
type Lookup struct {
	Type      LookupType
	Subtables []Subtable
}

// LookupList is the decoded GSUB or GPOS LookupList table.
type LookupList []Lookup

// ReadLookupList decodes a GSUB or GPOS LookupList, dispatching each
// subtable by lookupType according to isGSUB.
func ReadLookupList(data []byte, isGSUB bool) (LookupList, error) {
	count, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	list := make(LookupList, count)
	for i := 0; i < int(count); i++ {
		off, _ := sfntio.Peek16(data[2+2*i:])
		lk := data[off:]
		lookupType, _ := sfntio.Peek16(lk)
		subCount, _ := sfntio.Peek16(lk[4:])

		l := Lookup{Type: LookupType(lookupType)}
		for j := 0; j < int(subCount); j++ {
			subOff, _ := sfntio.Peek16(lk[6+2*j:])
			sub := lk[subOff:]
			decoded, err := decodeSubtable(sub, LookupType(lookupType), isGSUB)
			if err != nil {
				if font.IsUnsupported(err) {
					continue
				}
				return nil, err
			}
			l.Subtables = append(l.Subtables, decoded)
		}
		list[i] = l
	}
	return list, nil
}

func decodeSubtable(data []byte, lookupType LookupType, isGSUB bool) (Subtable, error) {
	if isGSUB {
		switch lookupType {
		case GSUBSingle:
			s, err := ReadSingleSubstitution(data)
			return Subtable{Single: s}, err
		case GSUBContextual:
			s, err := ReadSequenceContext(data)
			return Subtable{Context: s}, err
		case GSUBChained:
			s, err := ReadChainedSequenceContext(data)
			return Subtable{Chained: s}, err
		}
	} else {
		switch lookupType {
		case GPOSSingle:
			s, err := ReadSingleAdjustment(data)
			return Subtable{PosSingle: s}, err
		case GPOSPair:
			s, err := ReadPairAdjustment(data)
			return Subtable{PosPair: s}, err
		case GPOSContextual:
			s, err := ReadSequenceContext(data)
			return Subtable{Context: s}, err
		case GPOSChained:
			s, err := ReadChainedSequenceContext(data)
			return Subtable{Chained: s}, err
		}
	}
	return Subtable{}, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "lookup type"}
}

// ApplyGSUB runs every lookup in lookups left to right over glyphs,
// applying the first matching subtable of each lookup at each position.
// Contextual/chained lookups apply their nested single-substitution
// lookups at the matched positions; nesting deeper than one level is
// not evaluated.
func ApplyGSUB(lookups LookupList, glyphs []font.GlyphId) []font.GlyphId {
	out := append([]font.GlyphId(nil), glyphs...)
	for _, lk := range lookups {
		for i := 0; i < len(out); i++ {
			for _, sub := range lk.Subtables {
				matched := false
				switch {
				case sub.Single != nil:
					if g, ok := sub.Single.Apply(out[i]); ok {
						out[i] = g
						matched = true
					}
				case sub.Context != nil:
					if _, nested, ok := sub.Context.Match(out, i); ok {
						applyNestedGSUB(lookups, nested, out, i)
						matched = true
					}
				case sub.Chained != nil:
					if _, nested, ok := sub.Chained.Match(out, i); ok {
						applyNestedGSUB(lookups, nested, out, i)
						matched = true
					}
				}
				if matched {
					break
				}
			}
		}
	}
	return out
}

func applyNestedGSUB(lookups LookupList, nested []SequenceLookupRecord, glyphs []font.GlyphId, base int) {
	for _, rec := range nested {
		pos := base + rec.SequenceIndex
		if pos < 0 || pos >= len(glyphs) || int(rec.LookupIndex) >= len(lookups) {
			continue
		}
		for _, sub := range lookups[rec.LookupIndex].Subtables {
			if sub.Single != nil {
				if g, ok := sub.Single.Apply(glyphs[pos]); ok {
					glyphs[pos] = g
					break
				}
			}
		}
	}
}

// ApplyGPOS runs every lookup in lookups over glyphs, returning one
// ValueRecord per glyph, combined by field-wise addition across every
// lookup that produced an adjustment for that position; within a
// lookup, only the first matching subtable at a position is applied.
func ApplyGPOS(lookups LookupList, glyphs []font.GlyphId) []ValueRecord {
	adj := make([]ValueRecord, len(glyphs))
	for _, lk := range lookups {
		for i := 0; i < len(glyphs); i++ {
			for _, sub := range lk.Subtables {
				matched := false
				switch {
				case sub.PosSingle != nil:
					if v, ok := sub.PosSingle.Lookup(glyphs[i]); ok {
						adj[i] = adj[i].Add(v)
						matched = true
					}
				case sub.PosPair != nil:
					if i+1 < len(glyphs) {
						v1, v2, ok := sub.PosPair.Lookup(glyphs[i], glyphs[i+1])
						if ok {
							adj[i] = adj[i].Add(v1)
							adj[i+1] = adj[i+1].Add(v2)
							matched = true
						}
					}
				case sub.Context != nil:
					if _, nested, ok := sub.Context.Match(glyphs, i); ok {
						applyNestedGPOS(lookups, nested, glyphs, i, adj)
						matched = true
					}
				case sub.Chained != nil:
					if _, nested, ok := sub.Chained.Match(glyphs, i); ok {
						applyNestedGPOS(lookups, nested, glyphs, i, adj)
						matched = true
					}
				}
				if matched {
					break
				}
			}
		}
	}
	return adj
}

func applyNestedGPOS(lookups LookupList, nested []SequenceLookupRecord, glyphs []font.GlyphId, base int, adj []ValueRecord) {
	for _, rec := range nested {
		pos := base + rec.SequenceIndex
		if pos < 0 || pos >= len(glyphs) || int(rec.LookupIndex) >= len(lookups) {
			continue
		}
		for _, sub := range lookups[rec.LookupIndex].Subtables {
			if sub.PosSingle != nil {
				if v, ok := sub.PosSingle.Lookup(glyphs[pos]); ok {
					adj[pos] = adj[pos].Add(v)
					break
				}
			}
		}
	}
}
