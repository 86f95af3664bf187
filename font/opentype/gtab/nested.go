package gtab

import (
	"sap/font"
	"sap/font/opentype/classdef"
	"sap/font/opentype/coverage"
	"sap/font/sfntio"
)

// SequenceLookupRecord is one "apply lookup N at matched position I"
// entry carried by every contextual/chained-context subtable format.
type SequenceLookupRecord struct {
	SequenceIndex int
	LookupIndex   uint16
}

// SequenceContext is GSUB/GPOS lookup types 5/7 ("Contextual"): match a
// run of input glyphs either by id (format 1), by class (format 2), or
// by a coverage table at each position (format 3); §4.A.6.
type SequenceContext struct {
	format uint16

	// format 1: per first-covered-glyph list of rule sequences
	cov1  coverage.Table
	rules [][]contextRule

	// format 2
	classDef  classdef.Table
	cov2      coverage.Table
	clsRules  [][]contextRule

	// format 3
	inputCov []coverage.Table
	records3 []SequenceLookupRecord
}

type contextRule struct {
	input   []uint16 // glyph ids (fmt 1) or classes (fmt 2), excluding the first position
	lookups []SequenceLookupRecord
}

func ReadSequenceContext(data []byte) (*SequenceContext, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	sc := &SequenceContext{format: format}
	switch format {
	case 1:
		covOff, _ := sfntio.Peek16(data[2:])
		sc.cov1, err = coverage.Read(data[covOff:])
		if err != nil {
			return nil, err
		}
		setCount, _ := sfntio.Peek16(data[4:])
		sc.rules = make([][]contextRule, setCount)
		for i := 0; i < int(setCount); i++ {
			setOff, _ := sfntio.Peek16(data[6+2*i:])
			if setOff == 0 {
				continue
			}
			sc.rules[i] = readRuleSet(data[setOff:], data, false)
		}
	case 2:
		covOff, _ := sfntio.Peek16(data[2:])
		sc.cov2, err = coverage.Read(data[covOff:])
		if err != nil {
			return nil, err
		}
		classDefOff, _ := sfntio.Peek16(data[4:])
		sc.classDef, err = classdef.Read(data[classDefOff:])
		if err != nil {
			return nil, err
		}
		setCount, _ := sfntio.Peek16(data[6:])
		sc.clsRules = make([][]contextRule, setCount)
		for i := 0; i < int(setCount); i++ {
			setOff, _ := sfntio.Peek16(data[8+2*i:])
			if setOff == 0 {
				continue
			}
			sc.clsRules[i] = readRuleSet(data[setOff:], data, true)
		}
	case 3:
		glyphCount, _ := sfntio.Peek16(data[2:])
		lookupCount, _ := sfntio.Peek16(data[4:])
		sc.inputCov = make([]coverage.Table, glyphCount)
		for i := 0; i < int(glyphCount); i++ {
			off, _ := sfntio.Peek16(data[6+2*i:])
			sc.inputCov[i], err = coverage.Read(data[off:])
			if err != nil {
				return nil, err
			}
		}
		pos := 6 + 2*int(glyphCount)
		sc.records3 = make([]SequenceLookupRecord, lookupCount)
		for i := 0; i < int(lookupCount); i++ {
			seqIdx, _ := sfntio.Peek16(data[pos:])
			lookupIdx, _ := sfntio.Peek16(data[pos+2:])
			sc.records3[i] = SequenceLookupRecord{SequenceIndex: int(seqIdx), LookupIndex: lookupIdx}
			pos += 4
		}
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "sequence context format"}
	}
	return sc, nil
}

// readRuleSet decodes a SequenceRuleSet (format1) or ClassSequenceRuleSet
// (format2); both share the same binary shape (glyphCount, seqLookupCount,
// inputSequence[glyphCount-1], then that many SequenceLookupRecords).
func readRuleSet(set []byte, base []byte, byClass bool) []contextRule {
	count, _ := sfntio.Peek16(set)
	rules := make([]contextRule, count)
	for i := 0; i < int(count); i++ {
		ruleOff, _ := sfntio.Peek16(set[2+2*i:])
		rule := set[ruleOff:]
		glyphCount, _ := sfntio.Peek16(rule)
		lookupCount, _ := sfntio.Peek16(rule[2:])
		input := make([]uint16, int(glyphCount)-1)
		pos := 4
		for j := range input {
			input[j], _ = sfntio.Peek16(rule[pos:])
			pos += 2
		}
		lookups := make([]SequenceLookupRecord, lookupCount)
		for j := range lookups {
			seqIdx, _ := sfntio.Peek16(rule[pos:])
			lookupIdx, _ := sfntio.Peek16(rule[pos+2:])
			lookups[j] = SequenceLookupRecord{SequenceIndex: int(seqIdx), LookupIndex: lookupIdx}
			pos += 4
		}
		rules[i] = contextRule{input: input, lookups: lookups}
	}
	return rules
}

// Match attempts to match the context starting at glyphs[pos], returning
// the number of glyphs consumed and the nested lookups to apply.
func (sc *SequenceContext) Match(glyphs []font.GlyphId, pos int) (length int, nested []SequenceLookupRecord, ok bool) {
	switch sc.format {
	case 1:
		idx, ok := sc.cov1[glyphs[pos]]
		if !ok || idx >= len(sc.rules) {
			return 0, nil, false
		}
		for _, r := range sc.rules[idx] {
			if matchesIDs(glyphs, pos, r.input) {
				return len(r.input) + 1, r.lookups, true
			}
		}
		return 0, nil, false
	case 2:
		idx, ok := sc.cov2[glyphs[pos]]
		if !ok {
			return 0, nil, false
		}
		cls := sc.classDef[glyphs[pos]]
		if int(cls) >= len(sc.clsRules) {
			return 0, nil, false
		}
		_ = idx
		for _, r := range sc.clsRules[cls] {
			if matchesClasses(glyphs, pos, r.input, sc.classDef) {
				return len(r.input) + 1, r.lookups, true
			}
		}
		return 0, nil, false
	case 3:
		if pos+len(sc.inputCov) > len(glyphs) {
			return 0, nil, false
		}
		for i, cov := range sc.inputCov {
			if !cov.Contains(glyphs[pos+i]) {
				return 0, nil, false
			}
		}
		return len(sc.inputCov), sc.records3, true
	}
	return 0, nil, false
}

func matchesIDs(glyphs []font.GlyphId, pos int, rest []uint16) bool {
	if pos+1+len(rest) > len(glyphs) {
		return false
	}
	for i, want := range rest {
		if glyphs[pos+1+i] != font.GlyphId(want) {
			return false
		}
	}
	return true
}

func matchesClasses(glyphs []font.GlyphId, pos int, rest []uint16, cd classdef.Table) bool {
	if pos+1+len(rest) > len(glyphs) {
		return false
	}
	for i, want := range rest {
		if cd[glyphs[pos+1+i]] != want {
			return false
		}
	}
	return true
}

// ChainedSequenceContext is GSUB/GPOS lookup types 6/8: as
// SequenceContext, plus lookbehind and lookahead sequences matched by
// the same three mechanisms.
type ChainedSequenceContext struct {
	format uint16

	// format 3 only: ReadChainedSequenceContext rejects formats 1/2
	// with a NotSupportedError, and ReadLookupList drops such subtables,
	// so chained rules keyed by glyph id or class are never matched.
	backtrackCov []coverage.Table
	inputCov     []coverage.Table
	lookaheadCov []coverage.Table
	records      []SequenceLookupRecord
}

func ReadChainedSequenceContext(data []byte) (*ChainedSequenceContext, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	cc := &ChainedSequenceContext{format: format}
	if format != 3 {
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "chained context format 1/2"}
	}

	pos := 2
	readCovList := func() ([]coverage.Table, error) {
		count, _ := sfntio.Peek16(data[pos:])
		pos += 2
		list := make([]coverage.Table, count)
		for i := 0; i < int(count); i++ {
			off, _ := sfntio.Peek16(data[pos:])
			pos += 2
			cov, err := coverage.Read(data[off:])
			if err != nil {
				return nil, err
			}
			list[i] = cov
		}
		return list, nil
	}

	cc.backtrackCov, err = readCovList()
	if err != nil {
		return nil, err
	}
	cc.inputCov, err = readCovList()
	if err != nil {
		return nil, err
	}
	cc.lookaheadCov, err = readCovList()
	if err != nil {
		return nil, err
	}
	lookupCount, _ := sfntio.Peek16(data[pos:])
	pos += 2
	cc.records = make([]SequenceLookupRecord, lookupCount)
	for i := 0; i < int(lookupCount); i++ {
		seqIdx, _ := sfntio.Peek16(data[pos:])
		lookupIdx, _ := sfntio.Peek16(data[pos+2:])
		cc.records[i] = SequenceLookupRecord{SequenceIndex: int(seqIdx), LookupIndex: lookupIdx}
		pos += 4
	}
	return cc, nil
}

func (cc *ChainedSequenceContext) Match(glyphs []font.GlyphId, pos int) (length int, nested []SequenceLookupRecord, ok bool) {
	if pos-len(cc.backtrackCov) < 0 || pos+len(cc.inputCov)+len(cc.lookaheadCov) > len(glyphs) {
		return 0, nil, false
	}
	// backtrackCov[0] matches the glyph immediately before pos, reading backwards.
	for i, cov := range cc.backtrackCov {
		if !cov.Contains(glyphs[pos-1-i]) {
			return 0, nil, false
		}
	}
	for i, cov := range cc.inputCov {
		if !cov.Contains(glyphs[pos+i]) {
			return 0, nil, false
		}
	}
	for i, cov := range cc.lookaheadCov {
		if !cov.Contains(glyphs[pos+len(cc.inputCov)+i]) {
			return 0, nil, false
		}
	}
	return len(cc.inputCov), cc.records, true
}
