package gtab

import (
	"sap/font"
	"sap/font/opentype/classdef"
	"sap/font/opentype/coverage"
	"sap/font/sfntio"
)

// SingleAdjustment is GPOS lookup type 1: one value record (format 1)
// or one per coverage index (format 2), gated by coverage.
type SingleAdjustment struct {
	cov    coverage.Table
	format uint16
	shared ValueRecord
	perGid []ValueRecord // format 2 only, indexed by coverage index
}

func ReadSingleAdjustment(data []byte) (*SingleAdjustment, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	covOff, _ := sfntio.Peek16(data[2:])
	valueFormat, _ := sfntio.Peek16(data[4:])
	cov, err := coverage.Read(data[covOff:])
	if err != nil {
		return nil, err
	}

	s := &SingleAdjustment{cov: cov, format: format}
	switch format {
	case 1:
		s.shared, _ = readValueRecord(data[6:], valueFormat)
	case 2:
		count, _ := sfntio.Peek16(data[6:])
		recLen := valueRecordLen(valueFormat)
		s.perGid = make([]ValueRecord, count)
		pos := 8
		for i := 0; i < int(count); i++ {
			s.perGid[i], _ = readValueRecord(data[pos:], valueFormat)
			pos += recLen
		}
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "single adjustment format"}
	}
	return s, nil
}

func (s *SingleAdjustment) Lookup(gid font.GlyphId) (ValueRecord, bool) {
	idx, ok := s.cov[gid]
	if !ok {
		return ValueRecord{}, false
	}
	if s.format == 1 {
		return s.shared, true
	}
	if idx >= len(s.perGid) {
		return ValueRecord{}, false
	}
	return s.perGid[idx], true
}

// PairAdjustment is GPOS lookup type 2: format 1 looks up the second
// glyph of a pair in a per-first-glyph list; format 2 maps both glyphs
// to classes and indexes a cls1 x cls2 matrix.
type PairAdjustment struct {
	cov    coverage.Table
	format uint16

	// format 1
	pairSets [][]pairRecord

	// format 2
	classDef1, classDef2 classdef.Table
	class1Count          int
	class2Count          int
	matrix               [][2]ValueRecord
}

type pairRecord struct {
	second font.GlyphId
	v1, v2 ValueRecord
}

func ReadPairAdjustment(data []byte) (*PairAdjustment, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	covOff, _ := sfntio.Peek16(data[2:])
	vf1, _ := sfntio.Peek16(data[4:])
	vf2, _ := sfntio.Peek16(data[6:])
	cov, err := coverage.Read(data[covOff:])
	if err != nil {
		return nil, err
	}

	p := &PairAdjustment{cov: cov, format: format}
	switch format {
	case 1:
		pairSetCount, _ := sfntio.Peek16(data[8:])
		recLen := 2 + valueRecordLen(vf1) + valueRecordLen(vf2)
		p.pairSets = make([][]pairRecord, pairSetCount)
		for i := 0; i < int(pairSetCount); i++ {
			off, _ := sfntio.Peek16(data[10+2*i:])
			set := data[off:]
			n, _ := sfntio.Peek16(set)
			recs := make([]pairRecord, n)
			pos := 2
			for j := 0; j < int(n); j++ {
				second, _ := sfntio.Peek16(set[pos:])
				v1, l1 := readValueRecord(set[pos+2:], vf1)
				v2, l2 := readValueRecord(set[pos+2+l1:], vf2)
				recs[j] = pairRecord{second: font.GlyphId(second), v1: v1, v2: v2}
				pos += 2 + l1 + l2
				_ = recLen
			}
			p.pairSets[i] = recs
		}
	case 2:
		classDef1Off, _ := sfntio.Peek16(data[8:])
		classDef2Off, _ := sfntio.Peek16(data[10:])
		class1Count, _ := sfntio.Peek16(data[12:])
		class2Count, _ := sfntio.Peek16(data[14:])
		p.classDef1, err = classdef.Read(data[classDef1Off:])
		if err != nil {
			return nil, err
		}
		p.classDef2, err = classdef.Read(data[classDef2Off:])
		if err != nil {
			return nil, err
		}
		p.class1Count = int(class1Count)
		p.class2Count = int(class2Count)

		recLen := valueRecordLen(vf1) + valueRecordLen(vf2)
		p.matrix = make([][2]ValueRecord, int(class1Count)*int(class2Count))
		pos := 16
		for i := range p.matrix {
			v1, l1 := readValueRecord(data[pos:], vf1)
			v2, l2 := readValueRecord(data[pos+l1:], vf2)
			p.matrix[i] = [2]ValueRecord{v1, v2}
			pos += l1 + l2
			_ = recLen
		}
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "pair adjustment format"}
	}
	return p, nil
}

// Lookup returns the adjustments to apply to the first and second
// glyph of the pair, if the pair is covered.
func (p *PairAdjustment) Lookup(first, second font.GlyphId) (v1, v2 ValueRecord, ok bool) {
	if !p.cov.Contains(first) {
		return ValueRecord{}, ValueRecord{}, false
	}
	switch p.format {
	case 1:
		idx := p.cov[first]
		if idx >= len(p.pairSets) {
			return ValueRecord{}, ValueRecord{}, false
		}
		for _, rec := range p.pairSets[idx] {
			if rec.second == second {
				return rec.v1, rec.v2, true
			}
		}
		return ValueRecord{}, ValueRecord{}, false
	case 2:
		c1 := p.classDef1[first]
		c2 := p.classDef2[second]
		if int(c1) >= p.class1Count || int(c2) >= p.class2Count {
			return ValueRecord{}, ValueRecord{}, false
		}
		idx := int(c1)*p.class2Count + int(c2)
		if idx >= len(p.matrix) {
			return ValueRecord{}, ValueRecord{}, false
		}
		return p.matrix[idx][0], p.matrix[idx][1], true
	}
	return ValueRecord{}, ValueRecord{}, false
}
