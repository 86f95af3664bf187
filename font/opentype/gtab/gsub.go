package gtab

import (
	"sap/font"
	"sap/font/opentype/coverage"
	"sap/font/sfntio"
)

// SingleSubstitution is GSUB lookup type 1: format 1 applies a constant
// glyph-id delta to every covered glyph; format 2 gives an explicit
// substitute glyph per coverage index.
type SingleSubstitution struct {
	cov        coverage.Table
	format     uint16
	delta      int16
	substitute []font.GlyphId
}

func ReadSingleSubstitution(data []byte) (*SingleSubstitution, error) {
	format, err := sfntio.Peek16(data)
	if err != nil {
		return nil, err
	}
	covOff, _ := sfntio.Peek16(data[2:])
	cov, err := coverage.Read(data[covOff:])
	if err != nil {
		return nil, err
	}
	s := &SingleSubstitution{cov: cov, format: format}
	switch format {
	case 1:
		delta, _ := sfntio.Peek16(data[4:])
		s.delta = int16(delta)
	case 2:
		count, _ := sfntio.Peek16(data[4:])
		s.substitute = make([]font.GlyphId, count)
		for i := 0; i < int(count); i++ {
			g, _ := sfntio.Peek16(data[6+2*i:])
			s.substitute[i] = font.GlyphId(g)
		}
	default:
		return nil, &font.NotSupportedError{SubSystem: "font/opentype/gtab", Feature: "single substitution format"}
	}
	return s, nil
}

// Apply returns the substituted glyph for gid, or ok=false if gid is
// not covered.
func (s *SingleSubstitution) Apply(gid font.GlyphId) (font.GlyphId, bool) {
	idx, ok := s.cov[gid]
	if !ok {
		return gid, false
	}
	if s.format == 1 {
		return font.GlyphId(int32(gid) + int32(s.delta)), true
	}
	if idx >= len(s.substitute) {
		return gid, false
	}
	return s.substitute[idx], true
}
