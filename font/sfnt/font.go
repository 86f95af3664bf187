// Package sfnt loads a whole sfnt image into a FontFile and shapes glyph
// runs against it, per §4.A.2. The root font package stays limited to
// the identifiers every table package shares (Tag, GlyphId, Codepoint,
// the two error types); the aggregate and its shaping entry point live
// here instead, one level down, to keep that root free of its own
// subpackages.
package sfnt

import (
	"sap/font"
	"sap/font/aat"
	"sap/font/cmap"
	"sap/font/glyf"
	"sap/font/head"
	"sap/font/hhea"
	"sap/font/hmtx"
	"sap/font/name"
	"sap/font/opentype/gtab"
	"sap/font/os2"
	"sap/font/post"
	"sap/font/table"
)

// Outline names the kind of glyph outline a font carries.
type Outline int

const (
	OutlineTrueType Outline = iota
	OutlineCFF
)

// FontFile owns a font's raw byte image plus its lazily useful table
// views, per spec §3.1.
type FontFile struct {
	Family, Subfamily, FullName, PostScriptName string

	UnitsPerEm               uint16
	Ascent, Descent, LineGap int16
	CapHeight, XHeight       int16
	ItalicAngle              int32
	NumGlyphs                int
	Outline                  Outline

	image []byte
	dir   *table.Directory
	cmap  cmap.Subtable
	glyf  *glyf.Info
	hmtx  *hmtx.Table

	// Raw byte slices, parsed lazily by Shape.
	gsubBytes, gposBytes, kernBytes, morxBytes []byte
}

var (
	tagGSUB = font.MakeTag("GSUB")
	tagGPOS = font.MakeTag("GPOS")
	tagKern = font.MakeTag("kern")
	tagMorx = font.MakeTag("morx")
	tagCmap = font.MakeTag("cmap")
	tagHmtx = font.MakeTag("hmtx")
	tagMaxp = font.MakeTag("maxp")
	tagHead = font.MakeTag("head")
	tagHhea = font.MakeTag("hhea")
	tagOS2  = font.MakeTag("OS/2")
	tagPost = font.MakeTag("post")
	tagName = font.MakeTag("name")
)

// Load parses the sfnt directory and every simple metadata table
// eagerly; GSUB/GPOS/kern/morx stay as raw byte slices until Shape asks
// for them, per spec §4.A.2.
func Load(image []byte) (*FontFile, error) {
	dir, err := table.ReadDirectory(image)
	if err != nil {
		return nil, err
	}

	headBytes, err := dir.Bytes(image, tagHead)
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Read(headBytes)
	if err != nil {
		return nil, err
	}

	maxpBytes, err := dir.Bytes(image, tagMaxp)
	if err != nil {
		return nil, err
	}
	maxpInfo, err := table.ReadMaxp(maxpBytes)
	if err != nil {
		return nil, err
	}

	ff := &FontFile{
		image:      image,
		dir:        dir,
		UnitsPerEm: headInfo.UnitsPerEm,
		NumGlyphs:  maxpInfo.NumGlyphs,
		Outline:    OutlineTrueType,
	}
	if dir.ScalerType == table.ScalerTypeCFF {
		ff.Outline = OutlineCFF
	}
	ff.glyf = glyf.Probe(dir, headInfo.HasLongOffsets)

	var hheaInfo *hhea.Info
	if hheaBytes, err := dir.Bytes(image, tagHhea); err == nil {
		if hheaInfo, err = hhea.Read(hheaBytes); err == nil {
			ff.Ascent, ff.Descent, ff.LineGap = hheaInfo.Ascent, hheaInfo.Descent, hheaInfo.LineGap
		}
	}
	if hmtxBytes, err := dir.Bytes(image, tagHmtx); err == nil && hheaInfo != nil {
		ff.hmtx, _ = hmtx.Read(hmtxBytes, maxpInfo.NumGlyphs, int(hheaInfo.NumOfLongHorMetrics))
	}
	if os2Bytes, err := dir.Bytes(image, tagOS2); err == nil {
		if os2Info, err := os2.Read(os2Bytes); err == nil {
			ff.CapHeight, ff.XHeight = os2Info.CapHeight, os2Info.XHeight
			if ff.Ascent == 0 {
				ff.Ascent, ff.Descent, ff.LineGap = os2Info.TypoAscender, os2Info.TypoDescender, os2Info.TypoLineGap
			}
		}
	}
	if postBytes, err := dir.Bytes(image, tagPost); err == nil {
		if postInfo, err := post.Read(postBytes); err == nil {
			ff.ItalicAngle = postInfo.ItalicAngle
		}
	}
	if nameBytes, err := dir.Bytes(image, tagName); err == nil {
		if nameInfo, err := name.Read(nameBytes); err == nil {
			ff.Family, ff.Subfamily = nameInfo.Family, nameInfo.Subfamily
			ff.FullName, ff.PostScriptName = nameInfo.FullName, nameInfo.PostScriptName
		}
	}
	if cmapBytes, err := dir.Bytes(image, tagCmap); err == nil {
		if t, err := cmap.Decode(cmapBytes); err == nil {
			if sub, err := t.GetBest(); err == nil {
				ff.cmap = sub
			}
		}
	}

	ff.gsubBytes, _ = dir.Bytes(image, tagGSUB)
	ff.gposBytes, _ = dir.Bytes(image, tagGPOS)
	ff.kernBytes, _ = dir.Bytes(image, tagKern)
	ff.morxBytes, _ = dir.Bytes(image, tagMorx)

	return ff, nil
}

// HasOutlines reports whether the font carries TrueType glyf/loca data.
func (ff *FontFile) HasOutlines() bool { return ff.glyf != nil }

// Lookup maps a Unicode codepoint to its glyph id using the font's best
// available cmap subtable.
func (ff *FontFile) Lookup(cp font.Codepoint) font.GlyphId {
	if ff.cmap == nil {
		return font.NotDef
	}
	return ff.cmap.Lookup(cp)
}

// Advance returns the horizontal advance width of gid, in font design
// units.
func (ff *FontFile) Advance(gid font.GlyphId) uint16 {
	if ff.hmtx == nil {
		return 0
	}
	return ff.hmtx.Advance(gid)
}

// ShapedRun is the result of Shape: the final glyph sequence, the
// per-glyph positioning adjustment, and the substitution mapping
// needed to keep source-text attachment (PDF ActualText) in sync.
type ShapedRun struct {
	Glyphs      []font.GlyphId
	Adjustments []gtab.ValueRecord
	Mapping     *aat.Mapping
}

// Shape applies substitution and positioning to an input glyph run in
// the fixed order spec §5 requires: morx chains in declaration order,
// then GSUB, then GPOS, then kern combination rules applied over the
// post-substitution sequence, on top of (not instead of) GPOS.
func (ff *FontFile) Shape(glyphs []font.GlyphId, enabledAAT map[aat.Selector]bool) (*ShapedRun, error) {
	run := &ShapedRun{Glyphs: append([]font.GlyphId(nil), glyphs...)}

	if len(ff.morxBytes) > 0 {
		chains, err := aat.ReadChains(ff.morxBytes)
		if err != nil {
			return nil, err
		}
		for _, chain := range chains {
			mask := aat.ResolveFlags(chain.DefaultFlags, chain.Features, enabledAAT)
			shaped, mapping := aat.ApplyChain(chain, mask, run.Glyphs)
			run.Glyphs = shaped
			run.Mapping = mapping
		}
	}

	if len(ff.gsubBytes) > 0 {
		if lookups, err := gtab.ReadLookupList(ff.gsubBytes, true); err == nil {
			run.Glyphs = gtab.ApplyGSUB(lookups, run.Glyphs)
		}
	}

	run.Adjustments = make([]gtab.ValueRecord, len(run.Glyphs))
	if len(ff.gposBytes) > 0 {
		if lookups, err := gtab.ReadLookupList(ff.gposBytes, false); err == nil {
			for i, v := range gtab.ApplyGPOS(lookups, run.Glyphs) {
				run.Adjustments[i] = run.Adjustments[i].Add(v)
			}
		}
	}

	if len(ff.kernBytes) > 0 {
		kerning, err := aat.ReadKern(ff.kernBytes)
		if err == nil {
			for i := 0; i+1 < len(run.Glyphs); i++ {
				if v, ok := kerning[aat.GlyphPair{Left: run.Glyphs[i], Right: run.Glyphs[i+1]}]; ok {
					run.Adjustments[i].XAdvance += v
				}
			}
		}
	}

	return run, nil
}
