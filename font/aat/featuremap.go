// featuremap.go maps OpenType feature tags to the AAT (feature type,
// selector) pairs that enable them, per spec §4.A.8. AAT feature
// selection is never a single bit: a selector turns a feature setting
// on, and for "exclusive" feature types (where only one selector may
// be active at a time, e.g. letter-case) choosing one implicitly
// disables the others in the same type.
package aat

import "sap/font"

// Selector identifies one AAT (featureType, featureSelector) setting.
type Selector struct {
	Type     uint16
	Selector uint16
}

// featureMapping lists every AAT selector a given OpenType tag turns on.
// Exclusive is true when this feature type only allows one selector
// active at a time (selecting this one logically disables its sibling
// selectors of the same Type).
type featureMapping struct {
	Selectors []Selector
	Exclusive bool
}

// offToAAT is grounded on Apple's documented kFeatureType constants and
// the historical OpenType<->AAT correspondences shipped with every AAT
// font compiler. It covers the mappings this engine's spec names
// explicitly (ligatures and the stylistic-set range); other tags that
// have no AAT equivalent are simply absent and left unmapped.
var offToAAT = map[font.Tag]featureMapping{
	font.MakeTag("liga"): {Selectors: []Selector{{1, 2}}},  // kLigaturesType, kCommonLigaturesOn
	font.MakeTag("dlig"): {Selectors: []Selector{{1, 4}}},  // kRareLigaturesOn
	font.MakeTag("hlig"): {Selectors: []Selector{{1, 6}}},  // kHistoricalLigaturesOn
	font.MakeTag("smcp"): {Selectors: []Selector{{3, 3}}, Exclusive: true},  // kLetterCaseType, kSmallCapsSelector
	font.MakeTag("c2sc"): {Selectors: []Selector{{3, 4}}, Exclusive: true},
	font.MakeTag("onum"): {Selectors: []Selector{{6, 1}}, Exclusive: true}, // kNumberCaseType, kLowerCaseNumbersSelector
	font.MakeTag("lnum"): {Selectors: []Selector{{6, 0}}, Exclusive: true},
	font.MakeTag("pnum"): {Selectors: []Selector{{7, 1}}, Exclusive: true}, // kNumberSpacingType
	font.MakeTag("tnum"): {Selectors: []Selector{{7, 0}}, Exclusive: true},
	font.MakeTag("frac"): {Selectors: []Selector{{11, 2}}, Exclusive: true}, // kFractionsType
	font.MakeTag("swsh"): {Selectors: []Selector{{20, 2}}},                 // kContextualAlternatesType, kSwashAlternatesOn
	font.MakeTag("calt"): {Selectors: []Selector{{20, 0}}},                 // kContextualAlternatesOn
	font.MakeTag("ss01"): {Selectors: []Selector{{35, 2}}, Exclusive: true}, // kStylisticAlternativesType, set 1
	font.MakeTag("ss02"): {Selectors: []Selector{{35, 4}}, Exclusive: true},
	font.MakeTag("ss03"): {Selectors: []Selector{{35, 6}}, Exclusive: true},
	font.MakeTag("ss04"): {Selectors: []Selector{{35, 8}}, Exclusive: true},
}

// Selectors returns the AAT selectors a feature tag enables, or ok=false
// if this engine has no AAT mapping for the tag.
func Selectors(tag font.Tag) (sels []Selector, exclusive bool, ok bool) {
	m, ok := offToAAT[tag]
	if !ok {
		return nil, false, false
	}
	return m.Selectors, m.Exclusive, true
}

// FeatureEntry is one row of a morx chain's feature subtable array: a
// selector plus the enable/disable masks it applies over the chain's
// running flags value.
type FeatureEntry struct {
	Selector      Selector
	EnableFlags   uint32
	DisableFlags  uint32
}

// ResolveFlags starts from defaultFlags and applies, in order, the
// enable/disable mask of every entry whose selector is in enabled.
func ResolveFlags(defaultFlags uint32, entries []FeatureEntry, enabled map[Selector]bool) uint32 {
	flags := defaultFlags
	for _, e := range entries {
		if enabled[e.Selector] {
			flags = (flags & e.DisableFlags) | e.EnableFlags
		}
	}
	return flags
}
