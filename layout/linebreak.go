// sap - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package layout implements Component D: paragraph line-breaking via
// shortest-path optimisation (§4.D.1, §4.D.2) and cursor-based page
// flow (§4.D.3-§4.D.5).
package layout

import (
	"math"

	"sap/dijkstra"
	"sap/style"
	"sap/tree"
)

// AtomKind tags Atom's tagged variant: the three flattened shapes an
// already-assembled paragraph's content reduces to, §4.D.1.
type AtomKind int

const (
	AtomText AtomKind = iota
	AtomSeparator
	AtomSpan
)

// Atom is one indivisible unit the line-breaker places, §"Atom" in the
// glossary: a text run, a separator, or a glued span, each already
// measured against its style.
type Atom struct {
	Kind AtomKind
	Ref  tree.InlineRef

	// Width is this atom's rendered width when it falls in the
	// interior of a line (not the line's final, break-causing atom).
	Width float64

	// Separator fields, valid when Kind == AtomSeparator.
	SepKind     tree.SeparatorKind
	HyphenCost  float64 // only meaningful for HyphenationPoint
	HyphenWidth float64 // width contributed when broken here, HyphenationPoint only
}

// BrokenLine is one output line of a completed line-break, §4.D.1.
type BrokenLine struct {
	Atoms []Atom
	Width float64
	Cost  float64
}

// Warning records a forced (overfull) break the line-breaker had to
// insert because no candidate line fit within the preferred length,
// §4.D.1's "insert a single forced break with cost 10000 and emit a
// warning".
type Warning struct {
	AtLine int
	AtomAt int
}

// isBreakpoint reports whether position j (0 <= j <= len(atoms)) ends
// a candidate line: either it is the end of the paragraph, or the
// atom immediately before it is a separator (the only atoms that
// permit a break).
func isBreakpoint(atoms []Atom, j int) bool {
	if j == len(atoms) {
		return true
	}
	return j > 0 && atoms[j-1].Kind == AtomSeparator
}

// measure computes the rendered width of atoms[i:j) as a line, the
// count of interior (non-final) space separators, and whether the
// final atom renders as a trailing hyphen. The trailing separator
// that ends the line (a space, a hyphenation point, or an explicit
// break) is handled per §4.D.2: a trailing space collapses to zero
// width and does not count as a stretch point; a hyphenation point
// contributes its hyphen glyph's width; an explicit break contributes
// nothing.
func measure(atoms []Atom, i, j int) (width float64, numSpaces int, finalSep *Atom) {
	for k := i; k < j; k++ {
		a := atoms[k]
		isFinal := k == j-1
		switch a.Kind {
		case AtomText, AtomSpan:
			width += a.Width
		case AtomSeparator:
			if isFinal {
				finalSep = &atoms[k]
				if a.SepKind == tree.HyphenationPoint {
					width += a.HyphenWidth
				}
				// Space and ExplicitBreak contribute zero width at EOL.
			} else if a.SepKind == tree.Space {
				width += a.Width
				numSpaces++
			}
			// A non-final HyphenationPoint/ExplicitBreak met mid-line
			// (a break point the search chose to pass over) is just a
			// marker and contributes zero width.
		}
	}
	return width, numSpaces, finalSep
}

// stretchCost computes the k² squared-stretch term shared by both
// branches of §4.D.1's cost model.
func stretchCost(width, preferredLength float64, numSpaces int) float64 {
	denom := math.Max(float64(numSpaces), 0.5)
	k := (preferredLength - width) / denom
	return k * k
}

// lineCost is §4.D.1's full cost model for the candidate line
// atoms[i:j), given that it fits within preferredLength. The final
// line (j == len(atoms)) always costs zero, overriding the rest.
func lineCost(atoms []Atom, i, j int, preferredLength, avgSpaceWidth float64) float64 {
	if j == len(atoms) {
		return 0
	}
	width, numSpaces, finalSep := measure(atoms, i, j)
	cost := stretchCost(width, preferredLength, numSpaces)
	if finalSep != nil && finalSep.SepKind != tree.Space {
		cost += 0.3 * (1 + finalSep.HyphenCost) * avgSpaceWidth * avgSpaceWidth
	}
	return cost
}

const forcedBreakCost = 10000

// firstOverfullBreak returns the smallest valid breakpoint j > i whose
// line atoms[i:j) exceeds preferredLength, or len(atoms)+1 if every
// valid breakpoint from i fits (no forced break is needed from i).
func firstOverfullBreak(atoms []Atom, i int, preferredLength float64) int {
	for j := i + 1; j <= len(atoms); j++ {
		if !isBreakpoint(atoms, j) {
			continue
		}
		width, _, _ := measure(atoms, i, j)
		if width > preferredLength {
			return j
		}
	}
	return len(atoms) + 1
}

// BreakParagraph runs §4.D.1's shortest-path line-breaker over atoms,
// returning the resulting lines in order plus any forced-break
// warnings. avgSpaceWidth is the paragraph's average space-separator
// width, used by the hyphenation-point/explicit-break cost term.
func BreakParagraph(atoms []Atom, preferredLength, avgSpaceWidth float64) ([]BrokenLine, []Warning) {
	n := len(atoms)
	if n == 0 {
		return nil, nil
	}

	overfullAt := make([]int, n)
	for i := 0; i < n; i++ {
		overfullAt[i] = firstOverfullBreak(atoms, i, preferredLength)
	}

	cost := func(i, j int) float64 {
		if i == j {
			return math.Inf(1)
		}
		if !isBreakpoint(atoms, j) {
			return math.Inf(1)
		}
		width, _, _ := measure(atoms, i, j)
		if width <= preferredLength {
			return lineCost(atoms, i, j, preferredLength, avgSpaceWidth)
		}
		if j == overfullAt[i] {
			return forcedBreakCost
		}
		return math.Inf(1)
	}

	_, path := dijkstra.ShortestPathFloat64(cost, n)

	lines := make([]BrokenLine, 0, len(path)-1)
	var warnings []Warning
	for idx := 0; idx+1 < len(path); idx++ {
		i, j := path[idx], path[idx+1]
		width, _, _ := measure(atoms, i, j)
		c := cost(i, j)
		if c == forcedBreakCost {
			warnings = append(warnings, Warning{AtLine: idx, AtomAt: i})
		}
		lines = append(lines, BrokenLine{Atoms: atoms[i:j], Width: width, Cost: c})
	}
	return lines, warnings
}

// FlattenParagraph reduces a paragraph's inline content to the atom
// sequence BreakParagraph consumes, §4.D.1's input contract: text runs
// and separators in order, with glued spans collapsed into one
// non-breakable atom. measureText and spaceWidth give the font/style
// layer's answers for a run's rendered width and an inter-word space's
// width; this package has no font-lookup code of its own.
func FlattenParagraph(
	arena *tree.Arena,
	refs []tree.InlineRef,
	sty *style.Style,
	measureText func(text string, sty *style.Style) float64,
	spaceWidth func(sty *style.Style) float64,
) []Atom {
	var atoms []Atom
	for _, ref := range refs {
		atoms = appendFlattened(atoms, arena, ref, sty, measureText, spaceWidth)
	}
	return atoms
}

func appendFlattened(
	atoms []Atom,
	arena *tree.Arena,
	ref tree.InlineRef,
	sty *style.Style,
	measureText func(text string, sty *style.Style) float64,
	spaceWidth func(sty *style.Style) float64,
) []Atom {
	obj := arena.Inline(ref)
	switch obj.Kind {
	case tree.Text:
		return append(atoms, Atom{Kind: AtomText, Ref: ref, Width: measureText(obj.TextValue, sty)})
	case tree.Separator:
		a := Atom{Kind: AtomSeparator, Ref: ref, SepKind: obj.SepKind, HyphenCost: obj.HyphenCost}
		if obj.SepKind == tree.Space {
			a.Width = spaceWidth(sty)
		}
		if obj.SepKind == tree.HyphenationPoint {
			a.HyphenWidth = measureText("-", sty)
		}
		return append(atoms, a)
	case tree.InlineSpan:
		if obj.Glued {
			width := 0.0
			if obj.WidthOverride != nil {
				width = *obj.WidthOverride
			} else {
				for _, c := range obj.Children {
					for _, inner := range appendFlattened(nil, arena, c, sty, measureText, spaceWidth) {
						width += inner.Width
					}
				}
			}
			return append(atoms, Atom{Kind: AtomSpan, Ref: ref, Width: width})
		}
		for _, c := range obj.Children {
			atoms = appendFlattened(atoms, arena, c, sty, measureText, spaceWidth)
		}
		return atoms
	case tree.ScriptCall:
		// §8 scenario 6: a script call must already have been resolved
		// and spliced into the surrounding paragraph (its inline span's
		// children merged in) before line-breaking ever sees this list.
		panic("layout: FlattenParagraph: unresolved ScriptCall reached the line-breaker")
	default:
		panic("layout: FlattenParagraph: unhandled inline object kind")
	}
}
