package layout

import (
	"math"
	"testing"

	"sap/style"
	"sap/tree"
)

func textAtom(width float64) Atom { return Atom{Kind: AtomText, Width: width} }
func spaceAtom(width float64) Atom {
	return Atom{Kind: AtomSeparator, SepKind: tree.Space, Width: width}
}

// TestBreakParagraphSingleLine covers §8 scenario 3: a short two-word
// paragraph that fits on one line breaks into exactly one line, at
// zero cost (the final line is always free).
func TestBreakParagraphSingleLine(t *testing.T) {
	atoms := []Atom{textAtom(30), spaceAtom(5), textAtom(30)}
	lines, warnings := BreakParagraph(atoms, 100, 5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if lines[0].Cost != 0 {
		t.Fatalf("expected the sole (final) line to cost 0, got %g", lines[0].Cost)
	}
	if got := len(lines[0].Atoms); got != 3 {
		t.Fatalf("expected all 3 atoms on the one line, got %d", got)
	}
}

// TestBreakParagraphTwoLines covers §8 scenario 4: a paragraph whose
// content exceeds one line's preferred length breaks into at least two
// lines, and each line's reported width matches measuring its own
// atoms directly.
func TestBreakParagraphTwoLines(t *testing.T) {
	atoms := []Atom{
		textAtom(40), spaceAtom(5),
		textAtom(40), spaceAtom(5),
		textAtom(40), spaceAtom(5),
		textAtom(40),
	}
	lines, _ := BreakParagraph(atoms, 90, 5)
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	for idx, ln := range lines {
		width, _, _ := measure(ln.Atoms, 0, len(ln.Atoms))
		if math.Abs(width-ln.Width) > 1e-9 {
			t.Fatalf("line %d: reported width %g does not match measured width %g", idx, ln.Width, width)
		}
	}
}

// TestBreakParagraphOptimal is the Dijkstra optimality witness: no
// alternative partition of the same atoms into breakpoint-respecting
// lines has strictly lower total cost than what BreakParagraph found.
func TestBreakParagraphOptimal(t *testing.T) {
	atoms := []Atom{
		textAtom(20), spaceAtom(5),
		textAtom(50), spaceAtom(5),
		textAtom(20), spaceAtom(5),
		textAtom(20),
	}
	const preferred = 70.0
	const avgSpace = 5.0

	lines, _ := BreakParagraph(atoms, preferred, avgSpace)
	var total float64
	for _, ln := range lines {
		total += ln.Cost
	}

	n := len(atoms)
	var best float64 = math.Inf(1)
	var breakAt func(start int, acc float64)
	breakAt = func(start int, acc float64) {
		if acc >= best {
			return
		}
		if start == n {
			if acc < best {
				best = acc
			}
			return
		}
		for j := start + 1; j <= n; j++ {
			if !isBreakpoint(atoms, j) {
				continue
			}
			width, _, _ := measure(atoms, start, j)
			var c float64
			if width <= preferred {
				c = lineCost(atoms, start, j, preferred, avgSpace)
			} else if j == firstOverfullBreak(atoms, start, preferred) {
				c = forcedBreakCost
			} else {
				continue
			}
			breakAt(j, acc+c)
		}
	}
	breakAt(0, 0)

	if total > best+1e-9 {
		t.Fatalf("BreakParagraph found cost %g, but an alternative partition costs only %g", total, best)
	}
}

// TestBreakParagraphForcedBreakWarns covers the overfull/forced-break
// path: a single unbreakable atom wider than the preferred length must
// still be placed on its own (only) line, with a warning recording the
// forced break — the "zero cost for the final line" rule only waives
// the stretch penalty for a line that fits, not an overfull one.
func TestBreakParagraphForcedBreakWarns(t *testing.T) {
	atoms := []Atom{textAtom(500)}
	lines, warnings := BreakParagraph(atoms, 100, 5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Width != 500 {
		t.Fatalf("expected the oversized atom's full width to be reported, got %g", lines[0].Width)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected a forced-break warning for the overfull line, got %v", warnings)
	}
}

// TestBreakParagraphEmpty covers the degenerate zero-atom input.
func TestBreakParagraphEmpty(t *testing.T) {
	lines, warnings := BreakParagraph(nil, 100, 5)
	if lines != nil || warnings != nil {
		t.Fatalf("expected nil, nil for an empty paragraph, got %v, %v", lines, warnings)
	}
}

// TestHyphenationPointAddsPenaltyAndWidth checks that breaking at a
// HyphenationPoint both contributes the hyphen glyph's width to the
// line and adds the §4.D.1 hyphenation penalty term to its cost. Both
// scenarios are built to measure to the same line width (60) so the
// comparison isolates the additive penalty from the shared stretch
// cost.
func TestHyphenationPointAddsPenaltyAndWidth(t *testing.T) {
	withHyphen := []Atom{
		textAtom(56),
		{Kind: AtomSeparator, SepKind: tree.HyphenationPoint, HyphenCost: 1, HyphenWidth: 4},
		textAtom(999),
	}
	width, _, finalSep := measure(withHyphen, 0, 2)
	if width != 60 {
		t.Fatalf("expected hyphen width folded into the line, got %g", width)
	}
	if finalSep == nil || finalSep.SepKind != tree.HyphenationPoint {
		t.Fatalf("expected the final separator to be reported")
	}

	withSpace := []Atom{textAtom(60), spaceAtom(0), textAtom(999)}
	if w, _, _ := measure(withSpace, 0, 2); w != 60 {
		t.Fatalf("expected the control scenario to measure to the same width, got %g", w)
	}

	costHyphen := lineCost(withHyphen, 0, 2, 70, 5)
	costSpace := lineCost(withSpace, 0, 2, 70, 5)
	if costHyphen <= costSpace {
		t.Fatalf("expected a hyphenation break to cost strictly more than a space break of equal width, got %g <= %g", costHyphen, costSpace)
	}
}

// TestFlattenParagraphCollapsesGluedSpan checks that a glued InlineSpan
// becomes a single AtomSpan whose width is the sum of its children's
// measured widths, rather than exposing its children as separate,
// independently-breakable atoms.
func TestFlattenParagraphCollapsesGluedSpan(t *testing.T) {
	arena := tree.NewArena()
	word := arena.NewInline(tree.NewText("ab"))
	span := arena.NewInline(tree.NewInlineSpan([]tree.InlineRef{word}, nil, true))

	measureText := func(s string, _ *style.Style) float64 { return float64(len(s)) * 10 }
	spaceWidth := func(_ *style.Style) float64 { return 5 }

	atoms := FlattenParagraph(arena, []tree.InlineRef{span}, nil, measureText, spaceWidth)
	if len(atoms) != 1 {
		t.Fatalf("expected the glued span to collapse to 1 atom, got %d", len(atoms))
	}
	if atoms[0].Kind != AtomSpan {
		t.Fatalf("expected an AtomSpan, got %v", atoms[0].Kind)
	}
	if atoms[0].Width != 20 {
		t.Fatalf("expected the span's width to be its child's measured width (20), got %g", atoms[0].Width)
	}
}

// TestFlattenParagraphUngluedSpanExposesChildren checks the opposite:
// an un-glued span's children become independent atoms the
// line-breaker may split between.
func TestFlattenParagraphUngluedSpanExposesChildren(t *testing.T) {
	arena := tree.NewArena()
	a := arena.NewInline(tree.NewText("a"))
	sep := arena.NewInline(tree.NewSeparator(tree.Space, 0))
	b := arena.NewInline(tree.NewText("b"))
	span := arena.NewInline(tree.NewInlineSpan([]tree.InlineRef{a, sep, b}, nil, false))

	measureText := func(s string, _ *style.Style) float64 { return float64(len(s)) * 10 }
	spaceWidth := func(_ *style.Style) float64 { return 5 }

	atoms := FlattenParagraph(arena, []tree.InlineRef{span}, nil, measureText, spaceWidth)
	if len(atoms) != 3 {
		t.Fatalf("expected 3 independent atoms, got %d", len(atoms))
	}
	if atoms[1].Kind != AtomSeparator {
		t.Fatalf("expected the middle atom to be the separator, got %v", atoms[1].Kind)
	}
}
