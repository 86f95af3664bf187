// Package style implements Style, §3.4: the extensible set of
// text/paragraph formatting properties a document tree node inherits
// from its ancestors unless it overrides them. Composition is "extend
// with default fallback" — combining a child's overrides onto a
// parent's style only ever fills in fields the child left unset — and
// every combined Style is interned so two nodes that end up with the
// same effective formatting compare equal by pointer, the same way
// value.Type does for the type system.
package style

import "sync"

// Unit is one of the eight length units a script may write a Length
// in, §6.
type Unit int

const (
	Millimetre Unit = iota
	Centimetre
	Em
	Ex
	Inch
	Point
	Pica
	RootEm
)

// Length is a value tagged with the unit it was written in. Resolving
// it to points (the layout engine's working unit) needs the current
// Style, since Em/Ex/RootEm are relative to a font size — that
// resolution is interp.ResolveLength, not a method here, since it
// needs the evaluator's current/root style pair rather than just one
// Style.
type Length struct {
	Value float64
	Unit  Unit
}

// ColourSpace tags Colour's tagged union, §6.
type ColourSpace int

const (
	RGB ColourSpace = iota
	CMYK
)

// Colour is an RGB or CMYK tagged union; components are in [0, 1].
type Colour struct {
	Space ColourSpace
	R, G, B    float64 // RGB
	C, M, Y, K float64 // CMYK
}

// FontStyle selects a font's slant/weight variant.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
	Italic
	BoldItalic
)

// Alignment is a paragraph's horizontal text alignment, §3.4.
type Alignment int

const (
	Left Alignment = iota
	Right
	Centre
	Justified
)

// FontSet is an ordered fallback list of font family names; the
// layout engine resolves each name to a loaded font.FontFile lazily,
// trying the next name on a missing glyph.
type FontSet struct {
	Names []string
}

// Style holds every field as a pointer so "not set on this node" is
// distinguishable from "explicitly set to the zero value" — Combine
// relies on that distinction to implement extend-with-default-fallback.
type Style struct {
	FontSet          *FontSet
	FontStyle        *FontStyle
	FontSize         *Length
	LineSpacing      *Length
	ParagraphSpacing *Length
	Alignment        *Alignment
	Colour           *Colour
}

// Cache interns every Style it produces via Combine, so repeated
// combination of the same parent/override pair (common: every
// paragraph in a chapter combines the same section style onto the same
// document default) returns the identical pointer.
type Cache struct {
	mu       sync.Mutex
	combined map[pairKey]*Style
	def      *Style
}

type pairKey struct {
	parent, override *Style
}

// NewCache returns a Cache whose Default is a fully-populated,
// interned baseline style: 11pt regular text, single line spacing, no
// extra paragraph spacing, left-aligned, black.
func NewCache() *Cache {
	fontStyle := Regular
	fontSize := Length{Value: 11, Unit: Point}
	lineSpacing := Length{Value: 1, Unit: Em}
	paraSpacing := Length{Value: 0, Unit: Point}
	alignment := Left
	colour := Colour{Space: RGB}

	def := &Style{
		FontSet:          &FontSet{Names: []string{"serif"}},
		FontStyle:        &fontStyle,
		FontSize:         &fontSize,
		LineSpacing:      &lineSpacing,
		ParagraphSpacing: &paraSpacing,
		Alignment:        &alignment,
		Colour:           &colour,
	}
	return &Cache{combined: make(map[pairKey]*Style), def: def}
}

// Default returns the Cache's baseline Style, every field populated.
func (c *Cache) Default() *Style { return c.def }

// Combine extends parent with override's explicitly-set fields,
// interning the result: calling Combine twice with the same two
// pointers returns the same *Style both times.
func (c *Cache) Combine(parent, override *Style) *Style {
	if override == nil {
		return parent
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := pairKey{parent, override}
	if s, ok := c.combined[key]; ok {
		return s
	}

	s := &Style{
		FontSet:          pick(parent.FontSet, override.FontSet),
		FontStyle:        pick(parent.FontStyle, override.FontStyle),
		FontSize:         pick(parent.FontSize, override.FontSize),
		LineSpacing:      pick(parent.LineSpacing, override.LineSpacing),
		ParagraphSpacing: pick(parent.ParagraphSpacing, override.ParagraphSpacing),
		Alignment:        pick(parent.Alignment, override.Alignment),
		Colour:           pick(parent.Colour, override.Colour),
	}
	c.combined[key] = s
	return s
}

// pick returns override if it is set, else parent — the
// extend-with-default-fallback rule applied field by field.
func pick[T any](parent, override *T) *T {
	if override != nil {
		return override
	}
	return parent
}
