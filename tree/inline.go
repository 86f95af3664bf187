package tree

// InlineKind tags which alternative of InlineObject's tagged variant is
// populated, replacing the source's virtual dispatch over an
// InlineObject base class per §9.
type InlineKind int

const (
	Text InlineKind = iota
	Separator
	InlineSpan
	ScriptCall
)

func (k InlineKind) String() string {
	switch k {
	case Text:
		return "text"
	case Separator:
		return "separator"
	case InlineSpan:
		return "inline-span"
	case ScriptCall:
		return "script-call"
	default:
		return "unknown"
	}
}

// SeparatorKind is the closed set of separator flavours, §3.3.
type SeparatorKind int

const (
	Space SeparatorKind = iota
	ExplicitBreak
	HyphenationPoint
)

// InlineObject is one node of the inline tree. Exactly the fields for
// Kind are meaningful; the rest are zero.
type InlineObject struct {
	Kind InlineKind

	// Text
	TextValue string

	// Separator
	SepKind    SeparatorKind
	HyphenCost float64 // only meaningful when SepKind == HyphenationPoint

	// InlineSpan: a run of inline children, optionally with a width
	// forced rather than measured, and optionally "glued" — the
	// line-breaker must not place a break point inside it.
	Children      []InlineRef
	WidthOverride *float64
	Glued         bool

	// ScriptCall: a pending interpreter call the layout engine resolves
	// when it walks this node, §4.C.3. Kept as `any` rather than a
	// concrete interp type to avoid tree importing interp, which
	// itself builds trees.
	Call any
}

// NewText builds a Text inline object.
func NewText(s string) InlineObject {
	return InlineObject{Kind: Text, TextValue: s}
}

// NewSeparator builds a Separator inline object. cost is only
// meaningful for kind == HyphenationPoint.
func NewSeparator(kind SeparatorKind, cost float64) InlineObject {
	return InlineObject{Kind: Separator, SepKind: kind, HyphenCost: cost}
}

// NewInlineSpan builds an InlineSpan over children. A nil widthOverride
// means the span's width is measured from its children.
func NewInlineSpan(children []InlineRef, widthOverride *float64, glued bool) InlineObject {
	return InlineObject{
		Kind:          InlineSpan,
		Children:      children,
		WidthOverride: widthOverride,
		Glued:         glued,
	}
}

// NewScriptCall builds a ScriptCall inline object wrapping call, which
// the layout engine type-asserts back to its own call type.
func NewScriptCall(call any) InlineObject {
	return InlineObject{Kind: ScriptCall, Call: call}
}
