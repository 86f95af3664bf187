package tree

// BlockKind tags which alternative of BlockObject's tagged variant is
// populated.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Container
	Image
	Spacer
	RawBlock
	Path
	ScriptBlock
)

func (k BlockKind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Container:
		return "container"
	case Image:
		return "image"
	case Spacer:
		return "spacer"
	case RawBlock:
		return "raw-block"
	case Path:
		return "path"
	case ScriptBlock:
		return "script-block"
	default:
		return "unknown"
	}
}

// Direction is a Container's flow axis, §3.3.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionVertical
	DirectionHorizontal
)

// PathSegmentKind tags a PathSegment's variant, one of the seven
// drawing primitives of §6.
type PathSegmentKind int

const (
	Move PathSegmentKind = iota
	Line
	CubicBezier
	CubicBezierIC1 // implicit first control point (mirrors the previous segment)
	CubicBezierIC2 // implicit second control point
	Rectangle
	Close
)

// Point is a 2D coordinate in the current path's local space.
type Point struct {
	X, Y float64
}

// PathSegment is one drawing command of a Path block, §3.3/§6. Only
// the fields relevant to Kind are populated; Close and
// CubicBezierIC1/IC2 use fewer fields than CubicBezier.
type PathSegment struct {
	Kind PathSegmentKind

	To       Point // Move, Line, Rectangle (opposite corner), all bezier kinds
	Control1 Point // first control point: CubicBezier, CubicBezierIC2 (only the first is explicit there)
	Control2 Point // second control point: CubicBezier, CubicBezierIC1 (only the second is explicit there)
}

// BlockObject is one node of the block tree.
type BlockObject struct {
	Kind BlockKind

	// Paragraph
	Content []InlineRef

	// Container
	Direction Direction
	Children  []BlockRef
	Glued     bool // must not split across a page break

	// Image
	ImageData            []byte
	ImageWidth, ImageHeight float64 // points

	// Spacer
	SpacerSize float64 // points, along the enclosing container's axis

	// RawBlock: pre-wrapped text, laid out as given rather than
	// reflowed by the line-breaker.
	RawLines []string

	// Path
	Segments []PathSegment

	// ScriptBlock: a pending interpreter call, resolved during layout,
	// §4.C.3. Kept as `any` for the same reason as InlineObject.Call.
	Call any
}

// NewParagraph builds a Paragraph over content.
func NewParagraph(content []InlineRef) BlockObject {
	return BlockObject{Kind: Paragraph, Content: content}
}

// NewContainer builds a Container over children.
func NewContainer(dir Direction, children []BlockRef, glued bool) BlockObject {
	return BlockObject{Kind: Container, Direction: dir, Children: children, Glued: glued}
}

// NewImage builds an Image block from bitmap data at the given
// physical size, in points.
func NewImage(data []byte, width, height float64) BlockObject {
	return BlockObject{Kind: Image, ImageData: data, ImageWidth: width, ImageHeight: height}
}

// NewSpacer builds a Spacer of the given size, in points.
func NewSpacer(size float64) BlockObject {
	return BlockObject{Kind: Spacer, SpacerSize: size}
}

// NewRawBlock builds a RawBlock from pre-wrapped lines.
func NewRawBlock(lines []string) BlockObject {
	return BlockObject{Kind: RawBlock, RawLines: lines}
}

// NewPath builds a Path block from its drawing segments.
func NewPath(segments []PathSegment) BlockObject {
	return BlockObject{Kind: Path, Segments: segments}
}

// NewScriptBlock builds a ScriptBlock wrapping call.
func NewScriptBlock(call any) BlockObject {
	return BlockObject{Kind: ScriptBlock, Call: call}
}
