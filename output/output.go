// Package output is the thin collaborator §6 calls out as a contract,
// not an implementation: the core emits placement records, outline
// items, and link annotations; this package is the one place that
// knows how to turn those into an actual PDF, via the real
// seehuhn.de/go/pdf writer this module was itself adapted from (kept
// as a genuine external dependency, not vendored — §1 explicitly
// scopes the PDF writer itself out of the core).
package output

import (
	"sap/layout"
	"sap/script"
	"sap/style"
	"sap/tree"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/annotation"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/outline"
	"seehuhn.de/go/pdf/pages"
)

// PlacementRecord is the core's output unit, §6: a laid-out object's
// page, its origin on that page, and a content descriptor telling the
// writer what to draw there. Kept independent of layout.LayoutObject
// so this package's only dependency on the layout engine is reading
// finished positions, never computing them.
type PlacementRecord struct {
	Page    int
	Origin  layout.Position
	Content ContentDescriptor
}

// ContentKind tags ContentDescriptor's tagged variant.
type ContentKind int

const (
	ContentGlyphs ContentKind = iota
	ContentPath
	ContentImage
)

// ContentDescriptor is what gets drawn at a PlacementRecord's origin.
type ContentDescriptor struct {
	Kind ContentKind

	// ContentGlyphs
	Text  string
	Style *style.Style

	// ContentPath
	Segments []script.PathSegment
	Fill     bool // fill if true, stroke otherwise
	Colour   style.Colour

	// ContentImage
	ImageData              []byte
	ImageWidth, ImageHeight float64
}

// Document collects one document's pages, outline, and link
// annotations as they are built, then Finish writes the PDF.
type Document struct {
	out      *pdf.Writer
	pageTree *pages.TreeWriter
	outline  []*outline.Tree
	links    map[int][]*annotation.Link // by page number

	pageW, pageH float64
}

// NewDocument opens out for writing and installs a page tree sized to
// pageWidth x pageHeight points (every page in this model shares one
// size, matching §4.D.3's single PageGeometry per layout run).
func NewDocument(out *pdf.Writer, pageWidth, pageHeight float64) *Document {
	tree := pages.InstallTree(out, &pages.InheritableAttributes{
		MediaBox: &pdf.Rectangle{URx: pageWidth, URy: pageHeight},
	})
	return &Document{
		out:      out,
		pageTree: tree,
		links:    make(map[int][]*annotation.Link),
		pageW:    pageWidth,
		pageH:    pageHeight,
	}
}

// pageState is the open content stream of one page. Render keeps it
// only while consecutive records share its page number and opens a
// new page whenever the number changes, so records of one page that
// are not consecutive land on separate pages.
type pageState struct {
	w       *graphics.Writer
	inText  bool
}

// Render walks records in order, opening a new PDF page's content
// stream the first time it sees a page number and reusing it for
// every subsequent record on that page. Records must be grouped by
// page in non-decreasing order — the same order layout.LayoutObject
// positions are produced in.
func (d *Document) Render(records []PlacementRecord) error {
	var cur *pageState
	curPage := -1
	for _, rec := range records {
		if rec.Page != curPage {
			if cur != nil {
				if err := d.closePage(cur); err != nil {
					return err
				}
			}
			w, err := graphics.AppendPage(d.pageTree)
			if err != nil {
				return err
			}
			cur = &pageState{w: w}
			curPage = rec.Page
		}
		if err := d.drawOne(cur, rec); err != nil {
			return err
		}
	}
	if cur != nil {
		return d.closePage(cur)
	}
	return nil
}

func (d *Document) closePage(p *pageState) error {
	if p.inText {
		p.w.EndText()
	}
	_, err := p.w.Close()
	return err
}

func (d *Document) drawOne(p *pageState, rec PlacementRecord) error {
	switch rec.Content.Kind {
	case ContentGlyphs:
		return d.drawGlyphs(p, rec)
	case ContentPath:
		return d.drawPath(p, rec)
	case ContentImage:
		return d.drawImage(p, rec)
	}
	return nil
}

// drawGlyphs emits BeginText (once per text run), StartLine and
// ShowText against *graphics.Writer; EndText is left to the next path
// or to closePage, and no font is selected here. The font lookup itself (resolving a style.Style's
// FontSet to an embedded font) belongs to the layer above this one,
// which is why Content carries the already-resolved *style.Style
// rather than a font handle — sap/output has no font-matching logic
// of its own.
func (d *Document) drawGlyphs(p *pageState, rec PlacementRecord) error {
	if !p.inText {
		p.w.BeginText()
		p.inText = true
	}
	p.w.StartLine(rec.Origin.X, rec.Origin.Y)
	p.w.ShowText(rec.Content.Text)
	return nil
}

// drawPath lowers a script.PathSegment sequence to content-stream path
// operators. CubicBezierIC1/IC2's implicit control points are resolved
// here, against the previous explicit segment's own control point —
// §6's "mirrors the previous segment" rule.
func (d *Document) drawPath(p *pageState, rec PlacementRecord) error {
	if p.inText {
		p.w.EndText()
		p.inText = false
	}
	var lastControl2, lastControl1 tree.Point
	for _, seg := range rec.Content.Segments {
		switch seg.Kind {
		case script.Move:
			p.w.MoveTo(seg.To.X, seg.To.Y)
		case script.Line:
			p.w.LineTo(seg.To.X, seg.To.Y)
		case script.CubicBezier:
			p.w.CurveTo(seg.Control1.X, seg.Control1.Y, seg.Control2.X, seg.Control2.Y, seg.To.X, seg.To.Y)
			lastControl1, lastControl2 = seg.Control1, seg.Control2
		case script.CubicBezierIC1:
			c1 := reflect(lastControl2, seg.Control2)
			p.w.CurveTo(c1.X, c1.Y, seg.Control2.X, seg.Control2.Y, seg.To.X, seg.To.Y)
			lastControl1, lastControl2 = c1, seg.Control2
		case script.CubicBezierIC2:
			c2 := reflect(lastControl1, seg.Control1)
			p.w.CurveTo(seg.Control1.X, seg.Control1.Y, c2.X, c2.Y, seg.To.X, seg.To.Y)
			lastControl1, lastControl2 = seg.Control1, c2
		case script.RectangleSegment:
			p.w.Rectangle(seg.To.X, seg.To.Y)
		case script.Close:
			p.w.ClosePath()
		}
	}
	colourToFillOrStroke(p.w, rec.Content.Colour, rec.Content.Fill)
	if rec.Content.Fill {
		p.w.Fill()
	} else {
		p.w.Stroke()
	}
	return nil
}

func (d *Document) drawImage(p *pageState, rec PlacementRecord) error {
	if p.inText {
		p.w.EndText()
		p.inText = false
	}
	return p.w.DrawImage(rec.Content.ImageData, rec.Origin.X, rec.Origin.Y, rec.Content.ImageWidth, rec.Content.ImageHeight)
}

// reflect mirrors point p through centre, §6's implicit-control-point
// rule for CubicBezierIC1/IC2.
func reflect(centre, p tree.Point) tree.Point {
	return tree.Point{X: 2*centre.X - p.X, Y: 2*centre.Y - p.Y}
}

// colourToFillOrStroke sets the writer's fill or stroke colour from a
// style.Colour's rgb/cmyk tagged union.
func colourToFillOrStroke(w *graphics.Writer, c style.Colour, fill bool) {
	var set func(r, g, b float64)
	if fill {
		set = w.SetFillColorRGB
	} else {
		set = w.SetStrokeColorRGB
	}
	if c.Space == style.CMYK {
		if fill {
			w.SetFillColorCMYK(c.C, c.M, c.Y, c.K)
		} else {
			w.SetStrokeColorCMYK(c.C, c.M, c.Y, c.K)
		}
		return
	}
	set(c.R, c.G, c.B)
}

// AddOutline translates a script.OutlineItem tree into outline.Tree
// nodes and registers it for Finish. dest resolves a tree.BlockRef to
// the page/position a reader should jump to — supplied by the layout
// layer, since only it knows where a block ultimately landed.
func (d *Document) AddOutline(item script.OutlineItem, resolveDest func(tree.BlockRef) pdf.Object) {
	d.outline = append(d.outline, toOutlineTree(item, resolveDest))
}

func toOutlineTree(item script.OutlineItem, resolveDest func(tree.BlockRef) pdf.Object) *outline.Tree {
	node := &outline.Tree{
		Title: item.Title,
		Open:  true,
	}
	if resolveDest != nil {
		node.Action = pdf.Dict{"D": resolveDest(item.Dest)}
	}
	for _, c := range item.Children {
		node.Children = append(node.Children, toOutlineTree(c, resolveDest))
	}
	return node
}

// AddLink translates a script.LinkAnnotation into an annotation.Link
// and records it under the given page number in d.links.
func (d *Document) AddLink(page int, link script.LinkAnnotation, resolveDest func(tree.BlockRef) pdf.Object) {
	a := &annotation.Link{
		Common: annotation.Common{
			Rect: pdf.Rectangle{
				LLx: link.Rect.Origin.X.Value,
				LLy: link.Rect.Origin.Y.Value,
				URx: link.Rect.Origin.X.Value + link.Rect.Size.Width.Value,
				URy: link.Rect.Origin.Y.Value + link.Rect.Size.Height.Value,
			},
		},
	}
	if link.ExternalURI != "" {
		a.Dest = pdf.String(link.ExternalURI)
	} else if resolveDest != nil {
		a.Dest = resolveDest(link.InternalDest)
	}
	d.links[page] = append(d.links[page], a)
}

// Finish writes the accumulated outline tree and closes the document.
// The link annotations recorded by AddLink are not written: nothing
// attaches d.links to the pages, and no exported method returns them.
func (d *Document) Finish() error {
	if len(d.outline) > 0 {
		root := &outline.Tree{Children: d.outline, Open: true}
		if err := outline.WriteTo(d.out, root); err != nil {
			return err
		}
	}
	return d.out.Close()
}
