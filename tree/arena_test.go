package tree

import "testing"

func TestArenaInlineRoundTrip(t *testing.T) {
	a := NewArena()
	ref := a.NewInline(NewText("hello"))
	if got := a.Inline(ref).TextValue; got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
	if a.NumInline() != 1 {
		t.Fatalf("NumInline() = %d, want 1", a.NumInline())
	}
}

func TestArenaBlockRoundTrip(t *testing.T) {
	a := NewArena()
	text := a.NewInline(NewText("hi"))
	para := a.NewBlock(NewParagraph([]InlineRef{text}))

	got := a.Block(para)
	if got.Kind != Paragraph {
		t.Fatalf("Kind = %s, want paragraph", got.Kind)
	}
	if len(got.Content) != 1 || got.Content[0] != text {
		t.Fatalf("Content = %v, want [%v]", got.Content, text)
	}
}

func TestArenaMutateInPlace(t *testing.T) {
	a := NewArena()
	ref := a.NewInline(NewInlineSpan(nil, nil, false))

	width := 42.0
	a.Inline(ref).WidthOverride = &width

	if got := a.Inline(ref).WidthOverride; got == nil || *got != 42.0 {
		t.Fatalf("WidthOverride = %v, want 42.0", got)
	}
}

func TestArenaNestedContainer(t *testing.T) {
	a := NewArena()
	text := a.NewInline(NewText("x"))
	p1 := a.NewBlock(NewParagraph([]InlineRef{text}))
	p2 := a.NewBlock(NewParagraph([]InlineRef{text}))
	outer := a.NewBlock(NewContainer(DirectionVertical, []BlockRef{p1, p2}, false))

	got := a.Block(outer)
	if got.Direction != DirectionVertical {
		t.Fatalf("Direction = %v, want vertical", got.Direction)
	}
	if len(got.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(got.Children))
	}
	// Both paragraphs share the same inline child by reference, the
	// same way the source's intrusive ref-counting let two parents
	// point at one child — here as an index instead of a pointer.
	if a.Block(got.Children[0]).Content[0] != a.Block(got.Children[1]).Content[0] {
		t.Fatal("paragraphs should share the same InlineRef")
	}
}
