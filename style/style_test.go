package style

import "testing"

func TestCombineFallsBackToParent(t *testing.T) {
	c := NewCache()
	def := c.Default()

	bold := Bold
	override := &Style{FontStyle: &bold}

	got := c.Combine(def, override)
	if got.FontStyle != override.FontStyle {
		t.Fatal("Combine did not take the override's FontStyle")
	}
	if got.FontSize != def.FontSize {
		t.Fatal("Combine did not fall back to the parent's FontSize")
	}
}

func TestCombineIsInterned(t *testing.T) {
	c := NewCache()
	def := c.Default()

	bold := Bold
	override := &Style{FontStyle: &bold}

	a := c.Combine(def, override)
	b := c.Combine(def, override)
	if a != b {
		t.Fatal("Combine with the same parent/override pair returned different pointers")
	}
}

func TestCombineNilOverrideReturnsParent(t *testing.T) {
	c := NewCache()
	def := c.Default()
	if got := c.Combine(def, nil); got != def {
		t.Fatal("Combine(parent, nil) should return parent unchanged")
	}
}

func TestCombineChaining(t *testing.T) {
	c := NewCache()
	def := c.Default()

	centre := Centre
	sectionStyle := &Style{Alignment: &centre}
	section := c.Combine(def, sectionStyle)

	justified := Justified
	paraStyle := &Style{Alignment: &justified}
	para := c.Combine(section, paraStyle)

	if *para.Alignment != Justified {
		t.Fatalf("Alignment = %v, want Justified", *para.Alignment)
	}
	if para.FontSize != def.FontSize {
		t.Fatal("chained combine lost the root default's FontSize")
	}
}
