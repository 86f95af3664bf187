package interp

import (
	"testing"

	"sap/value"
)

func TestCheckerResolvesIdentAndArithmeticType(t *testing.T) {
	c := NewChecker()
	scope := NewScope()
	d := scope.Declare("x", c.Types.Primitive(value.Int))

	expr := &Expr{
		Kind:     Binary,
		Operands: []*Expr{{Kind: Ident, Name: "x"}, {Kind: Literal, LitValue: int64(1)}},
		Ops:      []BinaryOp{Add},
	}
	if err := c.CheckExpr(expr, scope); err != nil {
		t.Fatal(err)
	}
	if expr.Operands[0].Decl != d {
		t.Fatal("expected ident to resolve to the declared Decl")
	}
	if expr.ResolvedType != c.Types.Primitive(value.Int) {
		t.Fatalf("expected result type int, got %s", expr.ResolvedType)
	}
}

func TestCheckerRejectsUndeclaredIdent(t *testing.T) {
	c := NewChecker()
	scope := NewScope()
	expr := &Expr{Kind: Ident, Name: "nope"}
	if err := c.CheckExpr(expr, scope); err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestCheckerComparisonProducesBool(t *testing.T) {
	c := NewChecker()
	scope := NewScope()
	intT := c.Types.Primitive(value.Int)
	expr := &Expr{
		Kind:     Binary,
		Operands: []*Expr{{Kind: Literal, LitValue: int64(1)}, {Kind: Literal, LitValue: int64(2)}},
		Ops:      []BinaryOp{Lt},
	}
	if err := c.CheckExpr(expr, scope); err != nil {
		t.Fatal(err)
	}
	if expr.ResolvedType != c.Types.Primitive(value.Bool) {
		t.Fatalf("expected bool, got %s", expr.ResolvedType)
	}
	_ = intT
}

func TestCheckerArrayLiteralRequiresMatchingElementTypes(t *testing.T) {
	c := NewChecker()
	scope := NewScope()
	expr := &Expr{
		Kind: ArrayLit,
		Elems: []*Expr{
			{Kind: Literal, LitValue: int64(1)},
			{Kind: Literal, LitValue: 1.5},
		},
	}
	if err := c.CheckExpr(expr, scope); err == nil {
		t.Fatal("expected an error for mixed-type array literal elements")
	}
}

func TestCheckerIfLetOptionalBindsUnwrappedType(t *testing.T) {
	c := NewChecker()
	scope := NewScope()
	intT := c.Types.Primitive(value.Int)
	optT := c.Types.Optional(intT)
	scope.Declare("maybe", optT)

	expr := &Expr{
		Kind:    IfLetOptional,
		Subject: &Expr{Kind: Ident, Name: "maybe"},
		Bind:    "v",
		Then: []Stmt{
			{Kind: ExprStmt, Expr: &Expr{Kind: Ident, Name: "v"}},
		},
	}
	if err := c.CheckExpr(expr, scope); err != nil {
		t.Fatal(err)
	}
	if expr.Then[0].Expr.Decl.Type != intT {
		t.Fatalf("expected bound name to have the optional's element type")
	}
}
