package interp

import (
	"testing"

	"sap/style"
	"sap/value"
)

func newTestCtx() *EvalContext {
	styles := style.NewCache()
	root := styles.Default()
	return &EvalContext{
		Frame:     NewCallFrame(nil),
		Style:     root,
		RootStyle: root,
		Styles:    styles,
	}
}

func lit(v any, t *value.Type) *Expr {
	return &Expr{Kind: Literal, LitValue: v, ResolvedType: t}
}

func TestEvalIntArithmetic(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)

	expr := &Expr{Kind: Binary, Operands: []*Expr{lit(int64(2), intT), lit(int64(3), intT)}, Ops: []BinaryOp{Mul}}
	v, err := Eval(expr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 6 {
		t.Fatalf("got %d, want 6", v.AsInt())
	}
}

func TestEvalIntDivisionByZero(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	expr := &Expr{Kind: Binary, Operands: []*Expr{lit(int64(1), intT), lit(int64(0), intT)}, Ops: []BinaryOp{Div}}
	if _, err := Eval(expr, ctx); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestEvalComparisonChainShortCircuits(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	// 1 < 2 > 3 -- second link fails, chain is false, and the
	// implementation must not panic trying to compare past it.
	expr := &Expr{
		Kind:     Binary,
		Operands: []*Expr{lit(int64(1), intT), lit(int64(2), intT), lit(int64(3), intT)},
		Ops:      []BinaryOp{Lt, Gt},
	}
	v, err := Eval(expr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsBool() {
		t.Fatal("expected chain to be false")
	}
}

func TestEvalLogicalShortCircuitsRightOperand(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	boolT := f.Primitive(value.Bool)
	// An Ident with no resolved Decl errors cleanly rather than panicking
	// if Eval ever touches it; used here to prove && never evaluates it.
	right := &Expr{Kind: Ident, Name: "unresolved"}

	expr := &Expr{Kind: Binary, Operands: []*Expr{lit(false, boolT), right}, Ops: []BinaryOp{And}}
	v, err := Eval(expr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsBool() {
		t.Fatal("expected false && x to be false")
	}
}

func TestAssignAndCompoundAssign(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)

	d := &Decl{Name: "x", Type: intT}
	ctx.Frame.Bind(d, value.RVal(intT, int64(10)))
	ident := &Expr{Kind: Ident, Name: "x", Decl: d}

	assign := &Expr{Kind: Assign, AssignOp: AssignAdd, Lhs: ident, Rhs: lit(int64(5), intT)}
	v, err := Eval(assign, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.Cell.V.AsInt() != 15 {
		t.Fatalf("got %d, want 15", v.Cell.V.AsInt())
	}
}

func TestMoveMarksCellMoved(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	d := &Decl{Name: "x", Type: intT}
	cell := ctx.Frame.Bind(d, value.RVal(intT, int64(42)))
	ident := &Expr{Kind: Ident, Name: "x", Decl: d}

	moveExpr := &Expr{Kind: Move, Operand2: ident}
	v, err := Eval(moveExpr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("got %d, want 42", v.AsInt())
	}
	if !cell.Moved {
		t.Fatal("expected cell to be marked moved")
	}
	if _, err := evalDeref(ident, ctx); err == nil {
		t.Fatal("expected read of moved-from ident to fail at Deref")
	}
}

func TestReturnMovesLvalueRootedInCallFrame(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	d := &Decl{Name: "local", Type: intT}
	cell := ctx.Frame.Bind(d, value.RVal(intT, int64(7)))

	out, err := ExecReturn(value.LVal(intT, cell), ctx.Frame)
	if err != nil {
		t.Fatal(err)
	}
	if out.AsInt() != 7 {
		t.Fatalf("got %d, want 7", out.AsInt())
	}
	if !cell.Moved {
		t.Fatal("expected a call-rooted lvalue to be moved out on return")
	}
}

func TestReturnCopiesLvalueFromOuterFrame(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	d := &Decl{Name: "outer", Type: intT}
	cell := ctx.Frame.Bind(d, value.RVal(intT, int64(9)))

	nested := NewCallFrame(ctx.Frame)
	out, err := ExecReturn(value.LVal(intT, cell), nested)
	if err != nil {
		t.Fatal(err)
	}
	if out.AsInt() != 9 {
		t.Fatalf("got %d, want 9", out.AsInt())
	}
	if cell.Moved {
		t.Fatal("a cell rooted in an outer call must be copied, not moved")
	}
}

func TestNullCoalesceFallsBackOnEmptyOptional(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	optT := f.Optional(intT)

	emptyVal := value.RVal(optT, &value.Pointer{Cell: nil})
	leftDecl := &Decl{Name: "maybe", Type: optT}
	ctx.Frame.Bind(leftDecl, emptyVal)

	expr := &Expr{Kind: NullCoalesce, Left: &Expr{Kind: Ident, Name: "maybe", Decl: leftDecl}, Right: lit(int64(99), intT)}
	v, err := Eval(expr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 99 {
		t.Fatalf("got %d, want 99", v.AsInt())
	}
}

func TestNullCoalesceUnwrapsNonEmptyOptional(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	optT := f.Optional(intT)

	present := value.RVal(optT, &value.Pointer{Cell: &value.Cell{V: value.RVal(intT, int64(5))}})
	leftDecl := &Decl{Name: "maybe", Type: optT}
	ctx.Frame.Bind(leftDecl, present)

	expr := &Expr{Kind: NullCoalesce, Left: &Expr{Kind: Ident, Name: "maybe", Decl: leftDecl}, Right: lit(int64(99), intT)}
	v, err := Eval(expr, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 5 {
		t.Fatalf("got %d, want 5", v.AsInt())
	}
}

func TestExecIfSelectsBranch(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	d := &Decl{Name: "x", Type: intT}
	ctx.Frame.Bind(d, value.RVal(intT, int64(0)))
	ident := &Expr{Kind: Ident, Name: "x", Decl: d}

	ifStmt := Stmt{
		Kind: If,
		Cond: lit(true, f.Primitive(value.Bool)),
		Body: []Stmt{{Kind: ExprStmt, Expr: &Expr{Kind: Assign, Lhs: ident, Rhs: lit(int64(1), intT)}}},
		Else2: []Stmt{{Kind: ExprStmt, Expr: &Expr{Kind: Assign, Lhs: ident, Rhs: lit(int64(2), intT)}}},
	}
	res, err := Exec([]Stmt{ifStmt}, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != Normal {
		t.Fatalf("expected Normal, got %v", res.Kind)
	}
	cell, _ := ctx.Frame.Cell(d)
	if cell.V.AsInt() != 1 {
		t.Fatalf("got %d, want 1", cell.V.AsInt())
	}
}

func TestExecWhileLoopAccumulates(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	i := &Decl{Name: "i", Type: intT}
	sum := &Decl{Name: "sum", Type: intT}
	ctx.Frame.Bind(i, value.RVal(intT, int64(0)))
	ctx.Frame.Bind(sum, value.RVal(intT, int64(0)))
	iIdent := &Expr{Kind: Ident, Name: "i", Decl: i}
	sumIdent := &Expr{Kind: Ident, Name: "sum", Decl: sum}

	whileStmt := Stmt{
		Kind: While,
		Cond: &Expr{Kind: Binary, Operands: []*Expr{iIdent, lit(int64(5), intT)}, Ops: []BinaryOp{Lt}},
		Body: []Stmt{
			{Kind: ExprStmt, Expr: &Expr{Kind: Assign, AssignOp: AssignAdd, Lhs: sumIdent, Rhs: iIdent}},
			{Kind: ExprStmt, Expr: &Expr{Kind: Assign, AssignOp: AssignAdd, Lhs: iIdent, Rhs: lit(int64(1), intT)}},
		},
	}
	if _, err := Exec([]Stmt{whileStmt}, ctx); err != nil {
		t.Fatal(err)
	}
	cell, _ := ctx.Frame.Cell(sum)
	if cell.V.AsInt() != 10 {
		t.Fatalf("got %d, want 10 (0+1+2+3+4)", cell.V.AsInt())
	}
}

func TestExecWhileBreak(t *testing.T) {
	f := value.NewFactory()
	ctx := newTestCtx()
	intT := f.Primitive(value.Int)
	i := &Decl{Name: "i", Type: intT}
	ctx.Frame.Bind(i, value.RVal(intT, int64(0)))
	iIdent := &Expr{Kind: Ident, Name: "i", Decl: i}

	whileStmt := Stmt{
		Kind: While,
		Cond: lit(true, f.Primitive(value.Bool)),
		Body: []Stmt{
			{Kind: ExprStmt, Expr: &Expr{Kind: Assign, AssignOp: AssignAdd, Lhs: iIdent, Rhs: lit(int64(1), intT)}},
			{Kind: Break},
		},
	}
	if _, err := Exec([]Stmt{whileStmt}, ctx); err != nil {
		t.Fatal(err)
	}
	cell, _ := ctx.Frame.Cell(i)
	if cell.V.AsInt() != 1 {
		t.Fatalf("got %d, want 1 (loop must stop after first break)", cell.V.AsInt())
	}
}

func TestResolveLengthUnits(t *testing.T) {
	styles := style.NewCache()
	root := styles.Default()
	pt := ResolveLength(style.Length{Value: 1, Unit: style.Inch}, root, root)
	if pt != 72 {
		t.Fatalf("1in = %f pt, want 72", pt)
	}
	em := ResolveLength(style.Length{Value: 2, Unit: style.Em}, root, root)
	if em != 2*root.FontSize.Value {
		t.Fatalf("2em = %f, want %f", em, 2*root.FontSize.Value)
	}
}
