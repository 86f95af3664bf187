package interp

import (
	"sap/errs"
	"sap/value"
)

// Phase distinguishes when a ScriptBlock/ScriptCall node runs, §4.C.3:
// most scripts only need to run once a document's styles and layout
// are known, but a handful of constructs (document-wide struct/enum
// declarations, for instance) must run before typecheck can even
// resolve names used elsewhere.
type Phase int

const (
	PhaseTypecheck Phase = iota
	PhaseLayout
)

// ResultKind tags what a ScriptBlock/ScriptCall produced, §4.C.3: an
// inline span to splice into the surrounding paragraph, a block
// object to place in the surrounding container, or an already laid
// out object to splice directly into page output.
type ResultKind int

const (
	ResultInline ResultKind = iota
	ResultBlock
	ResultLayout
)

// ScriptResult is the tagged union a ScriptBlock/ScriptCall node
// evaluates to.
type ScriptResult struct {
	Kind ResultKind

	Inline value.Value // Kind == ResultInline: a TreeInline-kind value
	Block  value.Value // Kind == ResultBlock: a TreeBlock-kind value

	// Layout carries a *layout.LayoutObject, kept as any to avoid this
	// package importing layout (which will in turn need to call back
	// into interp to run the scripts that produce layout objects in
	// the first place).
	Layout any
}

// RunScriptBlock evaluates the body of a `{ ... }` embedded script
// node found in the document tree, §4.C.3. The block must finish with
// a return; the returned value decides the result: a TreeInline or
// TreeBlock typed value splices directly; anything else is an error,
// and so is a block that finishes without returning (the value of a
// trailing ExprStmt is not used).
func RunScriptBlock(body []Stmt, ctx *EvalContext) (ScriptResult, error) {
	res, err := Exec(body, ctx)
	if err != nil {
		return ScriptResult{}, err
	}
	if res.Kind != ReturnSignal {
		return ScriptResult{}, errs.New(errs.Eval, errs.Location{}, "script block must end in a return producing a placeable value")
	}
	return classify(res.Value)
}

// RunScriptCall evaluates a named function call embedded in the
// document tree (as opposed to one embedded in an expression), the
// same way but via evalCall's calling convention, §4.C.3.
func RunScriptCall(expr *Expr, ctx *EvalContext) (ScriptResult, error) {
	v, err := evalCall(expr, ctx)
	if err != nil {
		return ScriptResult{}, err
	}
	return classify(v)
}

func classify(v value.Value) (ScriptResult, error) {
	switch v.Type.Kind {
	case value.TreeInline:
		return ScriptResult{Kind: ResultInline, Inline: v}, nil
	case value.TreeBlock:
		return ScriptResult{Kind: ResultBlock, Block: v}, nil
	default:
		return ScriptResult{}, errs.New(errs.Type, errs.Location{},
			"script result must be a tree-inline or tree-block value, got %s", v.Type)
	}
}
