// Package interp implements Component C, §4.C: the typed-tree
// typechecker and the tree-walking evaluator that runs a document's
// embedded scripts. It picks up from an already-parsed AST — this
// module's spec leaves the surface grammar and lexer unspecified, so
// ast.go defines only the node shapes the typechecker consumes, the
// way a front end elsewhere would hand them over.
package interp

import "sap/value"

// ExprKind tags Expr's tagged variant, following this module's usual
// one-struct-one-discriminant shape (value.Type, tree.InlineObject).
type ExprKind int

const (
	Literal ExprKind = iota
	Ident
	Binary
	Unary
	Assign
	Call
	Field
	Index
	Move
	NullCoalesce
	ArrayLit
	StructLit
	ExplicitCast
	IfLetOptional
	IfLetUnion
)

// BinaryOp is the closed set of binary operators named in §4.C.2.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	And // short-circuit &&
	Or  // short-circuit ||
)

// AssignOp is `=` or one of the compound forms, which desugar to
// `lhs = lhs op rhs` with lhs evaluated once, §4.C.2.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
)

// Expr is one node of the (already parsed) expression AST.
type Expr struct {
	Kind ExprKind
	Loc  Location

	// ResolvedType is every expression's type as determined by
	// typecheck; Eval relies on it being populated rather than
	// re-inferring types at evaluation time.
	ResolvedType *value.Type

	// Literal
	LitValue any // bool, rune, int64, float64, string

	// Ident: Name is resolved to Decl by typecheck, which also looks it
	// up in the enclosing Scope.
	Name string
	Decl *Decl

	// Binary / comparison chain: a chain `a < b <= c` is stored as
	// Operands=[a,b,c], Ops=[Lt,Le] — each adjacent pair compared and
	// short-circuited per §4.C.2, collapsing to a single BinaryOp node
	// when len(Ops) == 1.
	Operands []*Expr
	Ops      []BinaryOp

	// Unary
	UnaryOp BinaryOp // Sub for negation only
	Operand *Expr

	// Assign
	AssignOp AssignOp
	Lhs      *Expr
	Rhs      *Expr

	// Call
	Callee *Expr
	Args   []*Expr

	// Field (DotOp)
	Base  *Expr
	Field string

	// Index
	Array *Expr
	Idx   *Expr

	// Move
	Operand2 *Expr

	// NullCoalesce: left ?? right, or left ??? right for the flatmap
	// variant (Flatmap == true) where right has the same
	// optional/pointer shape as left instead of the unwrapped element.
	Left, Right *Expr
	Flatmap     bool

	// ArrayLit / StructLit
	Elems  []*Expr
	Struct string // struct type name for StructLit

	// ExplicitCast
	Target *value.Type
	Source *Expr

	// IfLetOptional / IfLetUnion
	Subject   *Expr
	Variant   string // IfLetUnion only: the case name to match
	Bind      string // bound name in the true branch
	BindByRef bool   // IfLetUnion only: bind by mutable reference
	Then      []Stmt
	Else      []Stmt
}

// Location is a placeholder cross-reference into source text; the real
// positions come from whatever front end builds this AST. Kept local
// to interp so this package does not need to import a parser.
type Location struct {
	Line, Col int
}

// StmtKind tags Stmt's tagged variant.
type StmtKind int

const (
	ExprStmt StmtKind = iota
	VarDecl
	Return
	If
	While
	Break
	Continue
	BlockStmt
)

// Stmt is one node of the statement AST.
type Stmt struct {
	Kind StmtKind
	Loc  Location

	// ExprStmt
	Expr *Expr

	// VarDecl
	DeclName string
	DeclType *value.Type // nil: inferred from Init
	Init     *Expr

	// Return
	Value *Expr // nil for a bare `return`

	// If / While
	Cond *Expr
	Body []Stmt
	Else2 []Stmt // If only

	// BlockStmt
	Stmts []Stmt
}
