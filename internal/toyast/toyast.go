// Package toyast is a minimal host language used only by this module's
// own tests to exercise the ast.Visitor contract end to end, without
// pulling in a real parser: `let name = expr;` bindings, `name = expr;`
// assignments, integer literals, identifiers, and binary addition. It
// has no lexer or parser — test code builds trees directly as Go struct
// literals — and it is not part of comacro's public API.
package toyast

import (
	"strconv"

	"github.com/kazcw/comacro/ast"
)

// Node discriminants pushed as the single byte following each node's
// open call (spec.md §6: "the host pushes a byte discriminating the
// node's concrete kind").
const (
	StmtLet    byte = 1
	StmtAssign byte = 2

	ExprIdent byte = 1
	ExprInt   byte = 2
	ExprAdd   byte = 3
)

// Stmt is either a `let Name = Value;` binding or a `Name = Value;`
// assignment to an existing binding.
type Stmt struct {
	Let   bool
	Name  string
	Value ast.Expr
}

// StmtSeq is an ordered sequence of statements implementing
// ast.StmtSeq.
type StmtSeq []Stmt

func (s StmtSeq) WalkStmts(v ast.Visitor) {
	for _, stmt := range s {
		stmt.walk(v)
	}
}

// Slice implements ast.StmtSlicer by reslicing the underlying Go slice.
func (s StmtSeq) Slice(start, end int) ast.StmtSeq {
	return s[start:end]
}

func (s Stmt) walk(v ast.Visitor) {
	v.OpenStmt()
	if s.Let {
		v.PushByte(StmtLet)
		v.OpenPattern()
		walkIdent(v, s.Name)
		v.ClosePattern()
	} else {
		v.PushByte(StmtAssign)
		walkIdent(v, s.Name)
	}
	s.Value.WalkExpr(v)
	v.CloseStmt()
}

// identNode is the ast.Ident handle passed to OpenIdent for every
// identifier position toyast walks, whether it's a let/assignment
// target or an Ident expression's inner name.
type identNode string

func (n identNode) Name() string { return string(n) }

func walkIdent(v ast.Visitor, name string) {
	if err := v.OpenIdent(identNode(name)); err != nil {
		return
	}
	v.ExtendBytes([]byte(name))
	v.CloseIdent(name)
}

// Ident is a bare identifier expression, e.g. a variable reference.
type Ident string

func (e Ident) WalkExpr(v ast.Visitor) {
	if err := v.OpenExpr(e); err != nil {
		return
	}
	v.PushByte(ExprIdent)
	walkIdent(v, string(e))
	v.CloseExpr()
}

// IntLit is an integer literal expression.
type IntLit int64

func (e IntLit) WalkExpr(v ast.Visitor) {
	if err := v.OpenExpr(e); err != nil {
		return
	}
	v.PushByte(ExprInt)
	v.OpenIntLiteral()
	v.ExtendBytes([]byte(strconv.FormatInt(int64(e), 10)))
	v.CloseIntLiteral()
	v.CloseExpr()
}

// Add is a binary addition expression.
type Add struct {
	Left, Right ast.Expr
}

func (e Add) WalkExpr(v ast.Visitor) {
	if err := v.OpenExpr(e); err != nil {
		return
	}
	v.PushByte(ExprAdd)
	e.Left.WalkExpr(v)
	e.Right.WalkExpr(v)
	v.CloseExpr()
}
