package bind

import (
	"testing"

	"github.com/kazcw/comacro/internal/toyast"
	"github.com/kazcw/comacro/reconcile"
)

func TestBindStmtsIdentPlaceholder(t *testing.T) {
	// pattern: `let IDENT_1 = 1;`, matched against `let x = 1;`
	nodes := toyast.StmtSeq{{Let: true, Name: "x", Value: toyast.IntLit(1)}}
	ids := toyast.StmtSeq{{Let: true, Name: "IDENT_1", Value: toyast.IntLit(1)}}
	pat := reconcile.CompileStmts(nodes, ids)

	input := toyast.StmtSeq{{Let: true, Name: "y", Value: toyast.IntLit(1)}}
	bindings := BindStmts(pat, input)

	if len(bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(bindings))
	}
	b := bindings[0]
	if b == nil || b.Kind != BoundIdent {
		t.Fatalf("got %+v, want a BoundIdent binding", b)
	}
	if b.Ident.Name() != "y" {
		t.Fatalf("got ident %q, want %q", b.Ident.Name(), "y")
	}
}

func TestBindStmtsExprPlaceholder(t *testing.T) {
	// pattern: `x = EXPR_1;` (rhs is a whole-expression wildcard),
	// matched against `x = y;`.
	nodes := toyast.StmtSeq{{Let: false, Name: "x", Value: toyast.Ident("y")}}
	ids := toyast.StmtSeq{{Let: false, Name: "x", Value: toyast.Ident("EXPR_1")}}
	pat := reconcile.CompileStmts(nodes, ids)

	input := toyast.StmtSeq{{Let: false, Name: "x", Value: toyast.IntLit(42)}}
	bindings := BindStmts(pat, input)

	if len(bindings) != 1 {
		t.Fatalf("got %d bindings, want 1", len(bindings))
	}
	b := bindings[0]
	if b == nil || b.Kind != BoundExpr {
		t.Fatalf("got %+v, want a BoundExpr binding", b)
	}
	if _, ok := b.Expr.(toyast.IntLit); !ok {
		t.Fatalf("got expr of type %T, want toyast.IntLit", b.Expr)
	}
}

func TestBindStmtsNoPlaceholders(t *testing.T) {
	nodes := toyast.StmtSeq{{Let: true, Name: "x", Value: toyast.IntLit(2)}}
	pat := reconcile.CompileStmts(nodes, nodes)

	bindings := BindStmts(pat, nodes)
	if len(bindings) != 0 {
		t.Fatalf("got %d bindings, want 0 for a pattern with no wildcards", len(bindings))
	}
}
