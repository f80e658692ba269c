// Package reconcile turns a "nodes" trace — built from a pattern's
// source tree with its metavariable occurrences still spelled out as
// literal placeholder identifiers — into a pattern trace with a
// wildcard at each metavariable position (spec.md §4.G).
//
// It depends on an external preprocessing step (out of scope: spec.md
// §6) having produced two parse trees from the same pattern source: one
// where every `$name:ident`/`$name:expr` occurrence has been replaced by
// an ordinary identifier carrying its own name (the "nodes" tree,
// walked first to build the baseline trace), and one where each such
// occurrence has instead been replaced by a systematically numbered
// placeholder identifier named IDENT_<n> or EXPR_<n> (the tree this
// package's Reconciler walks). Because both trees share the pattern's
// real structure everywhere except at those renamed leaves, a walk of
// the second tree against the first's trace diverges only exactly where
// a metavariable occurred.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/kazcw/comacro/ast"
	"github.com/kazcw/comacro/internal/conv"
	"github.com/kazcw/comacro/trace"
)

const (
	identPrefix = "IDENT_"
	exprPrefix  = "EXPR_"
)

// reconcileOps adapts trace.Delta's fallible OpenSubtree/CloseSubtree to
// ast.Ops's infallible signature. A failure here means the nodes and
// placeholder trees disagree on shape somewhere other than an
// identifier's own closing bracket, which Reconciler.CloseIdent handles
// separately — anywhere else, divergence is a caller bug.
type reconcileOps struct {
	delta *trace.Delta
}

func (o *reconcileOps) OpenSubtree() {
	if err := o.delta.OpenSubtree(); err != nil {
		panic(&StructuralMismatchError{Op: "OpenSubtree"})
	}
}

func (o *reconcileOps) CloseSubtree() {
	if err := o.delta.CloseSubtree(); err != nil {
		panic(&StructuralMismatchError{Op: "CloseSubtree"})
	}
}

func (o *reconcileOps) OpenDatum()          { o.delta.OpenDatum() }
func (o *reconcileOps) CloseDatum()         { o.delta.CloseDatum() }
func (o *reconcileOps) PushByte(b byte)     { o.delta.PushByte(b) }
func (o *reconcileOps) ExtendBytes(b []byte) { o.delta.ExtendBytes(b) }

// Reconciler is an ast.Visitor that walks a placeholder-renamed pattern
// tree and emits a pattern trace. Every method but CloseIdent uses
// ast.Base's defaults; CloseIdent is the one point where a placeholder
// can turn a diverging identifier into a wildcard.
type Reconciler struct {
	*ast.Base
	delta *trace.Delta
}

// NewReconciler creates a Reconciler that reconciles against an
// already-built nodes trace.
func NewReconciler(nodesTrace trace.Trace) *Reconciler {
	delta := trace.NewDelta(nodesTrace)
	return &Reconciler{
		Base:  ast.NewBase(&reconcileOps{delta: delta}),
		delta: delta,
	}
}

// CloseIdent closes the identifier's subtree as usual unless it
// diverges from the stored nodes trace, in which case name must carry
// an IDENT_<n> or EXPR_<n> placeholder prefix: IDENT_<n> replaces just
// this identifier's own subtree with wildcard n, EXPR_<n> replaces the
// enclosing expression subtree instead (spec.md §4.G).
func (r *Reconciler) CloseIdent(name string) {
	if err := r.delta.CloseSubtree(); err == nil {
		return
	}
	switch {
	case strings.HasPrefix(name, identPrefix):
		idx := placeholderIndex(name, identPrefix)
		r.delta.New.Replacement.PushWildcard(idx)
		r.delta.New.Rollback(0)
		r.delta.New.CloseSubtree()
	case strings.HasPrefix(name, exprPrefix):
		idx := placeholderIndex(name, exprPrefix)
		r.delta.New.Replacement.PushWildcard(idx)
		r.delta.New.Rollback(1)
		r.delta.New.CloseSubtree()
	default:
		panic(&PlaceholderError{Name: name})
	}
}

func placeholderIndex(name, prefix string) byte {
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil {
		panic(&PlaceholderError{Name: name})
	}
	return conv.IntToWildcardIndex(n)
}

// Finish returns the reconciled pattern trace.
func (r *Reconciler) Finish() trace.Trace {
	return r.delta.Finish()
}

// CompileStmts compiles a statement-sequence pattern: nodes is the
// pattern source tree with metavariables replaced by their own literal
// names, ids is the same tree with metavariables replaced by
// IDENT_<n>/EXPR_<n> placeholders.
func CompileStmts(nodes, ids ast.StmtSeq) trace.Trace {
	nodeGen := trace.NewGenerator()
	nodeViz := ast.NewBase(nodeGen)
	nodes.WalkStmts(nodeViz)
	nodesTrace := nodeGen.Finish()

	r := NewReconciler(nodesTrace)
	ids.WalkStmts(r)
	return r.Finish()
}

// CompileExpr compiles a single-expression pattern, analogous to
// CompileStmts.
func CompileExpr(nodes, ids ast.Expr) trace.Trace {
	nodeGen := trace.NewGenerator()
	nodeViz := ast.NewBase(nodeGen)
	nodes.WalkExpr(nodeViz)
	nodesTrace := nodeGen.Finish()

	r := NewReconciler(nodesTrace)
	ids.WalkExpr(r)
	return r.Finish()
}
